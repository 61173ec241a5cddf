package authz

import "testing"

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name        string
		requesterID int64
		ownerID     int64
		want        bool
	}{
		{"owner", 1, 1, true},
		{"other user", 2, 1, false},
		{"zero ids never match a real owner", 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutate(tt.requesterID, tt.ownerID); got != tt.want {
				t.Errorf("CanMutate(%d, %d) = %v, want %v", tt.requesterID, tt.ownerID, got, tt.want)
			}
		})
	}
}
