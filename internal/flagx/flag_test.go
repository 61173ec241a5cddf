package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps allowed flag with value",
			args:    []string{"-a", "localhost:9000", "-x", "noise"},
			allowed: []string{"-a"},
			want:    []string{"-a", "localhost:9000"},
		},
		{
			name:    "keeps equals form",
			args:    []string{"--config=conf.json", "-a", "addr"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "boolean-like flag without value",
			args:    []string{"-v", "-a", "addr"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "addr"},
			allowed: []string{"-b"},
			want:    []string{},
		},
		{
			name:    "value that looks like a flag is not consumed",
			args:    []string{"-a", "-b", "value"},
			allowed: []string{"-a"},
			want:    []string{"-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short form", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "conf.json"}
		assert.Equal(t, "conf.json", JsonConfigFlags())
	})

	t.Run("long form", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "other.json"}
		assert.Equal(t, "other.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", "addr"}
		assert.Equal(t, "", JsonConfigFlags())
	})
}
