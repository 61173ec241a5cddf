// Package authz holds the ownership policy applied to post mutations.
package authz

// CanMutate reports whether the requester may modify a resource owned by
// ownerID. Reads never consult this check; they are public.
func CanMutate(requesterID, ownerID int64) bool {
	return requesterID == ownerID
}
