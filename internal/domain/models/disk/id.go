package disk

import "github.com/google/uuid"

// DefaultNamespace is used when no ID_NAMESPACE is configured.
var DefaultNamespace = uuid.MustParse("5b0c8f7e-4c55-4a1b-9a57-3f1c0e2d6a10")

// DeriveID maps an external id onto a stable internal id, so that
// re-importing the same external id always addresses the same row.
func DeriveID(namespace uuid.UUID, externalID string) string {
	return uuid.NewSHA1(namespace, []byte(externalID)).String()
}
