package converter

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// EntryIDPrefix marks ids generated for published entries.
const EntryIDPrefix = "cfimp."

// IDGenerator returns a fresh entry id.
type IDGenerator func() string

// GenerateEntryID returns "cfimp." followed by a random UUID in unpadded
// URL-safe base64, 28 characters in total. Contentful ids are limited to
// 64 characters of [A-Za-z0-9._-], which this satisfies.
func GenerateEntryID() string {
	id := uuid.New()
	return EntryIDPrefix + base64.RawURLEncoding.EncodeToString(id[:])
}
