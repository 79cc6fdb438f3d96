// =============================================================================
// Contentful CSV Importer - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter   (builds entries)
//   - jsonwriter  (serializes entries into the import file)
//   - preview     (renders entries for dry runs)
//
// =============================================================================

package types

import (
	"fmt"
)

// =============================================================================
// LINK TYPES
// =============================================================================

// LinkType is the kind of object a Link points at.
type LinkType string

const (
	LinkEntry       LinkType = "Entry"
	LinkAsset       LinkType = "Asset"
	LinkTag         LinkType = "Tag"
	LinkContentType LinkType = "ContentType"
)

// Link is the vendor's pointer object: {"sys":{"type":"Link","linkType":..,"id":..}}.
type Link struct {
	Sys LinkSys `json:"sys"`
}

// LinkSys is the body of a Link.
type LinkSys struct {
	Type     string   `json:"type"`
	LinkType LinkType `json:"linkType"`
	ID       string   `json:"id"`
}

// NewLink creates a link of the given type to the given id.
func NewLink(linkType LinkType, id string) Link {
	return Link{Sys: LinkSys{Type: "Link", LinkType: linkType, ID: id}}
}

// =============================================================================
// FIELD SPEC
// =============================================================================

// FieldSpec identifies one output field slot, parsed from a header token of
// the form "fieldId" or "fieldId[locale]". Locale is empty when the token
// carried no locale suffix.
type FieldSpec struct {
	ID     string
	Locale string
}

// HasLocale reports whether the token declared its own locale.
func (s FieldSpec) HasLocale() bool {
	return s.Locale != ""
}

// LocaleOr returns the declared locale, or fallback when none was declared.
func (s FieldSpec) LocaleOr(fallback string) string {
	if s.Locale == "" {
		return fallback
	}
	return s.Locale
}

// String renders the spec back into header-token form.
func (s FieldSpec) String() string {
	if s.Locale == "" {
		return s.ID
	}
	return fmt.Sprintf("%s[%s]", s.ID, s.Locale)
}

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one output content record, built from one input row.
type Entry struct {
	// ContentModelID is the content type every entry in the run belongs to.
	ContentModelID string

	// ID is the entry's sys.id. It is set from an "_id" column (update in
	// place) or generated when publishing. Empty means "create new".
	ID string

	// PublishedVersion is 1 when the entry should be published on import.
	PublishedVersion int

	// Tags holds tag ids in first-seen order, without duplicates.
	Tags []string

	// Fields maps fieldId -> locale -> value, in insertion order.
	Fields Fields
}

// NewEntry creates an empty entry for the given content model. Every call
// returns fresh slices; nothing is shared between entries.
func NewEntry(contentModelID string) *Entry {
	return &Entry{
		ContentModelID: contentModelID,
		Tags:           []string{},
	}
}

// AddTag appends a tag unless the entry already carries it.
// It returns false when the tag was a duplicate.
func (e *Entry) AddTag(tag string) bool {
	if e.HasTag(tag) {
		return false
	}
	e.Tags = append(e.Tags, tag)
	return true
}

// HasTag reports whether the entry carries the tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// =============================================================================
// BUNDLE
// =============================================================================

// Bundle is the complete set of entries produced by one run.
type Bundle struct {
	Entries []*Entry
}

// Len returns the number of entries in the bundle.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Entries)
}
