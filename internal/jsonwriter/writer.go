// =============================================================================
// Contentful CSV Importer - Import File Writer
// =============================================================================
//
// This module assembles entries into a bundle and serializes it in the
// shape "contentful space import --content-file" expects.
//
// JSON STRUCTURE:
//
//   {
//     "entries": [
//       {
//         "metadata": {
//           "tags": [{"sys": {"type": "Link", "linkType": "Tag", "id": "red"}}]
//         },
//         "sys": {
//           "contentType": {"sys": {"type": "Link", "linkType": "ContentType", "id": "page"}},
//           "id": "cfimp.3q2-7wKXQ2-dDkmpVNOSDg",     <- only when set
//           "publishedVersion": 1                    <- only when publishing
//         },
//         "fields": {
//           "title": {"en-US": "Widget"},
//           "price": {"en-US": 9.99},
//           "author": {"en-US": {"sys": {"type": "Link", "linkType": "Entry", "id": "abc"}}}
//         }
//       }
//     ]
//   }
//
// Fields keep their column order. Cell text is written as-is, without
// HTML escaping.
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ginjaninja78/cfimp/internal/types"
	"github.com/ginjaninja78/cfimp/pkg/utils"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for JSON generation.
type GenerateOptions struct {
	// Indent is the string used for indentation. Empty writes compact JSON.
	Indent string
}

// DefaultGenerateOptions returns compact output.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{}
}

// =============================================================================
// DOCUMENT STRUCTURE
// =============================================================================

type document struct {
	Entries []entryDoc `json:"entries"`
}

type entryDoc struct {
	Metadata metadataDoc  `json:"metadata"`
	Sys      sysDoc       `json:"sys"`
	Fields   types.Fields `json:"fields"`
}

type metadataDoc struct {
	Tags []types.Link `json:"tags"`
}

type sysDoc struct {
	ContentType      types.Link `json:"contentType"`
	ID               string     `json:"id,omitempty"`
	PublishedVersion int        `json:"publishedVersion,omitempty"`
}

// =============================================================================
// ASSEMBLY
// =============================================================================

// Assemble wraps entries in a bundle. The entries are not copied or checked.
func Assemble(entries []*types.Entry) *types.Bundle {
	if entries == nil {
		entries = []*types.Entry{}
	}
	return &types.Bundle{Entries: entries}
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate serializes the bundle with default options.
func Generate(bundle *types.Bundle) ([]byte, error) {
	return GenerateWithOptions(bundle, DefaultGenerateOptions())
}

// GenerateWithOptions serializes the bundle.
//
// PARAMETERS:
//   - bundle: The entries to write.
//   - options: Output formatting.
//
// RETURNS:
//   - The JSON document.
//   - An error if a value cannot be encoded.
func GenerateWithOptions(bundle *types.Bundle, options GenerateOptions) ([]byte, error) {
	doc := buildDocument(bundle)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if options.Indent != "" {
		enc.SetIndent("", options.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode import file: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func buildDocument(bundle *types.Bundle) document {
	doc := document{Entries: make([]entryDoc, 0, bundle.Len())}
	if bundle == nil {
		return doc
	}

	for _, e := range bundle.Entries {
		tags := make([]types.Link, 0, len(e.Tags))
		for _, t := range e.Tags {
			tags = append(tags, types.NewLink(types.LinkTag, t))
		}

		doc.Entries = append(doc.Entries, entryDoc{
			Metadata: metadataDoc{Tags: tags},
			Sys: sysDoc{
				ContentType:      types.NewLink(types.LinkContentType, e.ContentModelID),
				ID:               e.ID,
				PublishedVersion: e.PublishedVersion,
			},
			Fields: e.Fields,
		})
	}
	return doc
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// WriteFile serializes the bundle and writes it to path in the given
// text encoding.
func WriteFile(path string, bundle *types.Bundle, enc string) error {
	data, err := Generate(bundle)
	if err != nil {
		return err
	}

	encoded, err := utils.EncodeText(string(data), enc)
	if err != nil {
		return fmt.Errorf("failed to encode import file as %s: %w", enc, err)
	}

	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
