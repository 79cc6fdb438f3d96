// =============================================================================
// Contentful CSV Importer - Preview Renderer
// =============================================================================
//
// This module renders a bundle as readable text for "preview" dry runs.
// It only reads the bundle.
//
// OUTPUT EXAMPLE:
//
//   Proposing to import/update the following data:
//   [
//      {
//         "_tags": [
//            "red"
//         ],
//         "_id": "widget-1",
//         "title[en-US]": "Widget",
//         "author[en-US]": "Ref abc123"
//      }
//   ]
//
// Every locale slot is flattened into a "field[locale]" key. References
// read "Ref <id>" for entries and "Asset ref <id>" for assets. "_id" is
// only listed when the entry has one.
//
// =============================================================================

package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ginjaninja78/cfimp/internal/types"
)

// indent is three spaces per level.
const indent = "   "

// Header returns the line printed above the preview.
func Header(publish bool) string {
	if publish {
		return "Proposing to import/update *and publish* the following data:"
	}
	return "Proposing to import/update the following data:"
}

// Render returns the preview text for a bundle. publish selects the
// header wording.
func Render(bundle *types.Bundle, publish bool) (string, error) {
	body, err := RenderEntries(bundle)
	if err != nil {
		return "", err
	}
	return Header(publish) + "\n" + body, nil
}

// RenderEntries returns the JSON array part of the preview.
func RenderEntries(bundle *types.Bundle) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	if bundle != nil {
		for i, e := range bundle.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeEntry(&buf, e); err != nil {
				return "", fmt.Errorf("failed to render entry %d: %w", i+1, err)
			}
		}
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return "", fmt.Errorf("failed to indent preview: %w", err)
	}
	return out.String(), nil
}

// writeEntry writes one flattened entry object with keys in display order.
func writeEntry(buf *bytes.Buffer, e *types.Entry) error {
	buf.WriteByte('{')

	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	if err := writeMember(buf, "_tags", tags, false); err != nil {
		return err
	}

	if e.ID != "" {
		if err := writeMember(buf, "_id", e.ID, true); err != nil {
			return err
		}
	}

	for _, field := range e.Fields {
		for _, lv := range field.Locales {
			key := field.ID + "[" + lv.Locale + "]"
			if err := writeMember(buf, key, display(lv.Value), true); err != nil {
				return err
			}
		}
	}

	buf.WriteByte('}')
	return nil
}

func writeMember(buf *bytes.Buffer, key string, value any, comma bool) error {
	if comma {
		buf.WriteByte(',')
	}
	k, err := types.MarshalNoEscape(key)
	if err != nil {
		return err
	}
	v, err := types.MarshalNoEscape(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// display maps a value to what the preview shows for it.
func display(v types.Value) any {
	if v.Kind != types.KindRef {
		return v
	}
	if v.LinkType == types.LinkAsset {
		return "Asset ref " + v.ID
	}
	return "Ref " + v.ID
}

// Lines counts the lines of rendered preview text.
func Lines(rendered string) int {
	if rendered == "" {
		return 0
	}
	return strings.Count(rendered, "\n") + 1
}
