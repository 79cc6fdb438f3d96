package types

import (
	"bytes"
)

// LocaleValue is one locale slot of a field.
type LocaleValue struct {
	Locale string
	Value  Value
}

// Field is a field id with its locale slots in insertion order.
type Field struct {
	ID      string
	Locales []LocaleValue
}

// Fields is an insertion-ordered mapping fieldId -> locale -> Value.
// Map iteration order would make the import file differ run to run, so
// the mapping is kept as a slice.
type Fields []Field

// Set stores v at (id, locale). An existing slot is overwritten in place;
// other locales of the same field are left alone.
func (f *Fields) Set(id, locale string, v Value) {
	for i := range *f {
		field := &(*f)[i]
		if field.ID != id {
			continue
		}
		for j := range field.Locales {
			if field.Locales[j].Locale == locale {
				field.Locales[j].Value = v
				return
			}
		}
		field.Locales = append(field.Locales, LocaleValue{Locale: locale, Value: v})
		return
	}
	*f = append(*f, Field{ID: id, Locales: []LocaleValue{{Locale: locale, Value: v}}})
}

// Get returns the value at (id, locale).
func (f Fields) Get(id, locale string) (Value, bool) {
	for _, field := range f {
		if field.ID != id {
			continue
		}
		for _, lv := range field.Locales {
			if lv.Locale == locale {
				return lv.Value, true
			}
		}
		return Value{}, false
	}
	return Value{}, false
}

// IDs returns the field ids in insertion order.
func (f Fields) IDs() []string {
	ids := make([]string, len(f))
	for i, field := range f {
		ids[i] = field.ID
	}
	return ids
}

// MarshalJSON encodes the fields as nested objects, preserving order:
// {"title":{"en-US":"Widget"},"price":{"en-US":9.99}}
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, field.ID); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, lv := range field.Locales {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, lv.Locale); err != nil {
				return nil, err
			}
			raw, err := lv.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	raw, err := MarshalNoEscape(key)
	if err != nil {
		return err
	}
	buf.Write(raw)
	buf.WriteByte(':')
	return nil
}
