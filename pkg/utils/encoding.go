package utils

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const utf8BOM = "\uFEFF"

// LookupEncoding resolves an "enc" option value to a text encoding.
// Node-style short names (utf8, utf16le, ucs2, latin1, binary, ascii) are
// mapped explicitly. Anything else goes through the WHATWG label index,
// e.g. "windows-1252" or "shift_jis".
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8", "ascii":
		return unicode.UTF8, nil
	case "utf16le", "utf-16le", "ucs2", "ucs-2":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "latin1", "binary", "iso-8859-1":
		return charmap.ISO8859_1, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// DecodeText converts raw file bytes in the named encoding to a UTF-8
// string. A leading byte order mark is dropped.
func DecodeText(data []byte, name string) (string, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return "", err
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}

	return strings.TrimPrefix(string(out), utf8BOM), nil
}

// EncodeText converts a UTF-8 string to bytes in the named encoding.
func EncodeText(s, name string) ([]byte, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}

	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return out, nil
}
