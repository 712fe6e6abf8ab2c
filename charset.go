package subtitle

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// lookupCharset resolves an IANA name ("ISO-8859-1", "windows-1252") or a
// WHATWG label ("latin1", "cp1252"), the names FFmpeg's sub_charenc accepts.
func lookupCharset(name string) (encoding.Encoding, error) {
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}

func decodeCharset(field string, b []byte, name string) (string, error) {
	enc, err := lookupCharset(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &DecodeError{Field: field, Offset: -1, Err: err}
	}
	if off := invalidUTF8Offset(out); off >= 0 {
		return "", &DecodeError{Field: field, Offset: off, Err: ErrInvalidUTF8}
	}
	return string(out), nil
}
