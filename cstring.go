// Helpers for NUL-terminated strings owned by native memory.

package subtitle

import (
	"unicode/utf8"
	"unsafe"
)

// cStringBytes returns the bytes of a NUL-terminated C string without the
// terminator. The slice aliases p; it is only valid while p is.
func cStringBytes(p *byte) []byte {
	if p == nil {
		return nil
	}
	var n uintptr
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	if n == 0 {
		return []byte{}
	}
	return unsafe.Slice(p, n)
}

// decodeCString copies a C string into Go memory, rejecting invalid UTF-8.
func decodeCString(field string, p *byte) (string, error) {
	b := cStringBytes(p)
	if off := invalidUTF8Offset(b); off >= 0 {
		return "", &DecodeError{Field: field, Offset: off, Err: ErrInvalidUTF8}
	}
	return string(b), nil
}

// invalidUTF8Offset returns the offset of the first invalid UTF-8 sequence
// in b, or -1 when b is valid.
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
