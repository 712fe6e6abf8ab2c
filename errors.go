package subtitle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidUTF8     = errors.New("subtitle: payload is not valid UTF-8")
	ErrInteriorNul     = errors.New("subtitle: string contains a NUL byte")
	ErrWrongVariant    = errors.New("subtitle: wrong rectangle variant")
	ErrNoAllocator     = errors.New("subtitle: no allocator")
	ErrOutOfMemory     = errors.New("subtitle: native allocation failed")
	ErrLibraryNotFound = errors.New("subtitle: libavutil not found")
	ErrUnknownCharset  = errors.New("subtitle: unknown character set")

	ErrUnsupportedVersion = errors.New("subtitle: unsupported libavutil version")
)

// DecodeError is returned when a text or ASS payload cannot be decoded.
// It only affects the accessor that returned it; the rectangle stays usable.
type DecodeError struct {
	Field  string // "text" or "ass"
	Offset int    // Byte offset of the first invalid sequence, -1 if unknown
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("subtitle: decoding %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("subtitle: decoding %s at byte %d: %v", e.Field, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NulError is returned by string setters when the new value contains a NUL
// byte. Nothing is allocated and the stored string is left untouched.
type NulError struct {
	Field    string
	Position int
}

func (e *NulError) Error() string {
	return fmt.Sprintf("subtitle: %s value has NUL byte at position %d", e.Field, e.Position)
}

func (e *NulError) Is(target error) bool { return target == ErrInteriorNul }

// WrongVariantError is returned by the As* helpers when a rectangle does not
// carry the requested payload.
type WrongVariantError struct {
	Want Type
	Got  Type
}

func (e *WrongVariantError) Error() string {
	return fmt.Sprintf("subtitle: rectangle is %v, not %v", e.Got, e.Want)
}

func (e *WrongVariantError) Is(target error) bool { return target == ErrWrongVariant }
