package subtitle

import "strings"

// Allocator is the allocation capability string setters need. The text and
// ass buffers of a rectangle are eventually released by the library that
// produced it, so replacements must come from that library's allocator;
// NativeAllocator returns libavutil's.
type Allocator interface {
	// Strdup copies s into a new NUL-terminated buffer. s holds no NUL.
	Strdup(s string) (*byte, error)

	// Free releases a buffer obtained from Strdup or from the producer.
	Free(p *byte)
}

// replaceString is the only place a rectangle string field is written.
// The value is validated before anything is allocated, and on any error
// *field is left as it was. On success the previous buffer is released
// through alloc.
func replaceString(alloc Allocator, field **byte, name, value string) error {
	if i := strings.IndexByte(value, 0); i >= 0 {
		return &NulError{Field: name, Position: i}
	}
	if alloc == nil {
		return ErrNoAllocator
	}
	p, err := alloc.Strdup(value)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrOutOfMemory
	}
	old := *field
	*field = p
	if old != nil {
		alloc.Free(old)
	}
	return nil
}
