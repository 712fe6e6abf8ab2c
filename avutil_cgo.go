//go:build (darwin || linux) && cgo && avcgo

// libavutil bindings linked with cgo. Enable with -tags avcgo.

package subtitle

/*
#cgo pkg-config: libavutil

#include <stdlib.h>
#include <libavutil/avutil.h>
#include <libavutil/mem.h>

#if LIBAVUTIL_VERSION_MAJOR < 57
#error "FFmpeg 5 or later is required"
#endif
*/
import "C"

import "unsafe"

// With CGO the library is linked at build time.
func loadAvutil() error { return nil }

func nativeStrdup(s string) *byte {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return (*byte)(unsafe.Pointer(C.av_strdup(cs)))
}

func nativeFree(p *byte) { C.av_free(unsafe.Pointer(p)) }

func nativeMallocz(size uintptr) unsafe.Pointer { return C.av_mallocz(C.size_t(size)) }

func nativeVersion() uint32 { return uint32(C.avutil_version()) }
