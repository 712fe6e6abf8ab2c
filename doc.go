// Package subtitle provides safe access to FFmpeg's decoded subtitle
// rectangles (AVSubtitleRect) from Go.
//
// Key pieces include:
//   - Rect: read-only views (None, Bitmap, Text, Ass) chosen from the type tag
//   - RectMut: exclusive views that embed the read views and add setters
//   - Allocator / NativeAllocator: libavutil's av_strdup/av_free for string fields
//   - Subtitle: shared (View) or exclusive (Edit) access to an AVSubtitle
//   - Cue: Go-owned snapshots, sent over RTP (T.140), RTMP (onTextData)
//     or a WebRTC data channel
//
// # Ownership
//
// Rectangles belong to whoever produced them, normally libavcodec's
// avcodec_decode_subtitle2. Views only borrow them: a view, and every
// slice it returns, must not be used after the producer frees the
// rectangle. Any number of Rect views or exactly one RectMut may be in use
// for a rectangle at a time; Subtitle.View and Subtitle.Edit enforce this
// with a read-write lock.
//
// String setters replace the text or ass buffer with one allocated by the
// view's Allocator and free the old buffer through it. For libavcodec
// rectangles that must be NativeAllocator, since avsubtitle_free releases
// those buffers with av_free.
//
// # Native Libraries
//
// FFmpeg 5 or later (libavutil 57+) is required: older releases lay out
// AVSubtitleRect differently and are rejected when loaded.
//
// By default libavutil is loaded at runtime with purego (CGO_ENABLED=0
// works). Set AVUTIL_LIB_PATH to the library file, or FFMPEG_DIR to an
// FFmpeg installation prefix, to override the search. The view layer does
// not need the library; only NativeAllocator does.
//
// # Build Tags
//
//   - avcgo: with cgo enabled, link libavutil through pkg-config instead
//     of loading it with purego
//
// # Logging
//
// Library discovery and the transports log through pion/logging; set
// PION_LOG_DEBUG=subtitle to trace library loading.
package subtitle
