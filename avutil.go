// Native allocator backed by libavutil, and library discovery shared by the
// purego and cgo builds.

package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"unsafe"

	"github.com/pion/logging"
)

var logger = logging.NewDefaultLoggerFactory().NewLogger("subtitle")

// nativeAllocator allocates with av_strdup and releases with av_free, the
// pair avsubtitle_free uses on rectangle strings.
type nativeAllocator struct{}

func (nativeAllocator) Strdup(s string) (*byte, error) {
	p := nativeStrdup(s)
	if p == nil {
		return nil, ErrOutOfMemory
	}
	return p, nil
}

func (nativeAllocator) Free(p *byte) {
	if p != nil {
		nativeFree(p)
	}
}

// NativeAllocator returns libavutil's allocator, loading the library on
// first use. Use it for rectangles produced by libavcodec.
func NativeAllocator() (Allocator, error) {
	if err := loadAvutil(); err != nil {
		return nil, err
	}
	return nativeAllocator{}, nil
}

// IsNativeAvailable checks if libavutil can be loaded.
func IsNativeAvailable() bool {
	return loadAvutil() == nil
}

// AvutilVersion returns the loaded libavutil version as major, minor, micro.
func AvutilVersion() (major, minor, micro int, err error) {
	if err := loadAvutil(); err != nil {
		return 0, 0, 0, err
	}
	v := nativeVersion()
	return int(v >> 16), int(v>>8) & 0xff, int(v) & 0xff, nil
}

// newNativeRect allocates a zeroed rectangle with av_mallocz. The caller
// releases it, and its strings, with the native allocator.
func newNativeRect() (*AVSubtitleRect, error) {
	if err := loadAvutil(); err != nil {
		return nil, err
	}
	p := nativeMallocz(unsafe.Sizeof(AVSubtitleRect{}))
	if p == nil {
		return nil, ErrOutOfMemory
	}
	return (*AVSubtitleRect)(p), nil
}

// Major versions tried in order: FFmpeg 8, 7, 6, 5. FFmpeg 4 (libavutil 56)
// is not supported: its AVSubtitleRect still carries the AVPicture pict
// field, which moves every field after nb_colors.
var avutilMajors = []int{60, 59, 58, 57}

// minAvutilMajor is the oldest libavutil whose AVSubtitleRect matches
// AVSubtitleRect in ffi.go.
const minAvutilMajor = 57

func checkAvutilVersion(v uint32) error {
	if major := int(v >> 16); major < minAvutilMajor {
		return fmt.Errorf("%w: libavutil %d.%d.%d is older than %d (FFmpeg 5)",
			ErrUnsupportedVersion, major, int(v>>8)&0xff, int(v)&0xff, minAvutilMajor)
	}
	return nil
}

func avutilLibNames() []string {
	var names []string
	switch runtime.GOOS {
	case "darwin":
		names = append(names, "libavutil.dylib")
		for _, m := range avutilMajors {
			names = append(names, fmt.Sprintf("libavutil.%d.dylib", m))
		}
	default:
		names = append(names, "libavutil.so")
		for _, m := range avutilMajors {
			names = append(names, fmt.Sprintf("libavutil.so.%d", m))
		}
	}
	return names
}

func getAvutilLibPaths() []string {
	var paths []string
	names := avutilLibNames()

	// Environment variable overrides (highest priority)
	if envPath := os.Getenv("AVUTIL_LIB_PATH"); envPath != "" {
		paths = append(paths, envPath)
	}
	if dir := os.Getenv("FFMPEG_DIR"); dir != "" {
		for _, name := range names {
			paths = append(paths,
				filepath.Join(dir, "lib", name),
				filepath.Join(dir, name),
			)
		}
	}

	// Search relative to executable location
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		for _, name := range names {
			paths = append(paths,
				filepath.Join(exeDir, name),
				filepath.Join(exeDir, "..", "lib", name),
			)
		}
	}

	// Search relative to module root (find go.mod from cwd)
	if moduleRoot := findModuleRoot(); moduleRoot != "" {
		for _, name := range names {
			paths = append(paths, filepath.Join(moduleRoot, "build", name))
		}
	}

	// Bare names go through the dynamic loader's own search
	paths = append(paths, names...)

	// System paths (lowest priority)
	var dirs []string
	switch runtime.GOOS {
	case "darwin":
		dirs = []string{"/opt/homebrew/lib", "/usr/local/lib"}
	case "linux":
		dirs = []string{"/usr/local/lib", "/usr/lib", "/usr/lib/x86_64-linux-gnu", "/usr/lib/aarch64-linux-gnu"}
	}
	for _, dir := range dirs {
		for _, name := range names {
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	return paths
}

// findModuleRoot walks up the directory tree from the current working directory
// to find the module root (directory containing go.mod).
func findModuleRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
