// Foreign structure declarations for libavcodec's subtitle types.
package subtitle

// Raw values of enum AVSubtitleType.
const (
	avSubtitleNone   = 0
	avSubtitleBitmap = 1 // A bitmap, data[0] holds palette indices, data[1] the palette
	avSubtitleText   = 2 // Plain text, the text field must be set
	avSubtitleAss    = 3 // Formatted text, the ass field must be set
)

// avSubtitleFlagForced mirrors AV_SUBTITLE_FLAG_FORCED.
const avSubtitleFlagForced = 0x00000001

// AVSubtitleRect matches the C struct AVSubtitleRect field for field.
// Values of this type are produced and owned by libavcodec (or any other
// producer honouring the same layout); this package only borrows them.
type AVSubtitleRect struct {
	X        int32 // Top left corner of the bitmap
	Y        int32
	W        int32 // Bitmap width
	H        int32 // Bitmap height
	NbColors int32 // Number of palette entries in Data[1]

	Data     [4]*uint8 // Data[0]: palette indices, Data[1]: AARRGGBB palette
	Linesize [4]int32

	Type int32 // enum AVSubtitleType

	Text *byte // NUL-terminated plain UTF-8 text
	Ass  *byte // NUL-terminated ASS event line

	Flags int32
}

// AVSubtitle matches the C struct AVSubtitle. It is the collection a
// decoder fills in; Rects points to NumRects rectangle pointers.
type AVSubtitle struct {
	Format           uint16 // 0 = graphics, 1 = text
	StartDisplayTime uint32
	EndDisplayTime   uint32
	NumRects         uint32
	Rects            **AVSubtitleRect
	Pts              int64
}
