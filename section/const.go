package section

const (
	// Options bit masks
	EndiannessMask   = 0x0002 // bit 1: 0=little-endian, 1=big-endian
	ReservedBitsMask = 0x000D // bits 0, 2, 3: must be zero
	MagicNumberMask  = 0xFFF0 // bits 4-15

	// MagicTrackV1Opt identifies version 1 of the track blob format.
	MagicTrackV1Opt = 0xB710
)

const (
	HeaderSize          = 32         // fixed header size in bytes
	TrackIndexEntrySize = 16         // fixed index entry size in bytes
	IndexOffsetOffset   = HeaderSize // the index always follows the header
	MaxItems            = 255        // items is stored in one byte
)
