package section

const (
	// Bit masks of the Options field.
	EndiannessMask   = 0x0002 // bit 1
	ReservedBitsMask = 0x000D // bits 0, 2 and 3
	MagicNumberMask  = 0xFFF0 // bits 4-15

	// MagicArtifactV1 identifies the artifact layout described in this package.
	MagicArtifactV1 = 0xD5A0
)

const (
	HeaderSize = 32 // fixed header size in bytes
	// MaxDimension bounds Height and Width so that Height*Width fits an int
	// on 32-bit hosts.
	MaxDimension = 1 << 15
)
