package mummy

// Wire tag bytes, per spec §6.1. The high bit of byte 0 of an entire
// stream is reserved for the compression envelope's flag (§4.4) and is
// never part of a tag's own defined value.
const (
	tagNull       byte = 0x00
	tagBool       byte = 0x01
	tagChar       byte = 0x02
	tagShort      byte = 0x03
	tagInt        byte = 0x04
	tagLong       byte = 0x05
	tagHuge       byte = 0x06
	tagFloat      byte = 0x07
	tagShortStr   byte = 0x08
	tagLongStr    byte = 0x09
	tagShortUtf8  byte = 0x0A
	tagLongUtf8   byte = 0x0B
	tagLongList   byte = 0x0C
	tagLongTuple  byte = 0x0D
	tagLongSet    byte = 0x0E
	tagLongHash   byte = 0x0F
	tagShortList  byte = 0x10
	tagShortTuple byte = 0x11
	tagShortSet   byte = 0x12
	tagShortHash  byte = 0x13
	tagMedList    byte = 0x14
	tagMedTuple   byte = 0x15
	tagMedSet     byte = 0x16
	tagMedHash    byte = 0x17
	tagMedStr     byte = 0x18
	tagMedUtf8    byte = 0x19
	tagDate       byte = 0x1A
	tagTime       byte = 0x1B
	tagDateTime   byte = 0x1C
	tagTimeDelta  byte = 0x1D
	tagDecimal    byte = 0x1E
	tagSpecialNum byte = 0x1F
)

// compressedFlag is the high bit of byte 0 of a stream, reused as the
// compression envelope's flag (§4.4/§6.1).
const compressedFlag byte = 0x80

// SpecialNum flag-byte layout (§4.2, §6.1): high nibble names Infinity or
// NaN, low bit carries sign (Infinity) or quiet/signalling (NaN).
const (
	specialInfinity byte = 0x10
	specialNaN      byte = 0x20
)

// maxDepth is the recursion cap shared by the encoder and decoder (§4.2).
const maxDepth = 256

// width classes for variable-sized variants, by element count or byte
// length (§4.2).
const (
	shortMax  = 1<<8 - 1
	mediumMax = 1<<16 - 1
	// longMax is 2^32-1, the format's absolute size ceiling (§3); it is
	// not separately enforced beyond what a uint32 prefix can hold.
)
