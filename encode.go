package mummy

import (
	"math/big"

	"github.com/mummyfmt/mummy/internal/buffer"
)

// DefaultFunc is called at most once per unsupported Value to obtain an
// in-model substitute. The substitute is re-encoded at the same depth
// with the handler disabled, so a DefaultFunc that itself returns an
// unsupported Value fails with ErrUnsupportedType rather than looping.
type DefaultFunc func(Value) (Value, error)

func isKnownKind(k Kind) bool {
	return k <= KindSpecialNum
}

// encodeValue writes one self-contained Value to w, advancing past it.
// defaultUsed tracks whether the default handler has already fired once
// along this recursive path (spec §4.2).
func encodeValue(w *buffer.Writer, v Value, def DefaultFunc, depth int, defaultUsed bool) error {
	if depth > maxDepth {
		return ErrDepthExceeded
	}
	if !isKnownKind(v.Kind) {
		if def == nil || defaultUsed {
			return ErrUnsupportedType
		}
		sub, err := def(v)
		if err != nil {
			return err
		}
		return encodeValue(w, sub, def, depth, true)
	}

	switch v.Kind {
	case KindNull:
		w.WriteByte(tagNull)
	case KindBool:
		w.WriteByte(tagBool)
		if v.Bool {
			w.WriteByte(0x01)
		} else {
			w.WriteByte(0x00)
		}
	case KindInt:
		encodeInt(w, v.Int)
	case KindHuge:
		return encodeHuge(w, v.Huge)
	case KindFloat:
		w.WriteByte(tagFloat)
		w.WriteFloat64(v.Float)
	case KindBytes:
		encodeSized(w, tagShortStr, tagMedStr, tagLongStr, len(v.Bytes))
		w.WriteBytes(v.Bytes)
	case KindUtf8:
		encodeSized(w, tagShortUtf8, tagMedUtf8, tagLongUtf8, len(v.Utf8))
		w.WriteBytes([]byte(v.Utf8))
	case KindList:
		return encodeContainer(w, tagShortList, tagMedList, tagLongList, v.Items, def, depth, defaultUsed)
	case KindTuple:
		return encodeContainer(w, tagShortTuple, tagMedTuple, tagLongTuple, v.Items, def, depth, defaultUsed)
	case KindSet:
		return encodeContainer(w, tagShortSet, tagMedSet, tagLongSet, v.Items, def, depth, defaultUsed)
	case KindHash:
		return encodeHash(w, v.Hash, def, depth, defaultUsed)
	case KindDate:
		w.WriteByte(tagDate)
		w.WriteInt16(v.Date.Year)
		w.WriteUint8(v.Date.Month)
		w.WriteUint8(v.Date.Day)
	case KindTime:
		w.WriteByte(tagTime)
		encodeTimeBody(w, v.Time)
	case KindDateTime:
		w.WriteByte(tagDateTime)
		w.WriteInt16(v.DateTime.Year)
		w.WriteUint8(v.DateTime.Month)
		w.WriteUint8(v.DateTime.Day)
		w.WriteUint8(v.DateTime.Hour)
		w.WriteUint8(v.DateTime.Minute)
		w.WriteUint8(v.DateTime.Second)
		w.WriteUint24(v.DateTime.Microsecond)
	case KindTimeDelta:
		w.WriteByte(tagTimeDelta)
		w.WriteInt32(v.TimeDelta.Days)
		w.WriteInt32(v.TimeDelta.Seconds)
		w.WriteInt32(v.TimeDelta.Microseconds)
	case KindDecimal:
		return encodeDecimal(w, v.Decimal)
	case KindSpecialNum:
		return encodeSpecialNum(w, v.SpecialNum)
	}
	return nil
}

func encodeTimeBody(w *buffer.Writer, t Time) {
	w.WriteUint8(t.Hour)
	w.WriteUint8(t.Minute)
	w.WriteUint8(t.Second)
	w.WriteUint24(t.Microsecond)
}

// encodeInt picks the narrowest of the four signed widths that holds v,
// per the boundary checks of spec §8.
func encodeInt(w *buffer.Writer, v int64) {
	switch {
	case v >= -128 && v <= 127:
		w.WriteByte(tagChar)
		w.WriteInt8(int8(v))
	case v >= -32768 && v <= 32767:
		w.WriteByte(tagShort)
		w.WriteInt16(int16(v))
	case v >= -2147483648 && v <= 2147483647:
		w.WriteByte(tagInt)
		w.WriteInt32(int32(v))
	default:
		w.WriteByte(tagLong)
		w.WriteInt64(v)
	}
}

var (
	minInt64Big = big.NewInt(-1 << 63)
	maxInt64Big = big.NewInt(1<<63 - 1)
)

// encodeHuge encodes a Huge value. If it fits in a signed 64-bit integer
// it is demoted to one of the Int widths instead, per spec §3's
// invariant that Huge is used only when Int cannot hold the value.
func encodeHuge(w *buffer.Writer, v *big.Int) error {
	if v == nil {
		v = new(big.Int)
	}
	if v.Cmp(minInt64Big) >= 0 && v.Cmp(maxInt64Big) <= 0 {
		encodeInt(w, v.Int64())
		return nil
	}
	body := twosComplementMinimal(v)
	w.WriteByte(tagHuge)
	w.WriteUint32(uint32(len(body)))
	w.WriteBytes(body)
	return nil
}

// twosComplementMinimal returns the minimal-length big-endian two's
// complement encoding of v, including the sign bit. See spec §9's
// "Huge minimum length" design note: one extra bit is reserved for sign
// so −2^(8n−1) and +2^(8n−1)−1 both fit in n bytes.
func twosComplementMinimal(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{0x00}
	}

	var bitLen int
	if v.Sign() > 0 {
		bitLen = v.BitLen() + 1
	} else {
		abs := new(big.Int).Abs(v)
		bitLen = abs.BitLen()
		threshold := new(big.Int).Lsh(big.NewInt(1), uint(bitLen-1))
		if abs.Cmp(threshold) != 0 {
			bitLen++
		}
	}

	nbytes := (bitLen + 7) / 8
	if nbytes == 0 {
		nbytes = 1
	}

	out := make([]byte, nbytes)
	if v.Sign() >= 0 {
		b := v.Bytes()
		copy(out[nbytes-len(b):], b)
	} else {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*nbytes))
		tc := new(big.Int).Add(mod, v)
		b := tc.Bytes()
		copy(out[nbytes-len(b):], b)
	}
	return out
}

// encodeSized writes the tag and size prefix for a Bytes/Utf8 value,
// choosing the narrowest of the three width classes that fits n.
func encodeSized(w *buffer.Writer, shortTag, medTag, longTag byte, n int) {
	switch {
	case n <= shortMax:
		w.WriteByte(shortTag)
		w.WriteUint8(uint8(n))
	case n <= mediumMax:
		w.WriteByte(medTag)
		w.WriteUint16(uint16(n))
	default:
		w.WriteByte(longTag)
		w.WriteUint32(uint32(n))
	}
}

func encodeContainer(w *buffer.Writer, shortTag, medTag, longTag byte, items []Value, def DefaultFunc, depth int, defaultUsed bool) error {
	encodeSized(w, shortTag, medTag, longTag, len(items))
	for i := range items {
		if err := encodeValue(w, items[i], def, depth+1, defaultUsed); err != nil {
			return err
		}
	}
	return nil
}

func encodeHash(w *buffer.Writer, entries []HashEntry, def DefaultFunc, depth int, defaultUsed bool) error {
	encodeSized(w, tagShortHash, tagMedHash, tagLongHash, len(entries))
	for i := range entries {
		if err := encodeValue(w, entries[i].Key, def, depth+1, defaultUsed); err != nil {
			return err
		}
		if err := encodeValue(w, entries[i].Value, def, depth+1, defaultUsed); err != nil {
			return err
		}
	}
	return nil
}

func encodeDecimal(w *buffer.Writer, d Decimal) error {
	for _, digit := range d.Digits {
		if digit > 9 {
			return ErrInvalidDigit
		}
	}
	w.WriteByte(tagDecimal)
	if d.Negative {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
	w.WriteInt16(d.Exponent)
	w.WriteUint16(uint16(len(d.Digits)))

	packed := (len(d.Digits) + 1) / 2
	for i := 0; i < packed; i++ {
		lo := d.Digits[2*i]
		var hi byte
		if 2*i+1 < len(d.Digits) {
			hi = d.Digits[2*i+1]
		}
		w.WriteByte(lo | hi<<4)
	}
	return nil
}

func encodeSpecialNum(w *buffer.Writer, s SpecialKind) error {
	w.WriteByte(tagSpecialNum)
	switch s {
	case PositiveInfinity:
		w.WriteByte(specialInfinity)
	case NegativeInfinity:
		w.WriteByte(specialInfinity | 0x01)
	case QuietNaN:
		w.WriteByte(specialNaN)
	case SignalingNaN:
		w.WriteByte(specialNaN | 0x01)
	default:
		return ErrUnsupportedType
	}
	return nil
}
