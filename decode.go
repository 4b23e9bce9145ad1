package mummy

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/mummyfmt/mummy/internal/buffer"
)

// decodeValue reads exactly one self-contained Value starting at r's
// cursor and advances past it. depth mirrors the encoder's cap (spec §9
// Open Question decision 4): a crafted stream nesting containers past
// maxDepth is rejected rather than recursing unboundedly.
func decodeValue(r *buffer.Reader, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, ErrDepthExceeded
	}

	tag, err := r.ReadByte()
	if err != nil {
		return Value{}, truncated(err)
	}

	switch tag {
	case tagNull:
		return Null, nil
	case tagBool:
		b, err := r.ReadByte()
		if err != nil {
			return Value{}, truncated(err)
		}
		return NewBool(b != 0), nil
	case tagChar:
		v, err := r.ReadInt8()
		if err != nil {
			return Value{}, truncated(err)
		}
		return NewInt(int64(v)), nil
	case tagShort:
		v, err := r.ReadInt16()
		if err != nil {
			return Value{}, truncated(err)
		}
		return NewInt(int64(v)), nil
	case tagInt:
		v, err := r.ReadInt32()
		if err != nil {
			return Value{}, truncated(err)
		}
		return NewInt(int64(v)), nil
	case tagLong:
		v, err := r.ReadInt64()
		if err != nil {
			return Value{}, truncated(err)
		}
		return NewInt(v), nil
	case tagHuge:
		return decodeHuge(r)
	case tagFloat:
		v, err := r.ReadFloat64()
		if err != nil {
			return Value{}, truncated(err)
		}
		return NewFloat(v), nil
	case tagShortStr:
		return decodeSizedBytes(r, 1)
	case tagMedStr:
		return decodeSizedBytes(r, 2)
	case tagLongStr:
		return decodeSizedBytes(r, 4)
	case tagShortUtf8:
		return decodeSizedUtf8(r, 1)
	case tagMedUtf8:
		return decodeSizedUtf8(r, 2)
	case tagLongUtf8:
		return decodeSizedUtf8(r, 4)
	case tagShortList:
		return decodeContainer(r, 1, KindList, depth)
	case tagMedList:
		return decodeContainer(r, 2, KindList, depth)
	case tagLongList:
		return decodeContainer(r, 4, KindList, depth)
	case tagShortTuple:
		return decodeContainer(r, 1, KindTuple, depth)
	case tagMedTuple:
		return decodeContainer(r, 2, KindTuple, depth)
	case tagLongTuple:
		return decodeContainer(r, 4, KindTuple, depth)
	case tagShortSet:
		return decodeContainer(r, 1, KindSet, depth)
	case tagMedSet:
		return decodeContainer(r, 2, KindSet, depth)
	case tagLongSet:
		return decodeContainer(r, 4, KindSet, depth)
	case tagShortHash:
		return decodeHash(r, 1, depth)
	case tagMedHash:
		return decodeHash(r, 2, depth)
	case tagLongHash:
		return decodeHash(r, 4, depth)
	case tagDate:
		return decodeDate(r)
	case tagTime:
		return decodeTime(r)
	case tagDateTime:
		return decodeDateTime(r)
	case tagTimeDelta:
		return decodeTimeDelta(r)
	case tagDecimal:
		return decodeDecimal(r)
	case tagSpecialNum:
		return decodeSpecialNum(r)
	default:
		return Value{}, fmt.Errorf("%w: 0x%02x", ErrBadTag, tag)
	}
}

// truncated wraps a short-read from the buffer package as the package's
// own ErrTruncated sentinel.
func truncated(err error) error {
	if err == buffer.ErrShortRead {
		return ErrTruncated
	}
	return err
}

func readSizePrefix(r *buffer.Reader, width int) (int, error) {
	switch width {
	case 1:
		v, err := r.ReadUint8()
		return int(v), truncated(err)
	case 2:
		v, err := r.ReadUint16()
		return int(v), truncated(err)
	case 4:
		v, err := r.ReadUint32()
		return int(v), truncated(err)
	default:
		panic("mummy: invalid size prefix width")
	}
}

func decodeSizedBytes(r *buffer.Reader, width int) (Value, error) {
	n, err := readSizePrefix(r, width)
	if err != nil {
		return Value{}, err
	}
	if r.Remaining() < n {
		return Value{}, ErrTruncated
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return Value{}, truncated(err)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return NewBytes(out), nil
}

func decodeSizedUtf8(r *buffer.Reader, width int) (Value, error) {
	n, err := readSizePrefix(r, width)
	if err != nil {
		return Value{}, err
	}
	if r.Remaining() < n {
		return Value{}, ErrTruncated
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return Value{}, truncated(err)
	}
	if !utf8.Valid(b) {
		return Value{}, ErrBadUtf8
	}
	return NewUtf8(string(b)), nil
}

func decodeContainer(r *buffer.Reader, width int, kind Kind, depth int) (Value, error) {
	n, err := readSizePrefix(r, width)
	if err != nil {
		return Value{}, err
	}
	// Every element consumes at least one tag byte, so n cannot exceed
	// the remaining input; this both rejects corrupt sizes early and
	// caps the preallocation an adversarial count could otherwise force.
	if n > r.Remaining() {
		return Value{}, ErrTruncated
	}
	items := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := decodeValue(r, depth+1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	return Value{Kind: kind, Items: items}, nil
}

func decodeHash(r *buffer.Reader, width int, depth int) (Value, error) {
	n, err := readSizePrefix(r, width)
	if err != nil {
		return Value{}, err
	}
	// Each pair consumes at least two tag bytes.
	if n*2 > r.Remaining() {
		return Value{}, ErrTruncated
	}
	entries := make([]HashEntry, 0, n)
	for i := 0; i < n; i++ {
		key, err := decodeValue(r, depth+1)
		if err != nil {
			return Value{}, err
		}
		val, err := decodeValue(r, depth+1)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, HashEntry{Key: key, Value: val})
	}
	return NewHash(entries), nil
}

func decodeHuge(r *buffer.Reader) (Value, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return Value{}, truncated(err)
	}
	if r.Remaining() < int(n) {
		return Value{}, ErrTruncated
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return Value{}, truncated(err)
	}
	return NewHuge(fromTwosComplement(b)), nil
}

// fromTwosComplement interprets b as a big-endian two's complement
// signed integer.
func fromTwosComplement(b []byte) *big.Int {
	v := new(big.Int)
	if len(b) == 0 {
		return v
	}
	v.SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		v.Sub(v, mod)
	}
	return v
}

func decodeDate(r *buffer.Reader) (Value, error) {
	year, err := r.ReadInt16()
	if err != nil {
		return Value{}, truncated(err)
	}
	month, err := r.ReadUint8()
	if err != nil {
		return Value{}, truncated(err)
	}
	day, err := r.ReadUint8()
	if err != nil {
		return Value{}, truncated(err)
	}
	return NewDate(Date{Year: year, Month: month, Day: day}), nil
}

func decodeTimeBody(r *buffer.Reader) (hour, minute, second uint8, micro uint32, err error) {
	hour, err = r.ReadUint8()
	if err != nil {
		return 0, 0, 0, 0, truncated(err)
	}
	minute, err = r.ReadUint8()
	if err != nil {
		return 0, 0, 0, 0, truncated(err)
	}
	second, err = r.ReadUint8()
	if err != nil {
		return 0, 0, 0, 0, truncated(err)
	}
	micro, err = r.ReadUint24()
	if err != nil {
		return 0, 0, 0, 0, truncated(err)
	}
	return hour, minute, second, micro, nil
}

func decodeTime(r *buffer.Reader) (Value, error) {
	hour, minute, second, micro, err := decodeTimeBody(r)
	if err != nil {
		return Value{}, err
	}
	return NewTime(Time{Hour: hour, Minute: minute, Second: second, Microsecond: micro}), nil
}

func decodeDateTime(r *buffer.Reader) (Value, error) {
	year, err := r.ReadInt16()
	if err != nil {
		return Value{}, truncated(err)
	}
	month, err := r.ReadUint8()
	if err != nil {
		return Value{}, truncated(err)
	}
	day, err := r.ReadUint8()
	if err != nil {
		return Value{}, truncated(err)
	}
	hour, minute, second, micro, err := decodeTimeBody(r)
	if err != nil {
		return Value{}, err
	}
	return NewDateTime(DateTime{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second, Microsecond: micro,
	}), nil
}

func decodeTimeDelta(r *buffer.Reader) (Value, error) {
	days, err := r.ReadInt32()
	if err != nil {
		return Value{}, truncated(err)
	}
	seconds, err := r.ReadInt32()
	if err != nil {
		return Value{}, truncated(err)
	}
	micros, err := r.ReadInt32()
	if err != nil {
		return Value{}, truncated(err)
	}
	return NewTimeDelta(TimeDelta{Days: days, Seconds: seconds, Microseconds: micros}), nil
}

func decodeDecimal(r *buffer.Reader) (Value, error) {
	signByte, err := r.ReadUint8()
	if err != nil {
		return Value{}, truncated(err)
	}
	exponent, err := r.ReadInt16()
	if err != nil {
		return Value{}, truncated(err)
	}
	count, err := r.ReadUint16()
	if err != nil {
		return Value{}, truncated(err)
	}
	packed := (int(count) + 1) / 2
	if r.Remaining() < packed {
		return Value{}, ErrTruncated
	}
	body, err := r.ReadBytes(packed)
	if err != nil {
		return Value{}, truncated(err)
	}

	var digits []byte
	if count > 0 {
		digits = make([]byte, count)
	}
	for i := 0; i < int(count); i++ {
		byteVal := body[i/2]
		var nibble byte
		if i%2 == 0 {
			nibble = byteVal & 0x0F
		} else {
			nibble = byteVal >> 4
		}
		if nibble > 9 {
			return Value{}, ErrBadDecimalDigit
		}
		digits[i] = nibble
	}

	return NewDecimal(Decimal{
		Negative: signByte != 0,
		Exponent: exponent,
		Digits:   digits,
	}), nil
}

func decodeSpecialNum(r *buffer.Reader) (Value, error) {
	flags, err := r.ReadUint8()
	if err != nil {
		return Value{}, truncated(err)
	}
	switch flags & 0xF0 {
	case specialInfinity:
		if flags&0x01 != 0 {
			return NewSpecialNum(NegativeInfinity), nil
		}
		return NewSpecialNum(PositiveInfinity), nil
	case specialNaN:
		if flags&0x01 != 0 {
			return NewSpecialNum(SignalingNaN), nil
		}
		return NewSpecialNum(QuietNaN), nil
	default:
		return Value{}, ErrBadSpecialNum
	}
}
