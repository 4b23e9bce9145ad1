// Package mummy implements the mummy binary serialization format: a
// self-describing encoding for a fixed, closed set of primitive and
// composite values, plus an optional LZF compression envelope.
//
// The package operates entirely over the abstract Value type defined in
// this file. Projecting a host type into a Value, and the reverse, is the
// caller's job — mummy has no knowledge of any type system but its own.
package mummy

import "math/big"

// Kind discriminates the variant a Value holds. It is the closed set
// named in the format's tag table; no other Kind can ever be added
// without a wire-format revision.
type Kind uint8

// The complete set of Value variants.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindHuge
	KindFloat
	KindBytes
	KindUtf8
	KindList
	KindTuple
	KindSet
	KindHash
	KindDate
	KindTime
	KindDateTime
	KindTimeDelta
	KindDecimal
	KindSpecialNum
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindHuge:
		return "Huge"
	case KindFloat:
		return "Float"
	case KindBytes:
		return "Bytes"
	case KindUtf8:
		return "Utf8"
	case KindList:
		return "List"
	case KindTuple:
		return "Tuple"
	case KindSet:
		return "Set"
	case KindHash:
		return "Hash"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindDateTime:
		return "DateTime"
	case KindTimeDelta:
		return "TimeDelta"
	case KindDecimal:
		return "Decimal"
	case KindSpecialNum:
		return "SpecialNum"
	default:
		return "Unknown"
	}
}

// SpecialKind names one of the four IEEE-like exceptional values a
// SpecialNum can hold.
type SpecialKind uint8

const (
	// PositiveInfinity is +∞.
	PositiveInfinity SpecialKind = iota
	// NegativeInfinity is −∞.
	NegativeInfinity
	// QuietNaN is a quiet not-a-number.
	QuietNaN
	// SignalingNaN is a signalling not-a-number.
	SignalingNaN
)

// Date holds a calendar date's field tuple. Turning it into a host
// calendar type is the caller's job.
type Date struct {
	Year  int16
	Month uint8
	Day   uint8
}

// Time holds a time-of-day field tuple. Microsecond must fit in 24 bits
// ([0, 2^24)), per the wire format.
type Time struct {
	Hour        uint8
	Minute      uint8
	Second      uint8
	Microsecond uint32
}

// DateTime holds a combined date/time field tuple.
type DateTime struct {
	Year        int16
	Month       uint8
	Day         uint8
	Hour        uint8
	Minute      uint8
	Second      uint8
	Microsecond uint32
}

// TimeDelta holds a signed duration as three independent signed fields,
// matching the wire format exactly — it is not normalized or collapsed
// into a single unit.
type TimeDelta struct {
	Days         int32
	Seconds      int32
	Microseconds int32
}

// Decimal holds an arbitrary-precision decimal's field tuple: a sign, a
// power-of-ten exponent, and a sequence of base-10 digits, most
// significant first. Each digit must be in [0, 9].
type Decimal struct {
	Negative bool
	Exponent int16
	Digits   []byte
}

// HashEntry is one key/value pair of a Hash. Hash is represented as an
// ordered slice of entries, not a Go map, because the format preserves
// decode-order and never canonicalizes it (spec §3, §5) — a Go map has no
// stable iteration order and would silently discard that guarantee.
type HashEntry struct {
	Key   Value
	Value Value
}

// Value is the closed sum of every type the mummy format can carry. Only
// the field(s) matching Kind are meaningful; all others are zero.
type Value struct {
	Kind Kind

	Bool  bool
	Int   int64
	Huge  *big.Int
	Float float64
	Bytes []byte
	Utf8  string

	// List, Tuple, and Set share a representation; Kind distinguishes
	// their wire tags and semantics (Set has no duplicate-detection
	// performed by the codec, per spec §3).
	Items []Value

	Hash []HashEntry

	Date       Date
	Time       Time
	DateTime   DateTime
	TimeDelta  TimeDelta
	Decimal    Decimal
	SpecialNum SpecialKind
}

// Null is the singleton Null value.
var Null = Value{Kind: KindNull}

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NewInt constructs an Int value. The encoder chooses the narrowest wire
// width that holds v.
func NewInt(v int64) Value { return Value{Kind: KindInt, Int: v} }

// NewHuge constructs a Huge value from an arbitrary-precision integer.
func NewHuge(v *big.Int) Value { return Value{Kind: KindHuge, Huge: v} }

// NewFloat constructs a Float value.
func NewFloat(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// NewBytes constructs a Bytes value.
func NewBytes(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// NewUtf8 constructs a Utf8 value. The caller is responsible for ensuring
// s is well-formed UTF-8; the encoder does not validate it, only the
// decoder does (spec §4.3's BadUtf8).
func NewUtf8(s string) Value { return Value{Kind: KindUtf8, Utf8: s} }

// NewList constructs a List value.
func NewList(items []Value) Value { return Value{Kind: KindList, Items: items} }

// NewTuple constructs a Tuple value.
func NewTuple(items []Value) Value { return Value{Kind: KindTuple, Items: items} }

// NewSet constructs a Set value. Element order is whatever the caller
// supplies; the codec neither sorts nor deduplicates it.
func NewSet(items []Value) Value { return Value{Kind: KindSet, Items: items} }

// NewHash constructs a Hash value from an ordered slice of entries.
func NewHash(entries []HashEntry) Value { return Value{Kind: KindHash, Hash: entries} }

// NewDate constructs a Date value.
func NewDate(d Date) Value { return Value{Kind: KindDate, Date: d} }

// NewTime constructs a Time value.
func NewTime(t Time) Value { return Value{Kind: KindTime, Time: t} }

// NewDateTime constructs a DateTime value.
func NewDateTime(dt DateTime) Value { return Value{Kind: KindDateTime, DateTime: dt} }

// NewTimeDelta constructs a TimeDelta value.
func NewTimeDelta(td TimeDelta) Value { return Value{Kind: KindTimeDelta, TimeDelta: td} }

// NewDecimal constructs a Decimal value.
func NewDecimal(d Decimal) Value { return Value{Kind: KindDecimal, Decimal: d} }

// NewSpecialNum constructs a SpecialNum value.
func NewSpecialNum(s SpecialKind) Value { return Value{Kind: KindSpecialNum, SpecialNum: s} }
