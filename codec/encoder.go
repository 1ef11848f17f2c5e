package codec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	wordcodec "github.com/wippyai/word-codec"
	"github.com/wippyai/word-codec/errors"
)

// Encoder converts one typed value into a word stream. The value drives a
// depth-first traversal of its own shape by calling one Encoder method per
// primitive and bracketing composites with Begin/End pairs; the Encoder turns
// each call into word writes, delegating single-byte values to the packing
// state machine.
//
// Writes reach the sink in strict encounter order. The only buffering is the
// single pending accumulator word. An Encoder must be driven by a single
// goroutine.
type Encoder struct {
	sink wordcodec.WordSink
	pk   packer
}

func NewEncoder(sink wordcodec.WordSink) *Encoder {
	return &Encoder{sink: sink}
}

// writeWord emits one directly word-encoded value, force-flushing any
// pending packed bytes first.
func (e *Encoder) writeWord(v uint32) error {
	if err := e.pk.flush(e.sink); err != nil {
		return err
	}
	w := [1]uint32{v}
	if err := e.sink.WriteWords(w[:]); err != nil {
		return errors.Transport(errors.PhaseEncode, err)
	}
	return nil
}

// Bool encodes a boolean as a packed byte 0 or 1.
func (e *Encoder) Bool(v bool) error {
	var b byte
	if v {
		b = 1
	}
	return e.Uint8(b)
}

// Uint8 routes the byte through the packing state machine: packed four to a
// word inside a composite, widened to a full word at top level.
func (e *Encoder) Uint8(v uint8) error {
	return e.pk.packByte(e.sink, v)
}

func (e *Encoder) Int8(v int8) error {
	return e.Int32(int32(v))
}

func (e *Encoder) Int16(v int16) error {
	return e.Int32(int32(v))
}

// Int32 encodes the value as one direct word of 32-bit two's-complement.
func (e *Encoder) Int32(v int32) error {
	return e.Uint32(uint32(v))
}

func (e *Encoder) Uint16(v uint16) error {
	return e.Uint32(uint32(v))
}

func (e *Encoder) Uint32(v uint32) error {
	return e.writeWord(v)
}

// Uint64 encodes two direct words, low half then high half.
func (e *Encoder) Uint64(v uint64) error {
	if err := e.Uint32(uint32(v)); err != nil {
		return err
	}
	return e.Uint32(uint32(v >> 32))
}

func (e *Encoder) Int64(v int64) error {
	return e.Uint64(uint64(v))
}

// Uint128 encodes a 128-bit integer given as two 64-bit halves: forced
// flush, then 16 raw bytes least-significant-byte-first, word-padded.
func (e *Encoder) Uint128(lo, hi uint64) error {
	if err := e.pk.flush(e.sink); err != nil {
		return err
	}
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], lo)
	binary.LittleEndian.PutUint64(b[8:], hi)
	if err := e.sink.WritePaddedBytes(b[:]); err != nil {
		return errors.Transport(errors.PhaseEncode, err)
	}
	return nil
}

func (e *Encoder) Int128(lo uint64, hi int64) error {
	return e.Uint128(lo, uint64(hi))
}

// Float32 encodes the raw bit pattern, identical to a 32-bit unsigned
// integer of the same bits.
func (e *Encoder) Float32(v float32) error {
	return e.Uint32(math.Float32bits(v))
}

func (e *Encoder) Float64(v float64) error {
	return e.Uint64(math.Float64bits(v))
}

// Rune encodes a character's code point as one direct word.
func (e *Encoder) Rune(r rune) error {
	if !validScalar(r) {
		return errors.New(errors.PhaseEncode, errors.KindMalformed).
			Shape("character").
			Value(r).
			Detail("invalid Unicode scalar value: 0x%X", r).
			Build()
	}
	return e.Uint32(uint32(r))
}

// String encodes UTF-8 text: forced flush, one word with the byte count,
// then the raw bytes zero-padded to the next word boundary.
func (e *Encoder) String(s string) error {
	if !utf8.ValidString(s) {
		return errors.InvalidUTF8(errors.PhaseEncode, []byte(s))
	}
	return e.rawBytes("text", []byte(s))
}

// Bytes encodes a byte buffer exactly as String encodes text, without the
// UTF-8 requirement.
func (e *Encoder) Bytes(b []byte) error {
	return e.rawBytes("byte buffer", b)
}

func (e *Encoder) rawBytes(shape string, b []byte) error {
	if len(b) > MaxBytesLen {
		return errors.New(errors.PhaseEncode, errors.KindMalformed).
			Shape(shape).
			Detail("length %d exceeds limit %d", len(b), MaxBytesLen).
			Build()
	}
	if err := e.Uint32(uint32(len(b))); err != nil {
		return err
	}
	if err := e.sink.WritePaddedBytes(b); err != nil {
		return errors.Transport(errors.PhaseEncode, err)
	}
	return nil
}

// Option encodes the presence word: 0 for absent, 1 for present. When
// present, the caller encodes the inner value immediately after.
func (e *Encoder) Option(present bool) error {
	if present {
		return e.Uint32(1)
	}
	return e.Uint32(0)
}

// Unit contributes nothing to the stream.
func (e *Encoder) Unit() error {
	return nil
}

// Variant encodes a tagged-variant discriminant. For a payload-less variant
// this is the entire encoding; a variant with payload uses BeginVariant.
func (e *Encoder) Variant(index uint32) error {
	return e.Uint32(index)
}

// BeginSeq opens a sequence of n elements: one scope and a direct count
// word. Sequences of unknown length (n < 0) cannot be encoded.
func (e *Encoder) BeginSeq(n int) error {
	return e.beginCounted("sequence", n)
}

func (e *Encoder) EndSeq() error {
	return e.pk.closeScope(e.sink)
}

// BeginMap opens a map of n entries; each entry is encoded key then value.
func (e *Encoder) BeginMap(n int) error {
	return e.beginCounted("map", n)
}

func (e *Encoder) EndMap() error {
	return e.pk.closeScope(e.sink)
}

func (e *Encoder) beginCounted(shape string, n int) error {
	if n < 0 {
		return errors.Unsupported(errors.PhaseEncode, shape+" of unknown length")
	}
	if n > MaxSeqLen {
		return errors.New(errors.PhaseEncode, errors.KindMalformed).
			Shape(shape).
			Detail("length %d exceeds limit %d", n, MaxSeqLen).
			Build()
	}
	e.pk.openScope()
	return e.Uint32(uint32(n))
}

// BeginStruct opens a fixed aggregate, tuple, or field list. No count word
// is written; the width is statically known to both sides.
func (e *Encoder) BeginStruct() error {
	e.pk.openScope()
	return nil
}

func (e *Encoder) EndStruct() error {
	return e.pk.closeScope(e.sink)
}

// BeginVariant opens a tagged variant with payload: the discriminant word
// followed by a scope for the payload element(s).
func (e *Encoder) BeginVariant(index uint32) error {
	e.pk.openScope()
	return e.Uint32(index)
}

func (e *Encoder) EndVariant() error {
	return e.pk.closeScope(e.sink)
}

// Any encodes a dynamically typed value when its concrete type is one of the
// supported primitive kinds or implements Marshaler. Anything else - in
// particular a request to render an arbitrary value as free-form text - is
// an unsupported construct and fails before emitting output.
//
// int and uint encode as their 64-bit forms. int32 always encodes as a
// signed 32-bit integer; use Rune for characters.
func (e *Encoder) Any(v any) error {
	switch val := v.(type) {
	case Marshaler:
		return val.MarshalWords(e)
	case bool:
		return e.Bool(val)
	case uint8:
		return e.Uint8(val)
	case int8:
		return e.Int8(val)
	case uint16:
		return e.Uint16(val)
	case int16:
		return e.Int16(val)
	case uint32:
		return e.Uint32(val)
	case int32:
		return e.Int32(val)
	case uint64:
		return e.Uint64(val)
	case int64:
		return e.Int64(val)
	case uint:
		return e.Uint64(uint64(val))
	case int:
		return e.Int64(int64(val))
	case float32:
		return e.Float32(val)
	case float64:
		return e.Float64(val)
	case string:
		return e.String(val)
	case []byte:
		return e.Bytes(val)
	default:
		return errors.Unsupported(errors.PhaseEncode, "dynamic value of unknown shape")
	}
}

// depth reports open scopes; used by the entry points to reject unbalanced
// traversals.
func (e *Encoder) depth() uint32 {
	return e.pk.depth
}

func validScalar(r rune) bool {
	if r < 0 || r > utf8.MaxRune {
		return false
	}
	return r < 0xD800 || r > 0xDFFF
}
