package codec

import (
	"encoding/binary"
	stderrors "errors"
	"io"
	"math"
	"unicode/utf8"

	wordcodec "github.com/wippyai/word-codec"
	"github.com/wippyai/word-codec/errors"
)

// Decoder reconstructs one typed value from a word stream, replaying the
// packing state machine's rules in reverse. The value being built drives the
// same depth-first traversal its encoder did; the two traversals must agree
// on the shape, since the wire format carries no type information.
//
// A Decoder must be driven by a single goroutine.
type Decoder struct {
	src wordcodec.WordSource
	up  unpacker
}

func NewDecoder(src wordcodec.WordSource) *Decoder {
	return &Decoder{src: src}
}

// sourceErr distinguishes an exhausted source (truncated input, the caller
// may fetch more) from a transport failure.
func sourceErr(shape string, err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Truncated(errors.PhaseDecode, shape, err)
	}
	return errors.Transport(errors.PhaseDecode, err)
}

func readOneWord(src wordcodec.WordSource, shape string) (uint32, error) {
	words, err := src.ReadWords(1)
	if err != nil {
		return 0, sourceErr(shape, err)
	}
	return words[0], nil
}

// word reads one directly word-encoded value, first discarding stale packed
// lanes exactly where the encoder force-flushed.
func (d *Decoder) word(shape string) (uint32, error) {
	d.up.sync()
	return readOneWord(d.src, shape)
}

// Bool decodes a packed byte; values other than 0 and 1 are malformed.
func (d *Decoder) Bool() (bool, error) {
	b, err := d.Uint8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Malformed(errors.PhaseDecode, "boolean", "byte is neither 0 nor 1")
	}
}

// Uint8 pulls one byte from the packing state machine: a lane of the current
// packed word inside a composite, a full word truncated to its low byte at
// top level.
func (d *Decoder) Uint8() (uint8, error) {
	return d.up.readByte(d.src)
}

func (d *Decoder) Int8() (int8, error) {
	v, err := d.Int32()
	return int8(v), err
}

func (d *Decoder) Int16() (int16, error) {
	v, err := d.Int32()
	return int16(v), err
}

func (d *Decoder) Int32() (int32, error) {
	v, err := d.word("integer")
	return int32(v), err
}

func (d *Decoder) Uint16() (uint16, error) {
	v, err := d.word("integer")
	return uint16(v), err
}

func (d *Decoder) Uint32() (uint32, error) {
	return d.word("integer")
}

// Uint64 reads two direct words, low half then high half.
func (d *Decoder) Uint64() (uint64, error) {
	d.up.sync()
	words, err := d.src.ReadWords(2)
	if err != nil {
		return 0, sourceErr("integer", err)
	}
	return uint64(words[0]) | uint64(words[1])<<32, nil
}

func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Uint128 reads 16 raw little-endian bytes, consuming whole words.
func (d *Decoder) Uint128() (lo, hi uint64, err error) {
	d.up.sync()
	b, err := d.src.ReadPaddedBytes(16)
	if err != nil {
		return 0, 0, sourceErr("128-bit integer", err)
	}
	return binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]), nil
}

func (d *Decoder) Int128() (lo uint64, hi int64, err error) {
	l, h, err := d.Uint128()
	return l, int64(h), err
}

func (d *Decoder) Float32() (float32, error) {
	v, err := d.word("float")
	return math.Float32frombits(v), err
}

func (d *Decoder) Float64() (float64, error) {
	v, err := d.Uint64()
	return math.Float64frombits(v), err
}

// Rune decodes a code point word and rejects values outside the Unicode
// scalar range.
func (d *Decoder) Rune() (rune, error) {
	v, err := d.word("character")
	if err != nil {
		return 0, err
	}
	r := rune(v)
	if !validScalar(r) {
		return 0, errors.New(errors.PhaseDecode, errors.KindMalformed).
			Shape("character").
			Value(v).
			Detail("invalid Unicode scalar value: 0x%X", v).
			Build()
	}
	return r, nil
}

// String decodes a count word and that many raw UTF-8 bytes, discarding the
// zero padding of the final word.
func (d *Decoder) String() (string, error) {
	b, err := d.rawBytes("text")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, b)
	}
	return string(b), nil
}

// Bytes decodes a byte buffer: a count word, then the raw bytes.
func (d *Decoder) Bytes() ([]byte, error) {
	return d.rawBytes("byte buffer")
}

func (d *Decoder) rawBytes(shape string) ([]byte, error) {
	n, err := d.word(shape)
	if err != nil {
		return nil, err
	}
	if n > MaxBytesLen {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformed).
			Shape(shape).
			Detail("length %d exceeds limit %d", n, MaxBytesLen).
			Build()
	}
	// Exact word cost is known up front; reject before allocating.
	if s, ok := d.src.(wordcodec.SourceSizer); ok {
		needed := uint32((uint64(n) + 3) / 4)
		if needed > s.Remaining() {
			return nil, errors.CountExceedsInput(errors.PhaseDecode, shape, n, s.Remaining())
		}
	}
	b, err := d.src.ReadPaddedBytes(n)
	if err != nil {
		return nil, sourceErr(shape, err)
	}
	return b, nil
}

// Option decodes the presence word. When it returns true, the caller decodes
// the inner value immediately after.
func (d *Decoder) Option() (bool, error) {
	v, err := d.word("option")
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Malformed(errors.PhaseDecode, "option", "presence word is neither 0 nor 1")
	}
}

// Unit consumes nothing.
func (d *Decoder) Unit() error {
	return nil
}

// Variant decodes a discriminant word and validates it against the recipient
// type's case count.
func (d *Decoder) Variant(numCases uint32) (uint32, error) {
	v, err := d.word("variant")
	if err != nil {
		return 0, err
	}
	if v >= numCases {
		return 0, errors.InvalidDiscriminant(errors.PhaseDecode, v, numCases)
	}
	return v, nil
}

// BeginSeq opens a sequence scope and reads the element count. Counts beyond
// the hard cap or provably beyond the remaining input fail before the caller
// allocates.
func (d *Decoder) BeginSeq() (uint32, error) {
	return d.beginCounted("sequence", 4)
}

func (d *Decoder) EndSeq() error {
	return d.up.closeScope()
}

// BeginMap opens a map scope and reads the entry count; entries follow as
// key then value.
func (d *Decoder) BeginMap() (uint32, error) {
	// a map entry costs at least two packed bytes
	return d.beginCounted("map", 2)
}

func (d *Decoder) EndMap() error {
	return d.up.closeScope()
}

// beginCounted reads a count word inside a fresh scope. perWord is the
// maximum number of elements one remaining word could hold, used for the
// conservative remaining-input check.
func (d *Decoder) beginCounted(shape string, perWord uint32) (uint32, error) {
	d.up.openScope()
	n, err := d.word(shape)
	if err != nil {
		return 0, err
	}
	if n > MaxSeqLen {
		return 0, errors.New(errors.PhaseDecode, errors.KindMalformed).
			Shape(shape).
			Detail("count %d exceeds limit %d", n, MaxSeqLen).
			Build()
	}
	if s, ok := d.src.(wordcodec.SourceSizer); ok {
		// cheapest possible element is a quarter of a word
		minWords := uint32((uint64(n) + uint64(perWord) - 1) / uint64(perWord))
		if minWords > s.Remaining() {
			return 0, errors.CountExceedsInput(errors.PhaseDecode, shape, n, s.Remaining())
		}
	}
	return n, nil
}

// BeginStruct opens the scope of a fixed aggregate, tuple, or field list;
// there is no count word to read.
func (d *Decoder) BeginStruct() error {
	d.up.openScope()
	return nil
}

func (d *Decoder) EndStruct() error {
	return d.up.closeScope()
}

// BeginVariant opens a payload-carrying variant: the scope and the
// discriminant word, validated against numCases.
func (d *Decoder) BeginVariant(numCases uint32) (uint32, error) {
	d.up.openScope()
	v, err := d.word("variant")
	if err != nil {
		return 0, err
	}
	if v >= numCases {
		return 0, errors.InvalidDiscriminant(errors.PhaseDecode, v, numCases)
	}
	return v, nil
}

func (d *Decoder) EndVariant() error {
	return d.up.closeScope()
}
