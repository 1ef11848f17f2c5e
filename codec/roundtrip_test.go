package codec

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/word-codec/errors"
	"github.com/wippyai/word-codec/wordio"
)

// sample exercises every shape the wire format supports in one aggregate.
type sample struct {
	U8v     []uint8
	U16v    []uint16
	U32v    []uint32
	U64v    []uint64
	I8v     []int8
	I16v    []int16
	I32v    []int32
	I64v    []int64
	U8s     uint8
	Bs      bool
	SomeS   *uint16
	NoneS   *uint32
	Strings []byte
	Stringv [][]byte
}

func (s sample) MarshalWords(e *Encoder) error {
	if err := e.BeginStruct(); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.U8v, (*Encoder).Uint8); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.U16v, (*Encoder).Uint16); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.U32v, (*Encoder).Uint32); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.U64v, (*Encoder).Uint64); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.I8v, (*Encoder).Int8); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.I16v, (*Encoder).Int16); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.I32v, (*Encoder).Int32); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.I64v, (*Encoder).Int64); err != nil {
		return err
	}
	if err := e.Uint8(s.U8s); err != nil {
		return err
	}
	if err := e.Bool(s.Bs); err != nil {
		return err
	}
	if err := EncodeOption(e, s.SomeS, (*Encoder).Uint16); err != nil {
		return err
	}
	if err := EncodeOption(e, s.NoneS, (*Encoder).Uint32); err != nil {
		return err
	}
	if err := e.Bytes(s.Strings); err != nil {
		return err
	}
	if err := EncodeSeq(e, s.Stringv, (*Encoder).Bytes); err != nil {
		return err
	}
	return e.EndStruct()
}

func (s *sample) UnmarshalWords(d *Decoder) error {
	if err := d.BeginStruct(); err != nil {
		return err
	}
	var err error
	if s.U8v, err = DecodeSeq(d, (*Decoder).Uint8); err != nil {
		return err
	}
	if s.U16v, err = DecodeSeq(d, (*Decoder).Uint16); err != nil {
		return err
	}
	if s.U32v, err = DecodeSeq(d, (*Decoder).Uint32); err != nil {
		return err
	}
	if s.U64v, err = DecodeSeq(d, (*Decoder).Uint64); err != nil {
		return err
	}
	if s.I8v, err = DecodeSeq(d, (*Decoder).Int8); err != nil {
		return err
	}
	if s.I16v, err = DecodeSeq(d, (*Decoder).Int16); err != nil {
		return err
	}
	if s.I32v, err = DecodeSeq(d, (*Decoder).Int32); err != nil {
		return err
	}
	if s.I64v, err = DecodeSeq(d, (*Decoder).Int64); err != nil {
		return err
	}
	if s.U8s, err = d.Uint8(); err != nil {
		return err
	}
	if s.Bs, err = d.Bool(); err != nil {
		return err
	}
	if s.SomeS, err = DecodeOption(d, (*Decoder).Uint16); err != nil {
		return err
	}
	if s.NoneS, err = DecodeOption(d, (*Decoder).Uint32); err != nil {
		return err
	}
	if s.Strings, err = d.Bytes(); err != nil {
		return err
	}
	if s.Stringv, err = DecodeSeq(d, (*Decoder).Bytes); err != nil {
		return err
	}
	return d.EndStruct()
}

// TestGoldenVector pins the exact wire layout of the sample aggregate. Any
// change to these words is a wire-format break.
func TestGoldenVector(t *testing.T) {
	some := uint16(5)
	input := sample{
		U8v:     []uint8{1, 231, 123},
		U16v:    []uint16{124, 41374},
		U32v:    []uint32{14710471, 3590275702, 1, 2},
		U64v:    []uint64{352905235952532, 2147102974910410},
		I8v:     []int8{-1, 120, -22},
		I16v:    []int16{-7932},
		I32v:    []int32{-4327, 35207277},
		I64v:    []int64{-1, 1},
		U8s:     3,
		Bs:      true,
		SomeS:   &some,
		Strings: []byte("Here is a string."),
		Stringv: [][]byte{[]byte("string a"), []byte("34720471290497230")},
	}

	want := []uint32{
		3, 0x007BE701, // u8v: count, then 1|231|123 packed into one word
		2, 124, 41374, // u16v
		4, 14710471, 3590275702, 1, 2, // u32v
		2, 658142100, 82167, 1578999754, 499911, // u64v, low half first
		3, 4294967295, 120, 4294967274, // i8v
		1, 4294959364, // i16v
		2, 4294962969, 35207277, // i32v
		2, 4294967295, 4294967295, 1, 0, // i64v
		259,     // u8s=3 and bs=true packed, flushed by the option word
		1, 5,    // some(5)
		0,       // none
		17, 1701995848, 544434464, 1953701985, 1735289202, 46, // "Here is a string."
		2,                            // stringv count
		8, 1769108595, 1629513582,    // "string a"
		17, 842478643, 825701424, 875575602, 858928953, 48, // "34720471290497230"
	}

	words, err := Encode(input)
	require.NoError(t, err)
	require.Equal(t, want, words)

	var got sample
	require.NoError(t, Decode(words, &got))
	if diff := cmp.Diff(input, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Sequences(t *testing.T) {
	words := encodeWords(t, func(e *Encoder) error {
		return EncodeSeq(e, []uint64{1, 2, 3}, (*Encoder).Uint64)
	})

	dec := NewDecoder(wordio.NewSlice(words))
	got, err := DecodeSeq(dec, (*Decoder).Uint64)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3}, got)
}

func TestRoundTrip_Map(t *testing.T) {
	input := map[string]uint32{"foo": 1, "bar": 2, "baz": 3}

	encode := func() []uint32 {
		return encodeWords(t, func(e *Encoder) error {
			return EncodeMap(e, input, (*Encoder).String, (*Encoder).Uint32)
		})
	}

	words := encode()

	// keys are emitted sorted, so encoding is deterministic
	require.Equal(t, words, encode())

	dec := NewDecoder(wordio.NewSlice(words))
	got, err := DecodeMap(dec, (*Decoder).String, (*Decoder).Uint32)
	require.NoError(t, err)
	require.Equal(t, input, got)
}

func TestRoundTrip_Tuple(t *testing.T) {
	words := encodeWords(t, func(e *Encoder) error {
		if err := e.BeginStruct(); err != nil {
			return err
		}
		if err := e.Uint32(1); err != nil {
			return err
		}
		if err := e.Uint64(2); err != nil {
			return err
		}
		return e.EndStruct()
	})

	dec := NewDecoder(wordio.NewSlice(words))
	require.NoError(t, dec.BeginStruct())
	a, err := dec.Uint32()
	require.NoError(t, err)
	b, err := dec.Uint64()
	require.NoError(t, err)
	require.NoError(t, dec.EndStruct())
	require.Equal(t, uint32(1), a)
	require.Equal(t, uint64(2), b)
}

func TestRoundTrip_NestedOptions(t *testing.T) {
	inner := uint32(42)
	ptr := &inner
	input := &ptr // some(some(42))

	words := encodeWords(t, func(e *Encoder) error {
		return EncodeOption(e, input, func(e *Encoder, v *uint32) error {
			return EncodeOption(e, v, (*Encoder).Uint32)
		})
	})
	require.Equal(t, []uint32{1, 1, 42}, words)

	dec := NewDecoder(wordio.NewSlice(words))
	got, err := DecodeOption(dec, func(d *Decoder) (*uint32, error) {
		return DecodeOption(d, (*Decoder).Uint32)
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, *got)
	require.Equal(t, uint32(42), **got)

	// absent outer layer is a single zero word
	words = encodeWords(t, func(e *Encoder) error {
		return EncodeOption[*uint32](e, nil, func(e *Encoder, v *uint32) error {
			return EncodeOption(e, v, (*Encoder).Uint32)
		})
	})
	require.Equal(t, []uint32{0}, words)
}

func TestRoundTrip_VariantWithPayload(t *testing.T) {
	const numCases = 3 // circle(f64) | square(u32) | dot

	encodeCircle := func(r float64) []uint32 {
		return encodeWords(t, func(e *Encoder) error {
			if err := e.BeginVariant(0); err != nil {
				return err
			}
			if err := e.Float64(r); err != nil {
				return err
			}
			return e.EndVariant()
		})
	}

	words := encodeCircle(2.5)
	dec := NewDecoder(wordio.NewSlice(words))
	idx, err := dec.BeginVariant(numCases)
	require.NoError(t, err)
	require.Equal(t, uint32(0), idx)
	r, err := dec.Float64()
	require.NoError(t, err)
	require.NoError(t, dec.EndVariant())
	require.Equal(t, 2.5, r)

	// payload-less case is the discriminant word alone
	words = encodeWords(t, func(e *Encoder) error { return e.Variant(2) })
	require.Equal(t, []uint32{2}, words)
	dec = NewDecoder(wordio.NewSlice(words))
	idx, err = dec.Variant(numCases)
	require.NoError(t, err)
	require.Equal(t, uint32(2), idx)
}

func TestRoundTrip_Uint128(t *testing.T) {
	words := encodeWords(t, func(e *Encoder) error {
		return e.Uint128(0xDEADBEEFCAFEF00D, 0x0123456789ABCDEF)
	})
	require.Len(t, words, 4)

	dec := NewDecoder(wordio.NewSlice(words))
	lo, hi, err := dec.Uint128()
	require.NoError(t, err)
	require.Equal(t, uint64(0xDEADBEEFCAFEF00D), lo)
	require.Equal(t, uint64(0x0123456789ABCDEF), hi)
}

func TestFloatBitsMatchIntegerEncoding(t *testing.T) {
	f := 2.71

	floatWords := encodeWords(t, func(e *Encoder) error { return e.Float64(f) })
	intWords := encodeWords(t, func(e *Encoder) error { return e.Uint64(math.Float64bits(f)) })
	require.Equal(t, intWords, floatWords)

	f32Words := encodeWords(t, func(e *Encoder) error { return e.Float32(3.14) })
	u32Words := encodeWords(t, func(e *Encoder) error { return e.Uint32(math.Float32bits(3.14)) })
	require.Equal(t, u32Words, f32Words)
}

func TestEncodeWithCapacity_HintNeverChangesOutput(t *testing.T) {
	some := uint16(9)
	input := sample{
		U8v:   []uint8{1, 2, 3, 4, 5},
		Bs:    true,
		SomeS: &some,
	}

	plain, err := Encode(input)
	require.NoError(t, err)

	for _, hint := range []int{0, 1, 64, 4096} {
		hinted, err := EncodeWithCapacity(input, hint)
		require.NoError(t, err)
		require.Equal(t, plain, hinted, "capacity hint %d changed output", hint)
	}
}

type unbalanced struct{}

func (unbalanced) MarshalWords(e *Encoder) error {
	return e.BeginStruct() // never closed
}

func TestEncode_UnbalancedTraversal(t *testing.T) {
	_, err := Encode(unbalanced{})
	require.True(t, errors.IsKind(err, errors.KindInvariant), "error = %v", err)
}

type fuzzPayload struct {
	Data []byte
	Text string
	A    uint32
	B    uint64
	C    uint8
	Flag bool
}

func (p fuzzPayload) MarshalWords(e *Encoder) error {
	if err := e.BeginStruct(); err != nil {
		return err
	}
	if err := e.Bytes(p.Data); err != nil {
		return err
	}
	if err := e.String(p.Text); err != nil {
		return err
	}
	if err := e.Uint32(p.A); err != nil {
		return err
	}
	if err := e.Uint64(p.B); err != nil {
		return err
	}
	if err := e.Uint8(p.C); err != nil {
		return err
	}
	if err := e.Bool(p.Flag); err != nil {
		return err
	}
	return e.EndStruct()
}

func (p *fuzzPayload) UnmarshalWords(d *Decoder) error {
	if err := d.BeginStruct(); err != nil {
		return err
	}
	var err error
	if p.Data, err = d.Bytes(); err != nil {
		return err
	}
	if p.Text, err = d.String(); err != nil {
		return err
	}
	if p.A, err = d.Uint32(); err != nil {
		return err
	}
	if p.B, err = d.Uint64(); err != nil {
		return err
	}
	if p.C, err = d.Uint8(); err != nil {
		return err
	}
	if p.Flag, err = d.Bool(); err != nil {
		return err
	}
	return d.EndStruct()
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{1, 231, 123}, "Here is a string.", uint32(14710471), uint64(352905235952532), uint8(3), true)
	f.Add([]byte{}, "", uint32(0), uint64(0), uint8(0), false)
	f.Add([]byte{0xFF}, "界", uint32(1), uint64(1)<<63, uint8(255), true)

	f.Fuzz(func(t *testing.T, data []byte, text string, a uint32, b uint64, c uint8, flag bool) {
		if !utf8.ValidString(text) {
			t.Skip("encoder rejects invalid UTF-8 by design")
		}
		input := fuzzPayload{Data: data, Text: text, A: a, B: b, C: c, Flag: flag}

		words, err := Encode(input)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}

		var got fuzzPayload
		if err := Decode(words, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if diff := cmp.Diff(input, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
}
