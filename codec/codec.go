package codec

import (
	"cmp"
	"slices"

	"github.com/wippyai/word-codec/errors"
	"github.com/wippyai/word-codec/wordio"
)

// Marshaler is implemented by types that can describe their own shape to an
// Encoder. This is the traversal contract the codec core is built against;
// there is no reflection-based fallback.
type Marshaler interface {
	MarshalWords(e *Encoder) error
}

// Unmarshaler is the read-side capability: build yourself from a Decoder,
// issuing the same traversal your Marshaler did.
type Unmarshaler interface {
	UnmarshalWords(d *Decoder) error
}

// Encode serializes v to a new word slice.
func Encode(v Marshaler) ([]uint32, error) {
	return EncodeWithCapacity(v, 0)
}

// EncodeWithCapacity serializes v to a new word slice, pre-sizing the buffer
// to capWords. The hint affects allocation only, never the output words.
func EncodeWithCapacity(v Marshaler, capWords int) ([]uint32, error) {
	buf := wordio.NewBuffer(capWords)
	enc := NewEncoder(buf)
	if err := v.MarshalWords(enc); err != nil {
		return nil, err
	}
	if enc.depth() != 0 {
		return nil, errors.Invariant(errors.PhaseEncode, "traversal ended with open scopes")
	}
	return buf.Words(), nil
}

// Decode reconstructs v from a word slice produced by Encode.
func Decode(words []uint32, v Unmarshaler) error {
	dec := NewDecoder(wordio.NewSlice(words))
	return v.UnmarshalWords(dec)
}

// EncodeSeq encodes a slice as a counted sequence using elem for each
// element.
func EncodeSeq[T any](e *Encoder, xs []T, elem func(*Encoder, T) error) error {
	if err := e.BeginSeq(len(xs)); err != nil {
		return err
	}
	for _, x := range xs {
		if err := elem(e, x); err != nil {
			return err
		}
	}
	return e.EndSeq()
}

// DecodeSeq decodes a counted sequence. On error no partial slice is
// returned.
func DecodeSeq[T any](d *Decoder, elem func(*Decoder) (T, error)) ([]T, error) {
	n, err := d.BeginSeq()
	if err != nil {
		return nil, err
	}
	xs := make([]T, 0, n)
	for i := uint32(0); i < n; i++ {
		x, err := elem(d)
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
	}
	if err := d.EndSeq(); err != nil {
		return nil, err
	}
	return xs, nil
}

// EncodeMap encodes a map as a counted sequence of key/value entries. Keys
// are emitted in sorted order so the encoding is deterministic.
func EncodeMap[K cmp.Ordered, V any](e *Encoder, m map[K]V, key func(*Encoder, K) error, val func(*Encoder, V) error) error {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	if err := e.BeginMap(len(m)); err != nil {
		return err
	}
	for _, k := range keys {
		if err := key(e, k); err != nil {
			return err
		}
		if err := val(e, m[k]); err != nil {
			return err
		}
	}
	return e.EndMap()
}

// DecodeMap decodes a counted sequence of key/value entries. On error no
// partial map is returned.
func DecodeMap[K comparable, V any](d *Decoder, key func(*Decoder) (K, error), val func(*Decoder) (V, error)) (map[K]V, error) {
	n, err := d.BeginMap()
	if err != nil {
		return nil, err
	}
	m := make(map[K]V, n)
	for i := uint32(0); i < n; i++ {
		k, err := key(d)
		if err != nil {
			return nil, err
		}
		v, err := val(d)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	if err := d.EndMap(); err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeOption encodes a pointer as an option: nil is absent.
func EncodeOption[T any](e *Encoder, v *T, elem func(*Encoder, T) error) error {
	if v == nil {
		return e.Option(false)
	}
	if err := e.Option(true); err != nil {
		return err
	}
	return elem(e, *v)
}

// DecodeOption decodes an option into a pointer: absent is nil.
func DecodeOption[T any](d *Decoder, elem func(*Decoder) (T, error)) (*T, error) {
	present, err := d.Option()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := elem(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
