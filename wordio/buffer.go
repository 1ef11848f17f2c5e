package wordio

import "encoding/binary"

// Buffer is an in-memory WordSink backed by a growable word slice.
type Buffer struct {
	words []uint32
}

// NewBuffer creates a Buffer pre-sized to capWords. The capacity is an
// allocation hint only.
func NewBuffer(capWords int) *Buffer {
	if capWords < 0 {
		capWords = 0
	}
	return &Buffer{words: make([]uint32, 0, capWords)}
}

func (b *Buffer) WriteWords(words []uint32) error {
	b.words = append(b.words, words...)
	return nil
}

// WritePaddedBytes appends raw bytes least-significant-byte-first, zero
// padding the final word.
func (b *Buffer) WritePaddedBytes(data []byte) error {
	for len(data) >= 4 {
		b.words = append(b.words, binary.LittleEndian.Uint32(data))
		data = data[4:]
	}
	if len(data) > 0 {
		var tail [4]byte
		copy(tail[:], data)
		b.words = append(b.words, binary.LittleEndian.Uint32(tail[:]))
	}
	return nil
}

// Words returns the accumulated word stream. The slice aliases the buffer's
// storage; it is valid until the next write or Reset.
func (b *Buffer) Words() []uint32 {
	return b.words
}

func (b *Buffer) Len() int {
	return len(b.words)
}

func (b *Buffer) Reset() {
	b.words = b.words[:0]
}
