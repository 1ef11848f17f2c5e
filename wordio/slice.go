package wordio

import (
	"encoding/binary"
	"io"
)

// Slice is a WordSource reading from a fixed word slice, the inverse of
// Buffer. A read past the end fails with io.ErrUnexpectedEOF so callers can
// tell exhaustion from transport failure.
type Slice struct {
	words []uint32
	off   int
}

func NewSlice(words []uint32) *Slice {
	return &Slice{words: words}
}

func (s *Slice) ReadWords(count uint32) ([]uint32, error) {
	if uint64(count) > uint64(len(s.words)-s.off) {
		return nil, io.ErrUnexpectedEOF
	}
	out := s.words[s.off : s.off+int(count)]
	s.off += int(count)
	return out, nil
}

// ReadPaddedBytes consumes whole words and returns exactly count bytes,
// discarding the zero padding of the final word.
func (s *Slice) ReadPaddedBytes(count uint32) ([]byte, error) {
	numWords := uint32((uint64(count) + 3) / 4)
	words, err := s.ReadWords(numWords)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, numWords*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf[:count], nil
}

// Remaining reports how many words are left to read.
func (s *Slice) Remaining() uint32 {
	return uint32(len(s.words) - s.off)
}
