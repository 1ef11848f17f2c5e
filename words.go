package wordcodec

// WordSink receives the encoder's output. Words are the 32-bit atomic unit
// of the wire format; WritePaddedBytes writes raw bytes and zero-pads to the
// next word boundary.
type WordSink interface {
	WriteWords(words []uint32) error
	WritePaddedBytes(data []byte) error
}

// WordSource supplies words to the decoder. ReadPaddedBytes is the inverse
// of WordSink.WritePaddedBytes: it consumes whole words and returns exactly
// count bytes, discarding the zero padding.
type WordSource interface {
	ReadWords(count uint32) ([]uint32, error)
	ReadPaddedBytes(count uint32) ([]byte, error)
}

// SourceSizer optionally reports how many words a WordSource can still
// deliver. The decoder uses it to reject declared counts that exceed the
// remaining input before allocating.
type SourceSizer interface {
	Remaining() uint32
}
