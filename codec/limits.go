package codec

// Defensive caps on counts that cross the wire. They bound allocations made
// on behalf of untrusted input before any data is read.
const (
	MaxBytesLen = 16 << 20 // bytes in one text or byte buffer (16 MiB)
	MaxSeqLen   = 1 << 20  // elements in one sequence or map (1M)
)
