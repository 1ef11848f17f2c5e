// Package wordio provides in-memory implementations of the word transport
// boundary: Buffer is a WordSink over a growable []uint32 and Slice is the
// matching WordSource. The codec entry points use them; other transports
// (channels, files) can implement the same interfaces.
package wordio
