// Package wordcodec provides a compact binary codec for exchanging
// structured data with execution environments that address memory in fixed
// 32-bit word units.
//
// Arbitrary structured data - integers of varying width, booleans, options,
// text, byte buffers, sequences, fixed aggregates, tagged variants, maps -
// is losslessly converted to and from a flat word stream with minimal wasted
// space. Consecutive single-byte values emitted inside a composite are packed
// four to a word; everything else occupies whole words.
//
// # Architecture Overview
//
// The library is organized into small packages with distinct
// responsibilities:
//
//	wordcodec/           Root package with the WordSink and WordSource interfaces
//	├── codec/           Encoder, Decoder, byte-packing state machine, entry points
//	├── errors/          Structured error types (closed taxonomy)
//	├── wordio/          In-memory word transports: Buffer sink, Slice source
//	└── cmd/wordscan     Word-stream inspector CLI
//
// # Quick Start
//
// Types describe their own shape through the codec.Marshaler and
// codec.Unmarshaler capabilities:
//
//	type point struct{ X, Y uint32 }
//
//	func (p point) MarshalWords(e *codec.Encoder) error {
//	    if err := e.BeginStruct(); err != nil {
//	        return err
//	    }
//	    if err := e.Uint32(p.X); err != nil {
//	        return err
//	    }
//	    if err := e.Uint32(p.Y); err != nil {
//	        return err
//	    }
//	    return e.EndStruct()
//	}
//
//	words, err := codec.Encode(point{X: 3, Y: 4})
//
// # Wire Format
//
// The wire format is a flat concatenation of encoded values with no header,
// version tag, or top-level length prefix. Word order is the write order;
// byte order within a word is little-endian. Decoding requires the target
// type to be known in advance on both ends.
//
// # Thread Safety
//
// An Encoder or Decoder exclusively owns its packing state and transport
// handle and must be driven by a single goroutine. No internal locking is
// provided.
package wordcodec
