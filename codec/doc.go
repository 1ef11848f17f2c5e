// Package codec implements the word-oriented encoder and decoder.
//
// Values are converted to and from a flat stream of 32-bit words. The value
// itself drives the traversal through the Marshaler and Unmarshaler
// capabilities; the codec owns no value storage and carries no type
// information on the wire.
//
// # Word Layout
//
// Every value maps onto whole words except single bytes, which pack four to
// a word while inside a composite:
//
//	Shape               Words
//	─────────────────────────────────────────────────
//	bool, u8            1 packed byte lane (1 word at top level)
//	s8/s16/s32, u16/u32 1 (sign/zero extended)
//	s64/u64, f64        2 (low half, high half)
//	u128/s128           4 (16 raw bytes, LSB first)
//	f32, char           1 (bit pattern / code point)
//	text, byte buffer   1 count word + ceil(n/4) data words
//	option              1 presence word (+ inner encoding)
//	unit                0
//	variant             1 discriminant word (+ payload scope)
//	sequence, map       1 count word + elements, inside a scope
//	fixed aggregate     elements only, inside a scope
//
// # Byte Packing
//
// Consecutive single-byte values emitted while at least one composite scope
// is open accumulate into one word's byte lanes, least-significant lane
// first. The pending partial word flushes when its fourth lane fills, before
// any directly word-encoded value (forced flush, unused lanes zero), or when
// nesting depth returns to zero. Packing is invisible in the logical view of
// the format; the decoder replays the same rules in reverse, so no byte
// state ever crosses a top-level boundary.
//
// # Key Types
//
//	Encoder    - writes one value's traversal to a WordSink
//	Decoder    - rebuilds a value from a WordSource
//	Marshaler  - "describe your shape": the encode-side capability
//	Unmarshaler- "build yourself": the decode-side capability
//
// # Entry Points
//
//	words, err := codec.Encode(v)
//	words, err := codec.EncodeWithCapacity(v, hint) // hint never changes output
//	err := codec.Decode(words, &v)
//
// Errors belong to the closed taxonomy in the errors package: transport,
// unsupported construct, truncated input, malformed input, invariant
// violation. The codec never retries or logs.
package codec
