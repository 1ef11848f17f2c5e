package codec

import (
	wordcodec "github.com/wippyai/word-codec"
	"github.com/wippyai/word-codec/errors"
)

// packer is the write side of the byte-packing state machine. While at least
// one composite scope is open, consecutive single-byte values accumulate into
// the four byte lanes of one word, least-significant lane first. The partial
// word is flushed when the fourth lane fills, before any directly
// word-encoded value, or when nesting depth returns to zero.
type packer struct {
	depth uint32
	fill  uint32 // byte lanes already occupied, 0-3 between calls
	acc   uint32
}

func (p *packer) openScope() {
	p.depth++
}

func (p *packer) closeScope(sink wordcodec.WordSink) error {
	if p.depth == 0 {
		return errors.Invariant(errors.PhaseEncode, "scope closed without matching open")
	}
	p.depth--
	if p.depth == 0 && p.fill != 0 {
		return p.flush(sink)
	}
	return nil
}

// flush emits the pending partial word. Unset high lanes are zero. Invoked
// before every directly word-encoded value (forced flush) and when depth
// returns to zero with bytes pending.
func (p *packer) flush(sink wordcodec.WordSink) error {
	if p.fill == 0 {
		return nil
	}
	w := [1]uint32{p.acc}
	p.acc = 0
	p.fill = 0
	if err := sink.WriteWords(w[:]); err != nil {
		return errors.Transport(errors.PhaseEncode, err)
	}
	return nil
}

func (p *packer) packByte(sink wordcodec.WordSink, b byte) error {
	if p.depth == 0 {
		// Bytes outside any composite are not packed; they occupy a full
		// word so depth zero stays a synchronization point.
		w := [1]uint32{uint32(b)}
		if err := sink.WriteWords(w[:]); err != nil {
			return errors.Transport(errors.PhaseEncode, err)
		}
		return nil
	}
	p.acc |= uint32(b) << (8 * p.fill)
	p.fill++
	if p.fill == 4 {
		return p.flush(sink)
	}
	return nil
}

// unpacker is the read side, replaying the packer's rules in reverse: while
// depth > 0 a word is split into four pending byte lanes; at depth zero each
// byte was written as its own word. sync discards stale lanes exactly where
// the packer would have force-flushed.
type unpacker struct {
	depth uint32
	pend  uint32 // packed byte lanes still unread in cur
	cur   uint32
}

func (u *unpacker) openScope() {
	u.depth++
}

func (u *unpacker) closeScope() error {
	if u.depth == 0 {
		return errors.Invariant(errors.PhaseDecode, "scope closed without matching open")
	}
	u.depth--
	if u.depth == 0 {
		// remaining lanes are the encoder's zero padding
		u.pend = 0
		u.cur = 0
	}
	return nil
}

// sync discards stale packed lanes before a direct word read.
func (u *unpacker) sync() {
	u.pend = 0
	u.cur = 0
}

func (u *unpacker) readByte(src wordcodec.WordSource) (byte, error) {
	if u.depth == 0 {
		w, err := readOneWord(src, "byte")
		if err != nil {
			return 0, err
		}
		return byte(w), nil
	}
	if u.pend == 0 {
		w, err := readOneWord(src, "packed bytes")
		if err != nil {
			return 0, err
		}
		u.cur = w
		u.pend = 4
	}
	b := byte(u.cur)
	u.cur >>= 8
	u.pend--
	return b, nil
}
