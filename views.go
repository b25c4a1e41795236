package shaderspec

import "encoding/binary"

// CodeReader is a bounds-stable view over a shader's instruction words.
//
// The underlying buffer is the raw guest shader code, byte-addressable and
// word-aligned. Reading never copies the caller's buffer up front; words are
// decoded on demand.
type CodeReader struct {
	code []byte
}

// NewCodeReader creates a reader over code. The reader aliases the slice;
// the caller must not mutate it while translation is in flight.
func NewCodeReader(code []byte) *CodeReader {
	return &CodeReader{code: code}
}

// Len returns the code length in bytes.
func (r *CodeReader) Len() int { return len(r.code) }

// Words returns the instruction words covering minimumSize bytes starting
// at the byte address.
//
// minimumSize is a precondition, not a runtime check: the translator
// validates shader bounds before it ever asks for code, so address is
// trusted to leave at least minimumSize bytes in the buffer. Only the
// requested words are decoded; a short buffer yields the words that fit,
// with any trailing partial word dropped.
func (r *CodeReader) Words(address uint64, minimumSize int) []uint32 {
	tail := r.code[address:]
	count := (minimumSize + 3) / 4
	if avail := len(tail) / 4; count > avail {
		count = avail
	}
	words := make([]uint32, count)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(tail[i*4:])
	}
	return words
}

// readCbufWord reads the little-endian word at offset from constant buffer 1
// data. Unlike code addresses, cbuf offsets are computed from untrusted
// shader instructions against cache-controlled data, so the bounds check is
// real: any offset that does not leave four readable bytes fails with
// ErrInvalidCbufLength.
func readCbufWord(cb1 []byte, offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(cb1) {
		return 0, ErrInvalidCbufLength
	}
	return binary.LittleEndian.Uint32(cb1[offset:]), nil
}
