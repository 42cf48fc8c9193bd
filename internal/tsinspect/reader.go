package tsinspect

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrStreamExhausted reports that fewer bytes than requested remain at the
// given offset. The scan loop treats it as end of stream.
var ErrStreamExhausted = errors.New("tsinspect: stream exhausted")

// fieldReader extracts big-endian unsigned integers from an arbitrary offset
// of a byte source. The decoders read non-sequentially within a packet, so
// the source must support random access; *os.File and bytes.Reader both do.
type fieldReader struct {
	src io.ReaderAt
}

// read returns the big-endian integer of the given byte width (1, 2 or 4)
// starting at offset.
func (r fieldReader) read(offset int64, width int) (uint32, error) {
	if width != 1 && width != 2 && width != 4 {
		return 0, fmt.Errorf("tsinspect: unsupported read width %d", width)
	}
	var buf [4]byte
	n, err := r.src.ReadAt(buf[:width], offset)
	if n < width {
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrStreamExhausted
		}
		return 0, err
	}
	switch width {
	case 1:
		return uint32(buf[0]), nil
	case 2:
		return uint32(binary.BigEndian.Uint16(buf[:2])), nil
	default:
		return binary.BigEndian.Uint32(buf[:4]), nil
	}
}
