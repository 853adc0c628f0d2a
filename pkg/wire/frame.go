// pkg/wire/frame.go
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize is the largest payload a 16-bit length prefix can describe.
const MaxFrameSize = 1<<16 - 1

var (
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
	ErrInvalidUTF8   = errors.New("frame is not valid UTF-8")
)

// ReadFrame reads one length-prefixed string: a big-endian uint16 byte count
// followed by that many (modified) UTF-8 bytes. io.EOF is returned unwrapped
// when the stream ends cleanly between frames. A payload that cannot be
// decoded yields ErrInvalidUTF8 with the raw payload; the stream is still
// positioned at the next frame.
func ReadFrame(r io.Reader) (string, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", fmt.Errorf("error reading frame header: %w", err)
	}

	size := binary.BigEndian.Uint16(header[:])
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", fmt.Errorf("error reading frame payload: %w", err)
	}
	decoded, ok := decodeModified(payload)
	if !ok {
		return string(payload), ErrInvalidUTF8
	}
	return decoded, nil
}

// WriteFrame writes s as a single frame. Header and payload go out in one
// Write call so a frame is never split by a concurrent writer on the same
// stream, provided the writer itself is serialized.
func WriteFrame(w io.Writer, s string) error {
	payload := encodeModified(s)
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	buf := make([]byte, 2+len(payload))
	binary.BigEndian.PutUint16(buf, uint16(len(payload)))
	copy(buf[2:], payload)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("error writing frame: %w", err)
	}
	return nil
}
