package voice

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxFrameSize bounds a single opus frame; anything larger means the
// input is not a DCA stream
const maxFrameSize = 4096

var errFrameTooLarge = errors.New("opus frame exceeds maximum size")

// frameReader decodes a DCA stream: each opus frame is prefixed with
// its byte length as a little-endian int16
type frameReader struct {
	r io.Reader
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{r: r}
}

// ReadFrame returns the next opus frame, or io.EOF at a clean end of
// stream
func (f *frameReader) ReadFrame() ([]byte, error) {
	var length int16
	if err := binary.Read(f.r, binary.LittleEndian, &length); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read frame length: %w", err)
	}
	if length < 0 || length > maxFrameSize {
		return nil, errFrameTooLarge
	}

	frame := make([]byte, length)
	if _, err := io.ReadFull(f.r, frame); err != nil {
		return nil, fmt.Errorf("failed to read %d-byte frame: %w", length, err)
	}
	return frame, nil
}
