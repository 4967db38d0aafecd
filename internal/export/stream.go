package export

import (
	"fmt"
	"io"
	"math"
)

// streamAdapter feeds the library write callbacks into an io.Writer
type streamAdapter struct {
	out io.Writer
	pos uint64
}

func newStreamAdapter(out io.Writer) *streamAdapter {
	return &streamAdapter{out: out}
}

func (s *streamAdapter) write(data []byte) error {
	n, err := s.out.Write(data)
	s.pos += uint64(n)
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}

// seek moves to an absolute position. Sinks that can't seek, like pipes,
// only accept the current position.
func (s *streamAdapter) seek(pos uint64) error {
	if seeker, ok := s.out.(io.Seeker); ok && pos <= math.MaxInt64 {
		if _, err := seeker.Seek(int64(pos), io.SeekStart); err == nil {
			s.pos = pos
			return nil
		}
	}
	if pos != s.pos {
		return fmt.Errorf("cannot seek output to %d at position %d", pos, s.pos)
	}
	return nil
}

func (s *streamAdapter) flush() error {
	switch out := s.out.(type) {
	case interface{ Flush() error }:
		return out.Flush()
	case interface{ Sync() error }:
		return out.Sync()
	default:
		return nil
	}
}
