// Package checkpoint persists and restores the named 2D/3D slabs and the
// Van Genuchten lookup table described in §6's on-disk formats, through a
// Store abstraction with a local-filesystem implementation (default) and
// an S3-backed one, so the identical slab format works against either.
package checkpoint

import (
	"time"

	"github.com/microhh-go/landsurface/surferr"
)

// Store addresses one named slab at one checkpoint time and reads/writes
// its raw bytes. The slab encoding (native float64, row-major per §6) is
// the caller's concern; Store only moves bytes.
type Store interface {
	WriteSlab(name string, step int, data []byte) error
	ReadSlab(name string, step int) ([]byte, error)
}

// slabFileName builds the "<name>.%07d" suffix convention from §6.
func slabFileName(name string, step int) string {
	return name + "." + pad7(step)
}

func pad7(step int) string {
	s := itoa(step)
	for len(s) < 7 {
		s = "0" + s
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// retryIOFailed wraps op in the teacher's exponential-backoff retry
// pattern (sr.go, cloud.go), escalating to a surferr.IOFailed only after
// every retry is exhausted.
func retryIOFailed(op string, fn func() error, notify func(error, time.Duration)) error {
	if err := withBackoff(fn, notify); err != nil {
		return surferr.New(surferr.IOFailed, op, err)
	}
	return nil
}
