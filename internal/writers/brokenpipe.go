package writers

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// IsBrokenPipe reports whether err means the reader went away (`| head`),
// in which case the remaining output is dropped silently.
func IsBrokenPipe(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, syscall.EPIPE), errors.Is(err, io.ErrClosedPipe), errors.Is(err, os.ErrClosed):
		return true
	}
	return false
}
