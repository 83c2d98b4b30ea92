package writers

import (
	"io"
	"os"
)

// Delays opening the output until the first write, so a run that fails
// before producing output leaves no empty file behind.
type LazyWriteCloser struct {
	open   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

// Creates a new `LazyWriteCloser`. open is called once, on the first write.
func NewLazyWriteCloser(open func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{open: open}
}

// NewLazyFile truncates or creates path on first write.
func NewLazyFile(path string) *LazyWriteCloser {
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
}

func (f *LazyWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		w, err := f.open()
		if err != nil {
			return 0, err
		}
		f.writer = w
	}
	return f.writer.Write(p)
}

func (f *LazyWriteCloser) Close() error {
	if f.writer == nil {
		return nil
	}
	return f.writer.Close()
}

// NopCloser keeps stdout open when it is handed out as an io.WriteCloser.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
