package util

import (
	"errors"
	"io"
)

// ChainReader reads from each of its readers in turn until all are exhausted.  Unlike io.MultiReader,
// it is also an io.Closer: closing it closes every underlying reader that implements io.Closer.
type ChainReader struct {
	readers []io.Reader
	current int
}

func NewChainReader(readers ...io.Reader) *ChainReader {
	return &ChainReader{
		readers: readers,
	}
}

func (self *ChainReader) Read(p []byte) (int, error) {
	for self.current >= 0 && self.current < len(self.readers) {
		var n, err = self.readers[self.current].Read(p)

		if errors.Is(err, io.EOF) {
			self.current += 1

			if n > 0 {
				return n, nil
			}
		} else {
			return n, err
		}
	}

	return 0, io.EOF
}

func (self *ChainReader) Close() error {
	var merr error

	for _, reader := range self.readers {
		if closer, ok := reader.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				merr = errors.Join(merr, err)
			}
		}
	}

	self.current = -1
	self.readers = nil

	return merr
}
