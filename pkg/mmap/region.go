// Package mmap provides read-only memory-mapped file regions for zero-copy
// parsing of binary configuration files.
package mmap

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrEmptyFile is returned when the file to be mapped has zero length. An
// empty file can never be a valid configuration and mapping it would fail
// anyway.
var ErrEmptyFile = errors.New("mmap: file is empty")

// Region is a file's entire contents mapped read-only into memory. The byte
// slice returned by Bytes stays valid until Close; the owner must not retain
// it past that point.
type Region struct {
	file *os.File
	data []byte
	size int64

	mu sync.Mutex
}

// Open maps the file at path read-only and private. The file must exist, be
// readable and be non-empty; each failure mode is reported distinctly.
func Open(path string) (*Region, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		file.Close()
		return nil, ErrEmptyFile
	}

	data, err := mmap(int(file.Fd()), 0, int(size), ProtRead, MapPrivate)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	// The buffer is consumed front to back in one pass; ask the kernel to
	// fault it in eagerly. Failure is harmless.
	_ = madvise(data, MadvWillneed)

	return &Region{
		file: file,
		data: data,
		size: size,
	}, nil
}

// Bytes returns the mapped contents. The slice aliases the mapping and must
// not be used after Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Size returns the length of the mapped region in bytes.
func (r *Region) Size() int64 {
	return r.size
}

// Close unmaps the region and closes the backing file. It is safe to call
// more than once; only the first call releases anything.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error

	if r.data != nil {
		err = munmap(r.data)
		r.data = nil
	}

	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.file = nil
	}

	return err
}
