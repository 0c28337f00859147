package region

import (
	"errors"
	"os"

	"github.com/edsrzf/mmap-go"
)

var _ Region = (*MappedFile)(nil)

// MappedFile is a fixed-size, file-backed region mapped with mmap. Unlike a
// conventional paged file, the size never changes after creation: arrhash
// tables don't resize, so there is no page-allocation machinery to carry.
type MappedFile struct {
	fh   *os.File
	data mmap.MMap
	log  func(msg string, args ...interface{})
}

// CreateMappedFile creates (or truncates) the file at path to exactly size
// bytes and maps it RDWR. size must be large enough to host at least one
// slot; arrhash.Open enforces that once the mapping is handed to it. A nil
// opts uses defaultOptions.
func CreateMappedFile(path string, size int64, mode os.FileMode, opts *Options) (*MappedFile, error) {
	o := resolved(opts)
	if size <= 0 {
		return nil, errors.New("region: mapped file size must be positive")
	}
	o.Log("region: creating mapped file %s (%d bytes)", path, size)

	fh, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, mode)
	if err != nil {
		return nil, err
	}

	if err := fh.Truncate(size); err != nil {
		_ = fh.Close()
		return nil, err
	}

	return mapFile(fh, mmap.RDWR, o)
}

// OpenMappedFile maps an existing file at path, trusting its current size.
// Pass readOnly=true to map without write access (for read-only attach). A
// nil opts uses defaultOptions.
func OpenMappedFile(path string, readOnly bool, opts *Options) (*MappedFile, error) {
	o := resolved(opts)
	flag := os.O_RDWR
	mmapFlag := mmap.RDWR
	if readOnly {
		flag = os.O_RDONLY
		mmapFlag = mmap.RDONLY
	}
	o.Log("region: opening mapped file %s (readOnly=%v)", path, readOnly)

	fh, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}

	return mapFile(fh, mmapFlag, o)
}

func mapFile(fh *os.File, flag int, opts Options) (*MappedFile, error) {
	data, err := mmap.Map(fh, flag, 0)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}

	return &MappedFile{fh: fh, data: data, log: opts.Log}, nil
}

// Bytes returns the mapped slice.
func (f *MappedFile) Bytes() []byte { return f.data }

// Close unmaps the region and closes the underlying file handle.
func (f *MappedFile) Close() error {
	f.log("region: closing mapped file %s", f.fh.Name())
	err := f.data.Unmap()
	if cerr := f.fh.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
