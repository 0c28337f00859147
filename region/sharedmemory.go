//go:build !windows

package region

import (
	"fmt"

	"golang.org/x/sys/unix"
)

var _ Region = (*SharedMemory)(nil)

// SharedMemory is a POSIX System V shared-memory segment, for the
// multi-process attach scenario arrhash's ABI is explicitly designed
// around: one process creates the segment and calls arrhash.Open on it,
// another attaches by the same key with OpenSharedMemory and calls
// arrhash.OpenExisting. Neither side synchronizes access for the other —
// that's the caller's job, per spec.md §5.
type SharedMemory struct {
	id   int
	data []byte
	log  func(msg string, args ...interface{})
}

// CreateSharedMemory allocates a new segment of size bytes under key and
// attaches it. A nil opts uses defaultOptions.
func CreateSharedMemory(key int, size int, opts *Options) (*SharedMemory, error) {
	o := resolved(opts)
	o.Log("region: creating shared memory segment key=%d size=%d", key, size)

	id, err := unix.SysvShmGet(key, size, unix.IPC_CREAT|unix.IPC_EXCL|0o600)
	if err != nil {
		return nil, fmt.Errorf("region: shmget: %w", err)
	}
	return attachSharedMemory(id, o)
}

// OpenSharedMemory attaches to an existing segment under key, created
// earlier by CreateSharedMemory (possibly in another process). A nil opts
// uses defaultOptions.
func OpenSharedMemory(key int, opts *Options) (*SharedMemory, error) {
	o := resolved(opts)
	o.Log("region: attaching shared memory segment key=%d", key)

	id, err := unix.SysvShmGet(key, 0, 0o600)
	if err != nil {
		return nil, fmt.Errorf("region: shmget(attach): %w", err)
	}
	return attachSharedMemory(id, o)
}

func attachSharedMemory(id int, opts Options) (*SharedMemory, error) {
	data, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("region: shmat: %w", err)
	}
	return &SharedMemory{id: id, data: data, log: opts.Log}, nil
}

// Bytes returns the attached slice.
func (s *SharedMemory) Bytes() []byte { return s.data }

// Close detaches the segment from this process. The segment itself (and
// its contents) survives until every attachment is closed and a caller
// marks it for removal with Destroy.
func (s *SharedMemory) Close() error {
	s.log("region: detaching shared memory segment id=%d", s.id)
	return unix.SysvShmDetach(s.data)
}

// Destroy marks the segment for removal once the last process detaches.
// Only the creator should normally call this.
func (s *SharedMemory) Destroy() error {
	_, err := unix.SysvShmCtl(s.id, unix.IPC_RMID, &unix.SysvShmDesc{})
	return err
}
