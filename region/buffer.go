package region

var _ Region = (*Buffer)(nil)

// Buffer is a plain heap-allocated region, for single-process use and
// tests. It owns no OS resources, so Close is a no-op.
type Buffer struct {
	data []byte
}

// NewBuffer allocates a fresh zeroed region of the given size.
func NewBuffer(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// WrapBuffer adapts an existing byte slice as a Region without copying it.
// Useful for re-attaching to a buffer a previous Buffer already initialized.
func WrapBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the backing slice.
func (b *Buffer) Bytes() []byte { return b.data }

// Close is a no-op; Buffer owns no OS resources.
func (b *Buffer) Close() error { return nil }
