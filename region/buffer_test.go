package region

import "testing"

func TestBuffer_Bytes(t *testing.T) {
	b := NewBuffer(128)
	if len(b.Bytes()) != 128 {
		t.Fatalf("expected 128 bytes, got %d", len(b.Bytes()))
	}

	b.Bytes()[0] = 0xAB
	if b.data[0] != 0xAB {
		t.Fatalf("write through Bytes() did not reach backing slice")
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
}

func TestWrapBuffer_SharesSlice(t *testing.T) {
	data := make([]byte, 16)
	b := WrapBuffer(data)
	b.Bytes()[3] = 7
	if data[3] != 7 {
		t.Fatalf("WrapBuffer copied instead of sharing the slice")
	}
}
