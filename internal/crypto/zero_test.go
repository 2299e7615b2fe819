package crypto

import "testing"

func TestWipe(t *testing.T) {
	buf := []byte{0xde, 0xad, 0xbe, 0xef}
	Wipe(buf)
	for i, b := range buf {
		if b != 0 {
			t.Errorf("byte %d = %#x, want 0", i, b)
		}
	}

	// Nil and empty are no-ops.
	Wipe(nil)
	Wipe([]byte{})
}
