package crypto

// Wipe overwrites buf with zeros. The runtime may hold copies the caller
// cannot reach, so this is a best-effort scrub of key material, not a
// complete erasure guarantee.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
