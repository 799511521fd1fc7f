// Package shared provides small helpers used across the client,
// currently secure memory wiping for password buffers.
package shared

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Use it to remove passwords and pasted credentials from memory
// after they have been sent to the server.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
