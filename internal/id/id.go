// Package id generates opaque job identifiers.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

const rawLen = 16

// New returns a 32-character hex identifier with 128 bits of entropy.
func New() string {
	buf := make([]byte, rawLen)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// nothing sensible can run in that state.
		panic("id: read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
