// Package memzero wipes key material once it is no longer needed.
package memzero

import "crypto/subtle"

// Zero overwrites b with zeros.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
