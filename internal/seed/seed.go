// Package seed bundles the starter vocabulary used when a user has no saved words.
package seed

import _ "embed"

//go:embed words.json
var words []byte

// Words returns the bundled vocabulary as a JSON array
func Words() []byte {
	out := make([]byte, len(words))
	copy(out, words)
	return out
}
