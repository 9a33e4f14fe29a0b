package quiz

import (
	"strings"

	"wordquiz/internal/domain"
)

var optionalPrefixes = map[domain.Kind][]string{
	domain.KindNoun: {"the ", "a ", "an "},
	domain.KindVerb: {"to "},
}

// PrefixesFor returns the leading prefixes an answer of the given kind may omit
func PrefixesFor(kind domain.Kind) []string {
	return optionalPrefixes[kind]
}

// Prepared is the comparable form of a raw answer string
type Prepared struct {
	Cleaned       string
	Lower         string
	Core          string
	RemovedPrefix string
}

// Prepare strips optional prefixes from raw until none applies.
// A prefix matches case-insensitively but is only removed when something is left after it.
func Prepare(raw string, prefixes []string) Prepared {
	working := strings.TrimSpace(raw)
	if working == "" {
		return Prepared{}
	}

	var removed strings.Builder
	for changed := true; changed; {
		changed = false
		for _, prefix := range prefixes {
			if prefix == "" || len(working) <= len(prefix) {
				continue
			}
			if !strings.EqualFold(working[:len(prefix)], prefix) {
				continue
			}
			removed.WriteString(working[:len(prefix)])
			working = working[len(prefix):]
			changed = true
			break
		}
	}

	cleaned := strings.TrimSpace(working)
	return Prepared{
		Cleaned:       cleaned,
		Lower:         strings.ToLower(cleaned),
		Core:          working,
		RemovedPrefix: removed.String(),
	}
}
