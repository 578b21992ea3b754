package ndu

import (
	"strings"

	"github.com/google/uuid"
)

// Reference id prefixes issued by the registry
const (
	ContentPrefix  = "NDU-"
	TrainingPrefix = "NDU-TR-"
)

// ReferenceGenerator issues external ids for accepted records
type ReferenceGenerator func(prefix string) string

// RandomReference returns prefix followed by eight uppercase hex characters
func RandomReference(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// SequenceReference returns a generator that hands out ids from a fixed list,
// then falls back to RandomReference. Used by tests that need stable ids.
func SequenceReference(suffixes ...string) ReferenceGenerator {
	next := 0
	return func(prefix string) string {
		if next >= len(suffixes) {
			return RandomReference(prefix)
		}
		s := suffixes[next]
		next++
		return prefix + s
	}
}
