// Package idgen produces unguessable random tokens of a given length over a
// given alphabet. It is used for public presentation identifiers and edit
// secrets.
package idgen

import (
	"errors"
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generator creates random tokens. Implementations must be safe for
// concurrent use.
type Generator interface {
	Generate(alphabet string, size int) (string, error)
}

// NanoID generates tokens with a cryptographically secure source.
type NanoID struct{}

// Generate returns a random token of size characters drawn from alphabet.
func (NanoID) Generate(alphabet string, size int) (string, error) {
	if size <= 0 || alphabet == "" {
		return "", fmt.Errorf("idgen: invalid token shape (size=%d, alphabet=%d chars)", size, len(alphabet))
	}
	return gonanoid.Generate(alphabet, size)
}

// ErrExhausted is returned by Sequence once all tokens were handed out.
var ErrExhausted = errors.New("idgen: sequence exhausted")

// Sequence hands out a fixed list of tokens in order. It ignores alphabet
// and size and is meant for deterministic tests.
type Sequence struct {
	mu     sync.Mutex
	tokens []string
}

// NewSequence returns a Sequence that yields tokens in order.
func NewSequence(tokens ...string) *Sequence {
	return &Sequence{tokens: tokens}
}

func (s *Sequence) Generate(string, int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tokens) == 0 {
		return "", ErrExhausted
	}
	t := s.tokens[0]
	s.tokens = s.tokens[1:]
	return t, nil
}
