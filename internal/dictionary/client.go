// Package dictionary looks up definitions for word expressions in public
// dictionary APIs.
package dictionary

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the provider has no entry for the expression.
var ErrNotFound = errors.New("expression not found in dictionary")

// Definition is one meaning returned by a provider.
type Definition struct {
	PartOfSpeech string
	Text         string
	Example      string
}

type LookupResult struct {
	Expression    string
	Pronunciation string
	Definitions   []Definition
}

// Client defines the interface for dictionary API providers.
type Client interface {
	Lookup(ctx context.Context, expression string) (*LookupResult, error)
	Name() string
}
