package nlp

import (
	"context"
)

// Canonical commands produced by the normalizer. Quantity-bearing forms keep
// their digits, e.g. "add 3 to cart" and "select 2".
const (
	CmdAddToCart = "add to cart"
	CmdRemove    = "remove from cart"
	CmdClearCart = "clear cart"
	CmdPrintBill = "print bill"
	CmdClose     = "close"
	CmdSearchFor = "search for"
)

type Source string

const (
	SourceLocal    Source = "local"
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

type Result struct {
	Command string `json:"command"`
	Source  Source `json:"source"`
}

// Corrector maps an ambiguous utterance to a command using a remote language
// model. Implementations must return a single-line reply.
type Corrector interface {
	CorrectCommand(ctx context.Context, utterance string) (string, error)
}

type INormalizer interface {
	Normalize(ctx context.Context, raw string) Result
}
