package nlp

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

type fakeCorrector struct {
	reply string
	err   error
	calls int
}

func (f *fakeCorrector) CorrectCommand(ctx context.Context, utterance string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestNormalizeLocalRules(t *testing.T) {
	corrector := &fakeCorrector{}
	n := NewNormalizer(newTestLogger(), corrector)
	ctx := context.Background()

	tests := []struct {
		input string
		want  string
	}{
		// Phrase table
		{"add to cart", CmdAddToCart},
		{"Add To Cart", CmdAddToCart},
		{"add item", CmdAddToCart},
		{"  add to the cart  ", CmdAddToCart},
		{"remove from cart", CmdRemove},
		{"remove", CmdRemove},
		{"clear the cart", CmdClearCart},
		{"empty cart", CmdClearCart},
		{"checkout", CmdPrintBill},
		{"print the bill", CmdPrintBill},
		{"exit", CmdClose},
		{"quit", CmdClose},
		{"stop listening", CmdClose},

		// Recognizer artifacts: punctuation must not defeat the table
		{"clear cart.", CmdClearCart},
		{"checkout!", CmdPrintBill},

		// Quantity-bearing forms
		{"add 3 to cart", "add 3 to cart"},
		{"add 3 items to cart", "add 3 to cart"},
		{"add 2 pieces", "add 2 to cart"},
		{"add 10", "add 10 to cart"},
		{"select 2", "select 2"},
		{"select one", "select 1"},
		{"select 12", "select 12"},

		// Search prefix
		{"search for paracetamol", "search for paracetamol"},
		{"search amoxicillin 500", "search for amoxicillin 500"},
		{"Search For Vitamin C", "search for vitamin c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := n.Normalize(ctx, tt.input)
			if got.Command != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got.Command, tt.want)
			}
			if got.Source != SourceLocal {
				t.Errorf("Normalize(%q) source = %q, want %q", tt.input, got.Source, SourceLocal)
			}
		})
	}

	if corrector.calls != 0 {
		t.Errorf("corrector called %d times for locally resolvable utterances", corrector.calls)
	}
}

func TestNormalizeRemoteCorrection(t *testing.T) {
	corrector := &fakeCorrector{reply: "Add To Cart\nsome trailing explanation"}
	n := NewNormalizer(newTestLogger(), corrector)

	got := n.Normalize(context.Background(), "please put that one in")
	if got.Command != "add to cart" {
		t.Errorf("got %q, want %q", got.Command, "add to cart")
	}
	if got.Source != SourceRemote {
		t.Errorf("source = %q, want %q", got.Source, SourceRemote)
	}
	if corrector.calls != 1 {
		t.Errorf("corrector calls = %d, want 1", corrector.calls)
	}
}

func TestNormalizeCorrectorFailureFallsBack(t *testing.T) {
	corrector := &fakeCorrector{err: errors.New("network down")}
	n := NewNormalizer(newTestLogger(), corrector)

	got := n.Normalize(context.Background(), "  Please Put That One In ")
	if got.Command != "please put that one in" {
		t.Errorf("got %q, want lower-cased trimmed utterance", got.Command)
	}
	if got.Source != SourceFallback {
		t.Errorf("source = %q, want %q", got.Source, SourceFallback)
	}
}

func TestNormalizeNoCorrectorConfigured(t *testing.T) {
	n := NewNormalizer(newTestLogger(), nil)

	got := n.Normalize(context.Background(), "Gibberish Utterance")
	if got.Command != "gibberish utterance" {
		t.Errorf("got %q, want %q", got.Command, "gibberish utterance")
	}
	if got.Source != SourceFallback {
		t.Errorf("source = %q, want %q", got.Source, SourceFallback)
	}
}
