package nlp

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type normalizer struct {
	log       *logrus.Logger
	corrector Corrector
	aliases   map[string]string
}

var (
	addPattern    = regexp.MustCompile(`^add (\d+)( items| pieces)?( to cart)?$`)
	selectPattern = regexp.MustCompile(`^select (\d+|one)$`)
	searchPattern = regexp.MustCompile(`^search(?: for)? (.+)$`)
)

// Fixed phrase table. Keys are cleaned utterances, values canonical commands.
var defaultAliases = map[string]string{
	"add to cart":      CmdAddToCart,
	"add to the cart":  CmdAddToCart,
	"add item":         CmdAddToCart,
	"add this":         CmdAddToCart,
	"remove":           CmdRemove,
	"remove item":      CmdRemove,
	"remove from cart": CmdRemove,
	"remove last item": CmdRemove,
	"clear cart":       CmdClearCart,
	"clear the cart":   CmdClearCart,
	"empty cart":       CmdClearCart,
	"empty the cart":   CmdClearCart,
	"print bill":       CmdPrintBill,
	"print the bill":   CmdPrintBill,
	"checkout":         CmdPrintBill,
	"check out":        CmdPrintBill,
	"close":            CmdClose,
	"exit":             CmdClose,
	"quit":             CmdClose,
	"stop listening":   CmdClose,
	"close voice":      CmdClose,
	"stop voice":       CmdClose,
}

func NewNormalizer(log *logrus.Logger, corrector Corrector) INormalizer {
	return &normalizer{
		log:       log,
		corrector: corrector,
		aliases:   defaultAliases,
	}
}

// Normalize resolves a raw utterance to exactly one command. Rules are
// evaluated in order, first match wins; the remote corrector is consulted only
// when every local rule misses, and any corrector failure degrades to the
// lower-cased trimmed utterance unchanged.
func (n *normalizer) Normalize(ctx context.Context, raw string) Result {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	cleaned := cleanText(lowered)

	if cmd, ok := n.aliases[cleaned]; ok {
		return Result{Command: cmd, Source: SourceLocal}
	}

	if m := addPattern.FindStringSubmatch(cleaned); m != nil {
		return Result{Command: fmt.Sprintf("add %s to cart", m[1]), Source: SourceLocal}
	}

	if m := selectPattern.FindStringSubmatch(cleaned); m != nil {
		index := m[1]
		if index == "one" {
			index = "1"
		}
		return Result{Command: fmt.Sprintf("select %s", index), Source: SourceLocal}
	}

	if m := searchPattern.FindStringSubmatch(cleaned); m != nil {
		return Result{Command: fmt.Sprintf("%s %s", CmdSearchFor, m[1]), Source: SourceLocal}
	}
	if cleaned == "search" || cleaned == "search for" {
		return Result{Command: CmdSearchFor, Source: SourceLocal}
	}

	if n.corrector != nil {
		corrected, err := n.corrector.CorrectCommand(ctx, raw)
		if err != nil {
			n.log.WithFields(logrus.Fields{
				"utterance": raw,
				"error":     err.Error(),
			}).Debug("Command correction failed, using local fallback")
			return Result{Command: lowered, Source: SourceFallback}
		}
		corrected = strings.ToLower(strings.TrimSpace(firstLine(corrected)))
		if corrected == "" {
			return Result{Command: lowered, Source: SourceFallback}
		}
		return Result{Command: corrected, Source: SourceRemote}
	}

	return Result{Command: lowered, Source: SourceFallback}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// cleanText strips diacritics and punctuation so recognizer artifacts like
// trailing periods or accented characters do not defeat the phrase table.
func cleanText(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}
