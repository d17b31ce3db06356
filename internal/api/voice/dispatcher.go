package voice

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"PharmaPOS/internal/entity"
	pkgContext "PharmaPOS/pkg/context"
)

const (
	FeedbackInfo    = "info"
	FeedbackWarning = "warning"
	FeedbackError   = "error"
)

type Feedback struct {
	Level   string
	Message string
}

// Snapshot is the terminal state a command is resolved against. It is
// taken at dispatch time, not at utterance time.
type Snapshot struct {
	Results    []entity.Product
	Quantities map[string]int
	CartLines  []entity.CartLine
}

// Actions is what a command is allowed to do to the terminal.
type Actions interface {
	Search(ctx context.Context, term string) (int, error)
	AddToCart(ctx context.Context, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
	OpenCheckout(ctx context.Context) error
	CloseVoice(ctx context.Context)
}

var (
	addCountPattern = regexp.MustCompile(`^add (\d+)`)
	selectPattern   = regexp.MustCompile(`^select (\d+|one)`)
)

// rule pairs a match predicate with the action it triggers. The rule
// table is evaluated top to bottom and the first match wins, so
// precedence lives in the table order.
type rule struct {
	name  string
	match func(command string) bool
	run   func(ctx context.Context, command string, snap Snapshot, acts Actions) Feedback
}

// Dispatcher maps a normalized command to a terminal action.
type Dispatcher struct {
	log   *logrus.Logger
	rules []rule
}

func NewDispatcher(log *logrus.Logger) *Dispatcher {
	d := &Dispatcher{log: log}
	d.rules = []rule{
		{"search", contains("search"), d.search},
		{"select", selectPattern.MatchString, d.selectResult},
		{"add_count", addCountPattern.MatchString, d.addCount},
		{"add", anyOf(contains("add to cart"), equals("add item")), d.addFirst},
		{"remove", contains("remove"), d.remove},
		{"clear", anyOf(contains("clear cart"), contains("empty cart")), d.clear},
		{"checkout", anyOf(contains("print bill"), contains("checkout")), d.checkout},
		{"close", anyOf(contains("close"), contains("exit"), contains("quit")), d.close},
	}
	return d
}

func (d *Dispatcher) Execute(ctx context.Context, command string, snap Snapshot, acts Actions) Feedback {
	name, fb := d.execute(ctx, command, snap, acts)
	d.log.WithFields(logrus.Fields{
		"request_id": pkgContext.GetRequestID(ctx),
		"command":    command,
		"rule":       name,
		"level":      fb.Level,
	}).Info(fb.Message)
	return fb
}

func (d *Dispatcher) execute(ctx context.Context, command string, snap Snapshot, acts Actions) (string, Feedback) {
	for _, r := range d.rules {
		if r.match(command) {
			return r.name, r.run(ctx, command, snap, acts)
		}
	}
	return "", Feedback{Level: FeedbackWarning, Message: fmt.Sprintf("command not recognized: %s", command)}
}

func contains(sub string) func(string) bool {
	return func(command string) bool { return strings.Contains(command, sub) }
}

func equals(want string) func(string) bool {
	return func(command string) bool { return command == want }
}

func anyOf(matchers ...func(string) bool) func(string) bool {
	return func(command string) bool {
		for _, m := range matchers {
			if m(command) {
				return true
			}
		}
		return false
	}
}

func (d *Dispatcher) search(ctx context.Context, command string, _ Snapshot, acts Actions) Feedback {
	term := ""
	if idx := strings.Index(command, "search for"); idx >= 0 {
		term = command[idx+len("search for"):]
	} else if idx := strings.Index(command, "search"); idx >= 0 {
		term = command[idx+len("search"):]
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return Feedback{Level: FeedbackInfo, Message: "nothing to search"}
	}

	count, err := acts.Search(ctx, term)
	if err != nil {
		return Feedback{Level: FeedbackError, Message: fmt.Sprintf("search for %s failed", term)}
	}
	if count == 0 {
		return Feedback{Level: FeedbackWarning, Message: fmt.Sprintf("no products found for %s", term)}
	}
	return Feedback{Level: FeedbackInfo, Message: fmt.Sprintf("found %d products for %s", count, term)}
}

func (d *Dispatcher) selectResult(ctx context.Context, command string, snap Snapshot, acts Actions) Feedback {
	raw := selectPattern.FindStringSubmatch(command)[1]
	n := 1
	if raw != "one" {
		n, _ = strconv.Atoi(raw)
	}
	if n < 1 || n > len(snap.Results) {
		return Feedback{Level: FeedbackError, Message: fmt.Sprintf("selection %d is out of range", n)}
	}
	product := snap.Results[n-1]
	return d.add(ctx, product, quantityFor(snap, product.ID), acts)
}

func (d *Dispatcher) addCount(ctx context.Context, command string, snap Snapshot, acts Actions) Feedback {
	if len(snap.Results) == 0 {
		return Feedback{Level: FeedbackError, Message: "search for a product first"}
	}
	qty, _ := strconv.Atoi(addCountPattern.FindStringSubmatch(command)[1])
	if qty < 1 {
		qty = 1
	}
	return d.add(ctx, snap.Results[0], qty, acts)
}

func (d *Dispatcher) addFirst(ctx context.Context, _ string, snap Snapshot, acts Actions) Feedback {
	if len(snap.Results) == 0 {
		return Feedback{Level: FeedbackError, Message: "search for a product first"}
	}
	return d.add(ctx, snap.Results[0], 1, acts)
}

func (d *Dispatcher) add(ctx context.Context, product entity.Product, qty int, acts Actions) Feedback {
	if err := acts.AddToCart(ctx, product.ID, qty); err != nil {
		return Feedback{Level: FeedbackError, Message: fmt.Sprintf("could not add %s to cart", product.Name)}
	}
	return Feedback{Level: FeedbackInfo, Message: fmt.Sprintf("added %d x %s to cart", qty, product.Name)}
}

// remove matches spoken tokens against cart line names. When no token
// matches, the most recently added line is removed.
func (d *Dispatcher) remove(ctx context.Context, command string, snap Snapshot, acts Actions) Feedback {
	if len(snap.CartLines) == 0 {
		return Feedback{Level: FeedbackError, Message: "cart is empty"}
	}

	target := findRemovalTarget(command, snap.CartLines)
	if err := acts.RemoveFromCart(ctx, target.ProductID); err != nil {
		return Feedback{Level: FeedbackError, Message: fmt.Sprintf("could not remove %s", target.Name)}
	}
	return Feedback{Level: FeedbackInfo, Message: fmt.Sprintf("removed %s from cart", target.Name)}
}

func (d *Dispatcher) clear(ctx context.Context, _ string, snap Snapshot, acts Actions) Feedback {
	if len(snap.CartLines) == 0 {
		return Feedback{Level: FeedbackInfo, Message: "cart is already empty"}
	}
	if err := acts.ClearCart(ctx); err != nil {
		return Feedback{Level: FeedbackError, Message: "could not clear the cart"}
	}
	return Feedback{Level: FeedbackInfo, Message: "cart cleared"}
}

func (d *Dispatcher) checkout(ctx context.Context, _ string, snap Snapshot, acts Actions) Feedback {
	if len(snap.CartLines) == 0 {
		return Feedback{Level: FeedbackError, Message: "cart is empty, nothing to check out"}
	}
	if err := acts.OpenCheckout(ctx); err != nil {
		return Feedback{Level: FeedbackError, Message: "could not open checkout"}
	}
	return Feedback{Level: FeedbackInfo, Message: "checkout opened"}
}

func (d *Dispatcher) close(ctx context.Context, _ string, _ Snapshot, acts Actions) Feedback {
	acts.CloseVoice(ctx)
	return Feedback{Level: FeedbackInfo, Message: "voice control closed"}
}

var removeStopWords = map[string]bool{
	"remove": true,
	"delete": true,
	"from":   true,
	"cart":   true,
	"the":    true,
	"item":   true,
}

func findRemovalTarget(command string, lines []entity.CartLine) entity.CartLine {
	for _, token := range strings.Fields(command) {
		if len(token) < 3 || removeStopWords[token] {
			continue
		}
		for _, line := range lines {
			if strings.Contains(strings.ToLower(line.Name), token) {
				return line
			}
		}
	}
	return lines[len(lines)-1]
}

func quantityFor(snap Snapshot, productID string) int {
	if qty, ok := snap.Quantities[productID]; ok && qty > 0 {
		return qty
	}
	return 1
}
