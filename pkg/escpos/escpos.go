package escpos

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ESC/POS control sequences. Fire-and-forget; the printer never replies.
const (
	ctlInit         = "\x1b@"
	ctlAlignLeft    = "\x1ba\x00"
	ctlAlignCenter  = "\x1ba\x01"
	ctlBoldOn       = "\x1bE\x01"
	ctlBoldOff      = "\x1bE\x00"
	ctlDoubleHeight = "\x1b!\x10"
	ctlNormalSize   = "\x1b!\x00"
	ctlFeed         = "\x1bd\x03"
	ctlCut          = "\x1dVB\x00"
)

const lineWidth = 32

type ReceiptLine struct {
	Name     string
	Quantity int
	Price    float64
	Total    float64
}

type Receipt struct {
	StoreName     string
	StoreAddress  string
	SaleID        string
	Timestamp     time.Time
	Lines         []ReceiptLine
	Subtotal      float64
	Discount      float64
	Total         float64
	PaymentMethod string
	AmountPaid    float64
	Change        float64
	Footer        string
}

type IPrinter interface {
	PrintReceipt(receipt Receipt) error
}

type printer struct {
	log    *logrus.Logger
	opener PortOpener
	device string
}

func NewPrinter(log *logrus.Logger, opener PortOpener, device string) IPrinter {
	return &printer{
		log:    log,
		opener: opener,
		device: device,
	}
}

// PrintReceipt acquires the serial port, writes one complete receipt and
// releases the port. The port is never held across receipts and disconnect is
// attempted even when a write fails partway.
func (p *printer) PrintReceipt(receipt Receipt) error {
	port, err := p.opener.Open(p.device)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"device": p.device,
			"error":  err.Error(),
		}).Error("Failed to open printer port")
		return fmt.Errorf("failed to open printer port: %w", err)
	}

	writeErr := p.write(port, receipt)

	if err := port.Close(); err != nil {
		p.log.WithFields(logrus.Fields{
			"device": p.device,
			"error":  err.Error(),
		}).Warn("Failed to close printer port")
		if writeErr == nil {
			return fmt.Errorf("failed to close printer port: %w", err)
		}
	}

	if writeErr != nil {
		return fmt.Errorf("failed to print receipt: %w", writeErr)
	}

	return nil
}

func (p *printer) write(port Port, receipt Receipt) error {
	for _, chunk := range renderChunks(receipt) {
		if _, err := port.Write([]byte(chunk)); err != nil {
			return err
		}
	}
	return nil
}

// renderChunks produces the exact byte sequence for one receipt: initialize,
// centered bold double-height header, item lines, totals, feed, cut.
func renderChunks(receipt Receipt) []string {
	var chunks []string

	chunks = append(chunks, ctlInit)

	chunks = append(chunks, ctlAlignCenter, ctlBoldOn, ctlDoubleHeight)
	chunks = append(chunks, receipt.StoreName+"\n")
	chunks = append(chunks, ctlNormalSize, ctlBoldOff)
	if receipt.StoreAddress != "" {
		chunks = append(chunks, receipt.StoreAddress+"\n")
	}
	chunks = append(chunks, ctlAlignLeft)

	chunks = append(chunks, divider())
	chunks = append(chunks, fmt.Sprintf("Sale: %s\n", receipt.SaleID))
	chunks = append(chunks, receipt.Timestamp.Format("02 Jan 2006 15:04")+"\n")
	chunks = append(chunks, divider())

	for _, line := range receipt.Lines {
		chunks = append(chunks, line.Name+"\n")
		chunks = append(chunks, padPair(
			fmt.Sprintf("  %d x %s", line.Quantity, formatAmount(line.Price)),
			formatAmount(line.Total),
		))
	}

	chunks = append(chunks, divider())
	chunks = append(chunks, padPair("Subtotal", formatAmount(receipt.Subtotal)))
	if receipt.Discount > 0 {
		chunks = append(chunks, padPair("Discount", "-"+formatAmount(receipt.Discount)))
	}
	chunks = append(chunks, ctlBoldOn)
	chunks = append(chunks, padPair("TOTAL", formatAmount(receipt.Total)))
	chunks = append(chunks, ctlBoldOff)
	chunks = append(chunks, padPair(strings.ToUpper(receipt.PaymentMethod), formatAmount(receipt.AmountPaid)))
	if receipt.Change > 0 {
		chunks = append(chunks, padPair("Change", formatAmount(receipt.Change)))
	}

	if receipt.Footer != "" {
		chunks = append(chunks, ctlAlignCenter)
		chunks = append(chunks, receipt.Footer+"\n")
		chunks = append(chunks, ctlAlignLeft)
	}

	chunks = append(chunks, ctlFeed, ctlCut)

	return chunks
}

func divider() string {
	return strings.Repeat("-", lineWidth) + "\n"
}

// padPair lays out a label on the left and an amount on the right within one
// printer line, truncating the label when both cannot fit.
func padPair(left, right string) string {
	space := lineWidth - len(right)
	if space < 1 {
		space = 1
	}
	if len(left) >= space {
		left = left[:space-1]
	}
	return left + strings.Repeat(" ", space-len(left)) + right + "\n"
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
