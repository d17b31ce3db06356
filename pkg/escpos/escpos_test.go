package escpos

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakePort struct {
	buf      bytes.Buffer
	failAt   int
	writes   int
	closed   int
	closeErr error
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.writes++
	if f.failAt > 0 && f.writes >= f.failAt {
		return 0, errors.New("write failed")
	}
	return f.buf.Write(p)
}

func (f *fakePort) Close() error {
	f.closed++
	return f.closeErr
}

type fakeOpener struct {
	port    *fakePort
	openErr error
	opens   int
}

func (f *fakeOpener) Open(device string) (Port, error) {
	f.opens++
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.port, nil
}

func testReceipt() Receipt {
	return Receipt{
		StoreName:     "Apotek Sentosa",
		StoreAddress:  "Jl. Melati 12",
		SaleID:        "01J8TESTSALE",
		Timestamp:     time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		Lines:         []ReceiptLine{{Name: "Paracetamol 500mg", Quantity: 2, Price: 5000, Total: 10000}},
		Subtotal:      10000,
		Total:         10000,
		PaymentMethod: "cash",
		AmountPaid:    20000,
		Change:        10000,
		Footer:        "Terima kasih",
	}
}

func newQuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestPrintReceiptByteSequence(t *testing.T) {
	port := &fakePort{}
	opener := &fakeOpener{port: port}
	p := NewPrinter(newQuietLogger(), opener, "/dev/ttyUSB0")

	if err := p.PrintReceipt(testReceipt()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := port.buf.String()

	if !strings.HasPrefix(out, ctlInit) {
		t.Error("output does not start with the initialize sequence")
	}
	if !strings.HasSuffix(out, ctlCut) {
		t.Error("output does not end with the cut sequence")
	}

	for _, want := range []string{
		ctlAlignCenter, ctlBoldOn, ctlDoubleHeight, ctlFeed,
		"Apotek Sentosa\n",
		"Paracetamol 500mg\n",
		"01J8TESTSALE",
		"CASH",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if port.closed != 1 {
		t.Errorf("port closed %d times, want 1", port.closed)
	}
}

func TestPrintReceiptReleasesPortOnWriteFailure(t *testing.T) {
	port := &fakePort{failAt: 3}
	opener := &fakeOpener{port: port}
	p := NewPrinter(newQuietLogger(), opener, "/dev/ttyUSB0")

	err := p.PrintReceipt(testReceipt())
	if err == nil {
		t.Fatal("expected error from failing write")
	}
	if port.closed != 1 {
		t.Errorf("port closed %d times after write failure, want 1", port.closed)
	}
}

func TestPrintReceiptOpenFailure(t *testing.T) {
	opener := &fakeOpener{openErr: errors.New("device busy")}
	p := NewPrinter(newQuietLogger(), opener, "/dev/ttyUSB0")

	if err := p.PrintReceipt(testReceipt()); err == nil {
		t.Fatal("expected error when port cannot be opened")
	}
}

func TestPadPair(t *testing.T) {
	line := padPair("Subtotal", "10000.00")
	if len(line) != lineWidth+1 {
		t.Errorf("line length = %d, want %d", len(line), lineWidth+1)
	}
	if !strings.HasPrefix(line, "Subtotal") || !strings.HasSuffix(line, "10000.00\n") {
		t.Errorf("unexpected layout: %q", line)
	}
}
