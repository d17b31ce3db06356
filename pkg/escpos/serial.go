package escpos

import (
	"io"

	"go.bug.st/serial"
)

// Port is one acquired printer connection.
type Port interface {
	io.WriteCloser
}

// PortOpener acquires a printer connection. The serial implementation opens
// the device with the printer's fixed parameters; tests substitute a fake.
type PortOpener interface {
	Open(device string) (Port, error)
}

type serialOpener struct{}

func NewSerialOpener() PortOpener {
	return &serialOpener{}
}

// Open opens the device at 9600 baud, 8 data bits, 1 stop bit, no parity.
func (o *serialOpener) Open(device string) (Port, error) {
	mode := &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, err
	}

	return port, nil
}
