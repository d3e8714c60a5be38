//go:build tinygo

package blasterrx

import (
	"errors"
	. "machine"
	"time"
)

// ErrPinInUse is returned by NewRxDevice when another RxDevice already owns
// the pin. A pin has a single interrupt slot, so two devices on it would
// silently steal each other's edges.
var ErrPinInUse = errors.New("pin already bound to an RxDevice")

var (
	claimed []Pin
	epoch   = time.Now()
)

// RxDevice binds the pin-change interrupt of a demodulating IR receiver to
// an EdgeHandler. It implements Line.
type RxDevice struct {
	pin     Pin
	handler EdgeHandler
}

// NewRxDevice configures pin as an input and claims it. Each pin may be
// claimed once for the lifetime of the program.
func NewRxDevice(pin Pin) (*RxDevice, error) {
	for _, p := range claimed {
		if p == pin {
			return nil, ErrPinInUse
		}
	}
	claimed = append(claimed, pin)

	// the common receivers have a pull up built in and idle high
	pin.Configure(PinConfig{Mode: PinInput})
	return &RxDevice{pin: pin}, nil
}

// micros mirrors the Arduino micros() counter: microseconds since start,
// truncated to 32 bits so it wraps about every 71 minutes.
func micros() uint32 {
	return uint32(time.Since(epoch) / time.Microsecond)
}

func (rx *RxDevice) interruptHandler(interruptPin Pin) {
	rx.handler.HandleEdge(interruptPin.Get(), micros())
}

// Arm sets the interrupt handler and thus starts delivering edges to h.
func (rx *RxDevice) Arm(h EdgeHandler) error {
	rx.handler = h
	return rx.pin.SetInterrupt(PinFalling|PinRising, rx.interruptHandler)
}

// Disarm removes the interrupt handler.
func (rx *RxDevice) Disarm() error {
	return rx.pin.SetInterrupt(PinFalling|PinRising, nil)
}
