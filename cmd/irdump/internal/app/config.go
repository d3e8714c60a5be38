package app

import (
	"fmt"
	"time"
)

// Source kinds.
const (
	SourceFile   = "file"
	SourceSerial = "serial"
)

// Config collects runtime settings for irdump.
type Config struct {
	// Source is SourceFile to replay a capture or SourceSerial to listen
	// to a receiver bridge.
	Source string
	// Path is the capture file, "-" for stdin, or the serial device.
	Path     string
	BaudRate int

	// PollInterval is how often a live session calls TryRead, like the
	// badge main loop does once per animation frame.
	PollInterval time.Duration

	// Strict makes the decoder drop a frame on any period that fits no
	// band instead of skipping it.
	Strict bool
	// DamageHoldoff, if positive, stops polling for this long after a
	// damage packet and then drops whatever packet is waiting, the way the
	// badge ignores shots while it plays its hit effect.
	DamageHoldoff time.Duration

	// Record, if set, copies the raw capture to this file.
	Record string
	// Histogram, if set, is an image file to plot burst periods into.
	Histogram string

	LogLevel string
}

func (c Config) validate() error {
	switch c.Source {
	case SourceFile, SourceSerial:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.Path == "" {
		return fmt.Errorf("no %s path given", c.Source)
	}
	if c.Source == SourceSerial && c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.DamageHoldoff < 0 {
		return fmt.Errorf("damage holdoff must not be negative, got %s", c.DamageHoldoff)
	}
	return nil
}
