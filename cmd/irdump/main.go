// irdump decodes blaster shots from a receiver capture.
//
// Replay a capture file:
//
//	irdump -source file -path shots.txt
//
// Listen to a receiver bridge streaming edges over USB serial:
//
//	irdump -source serial -path /dev/ttyACM0 -record session.txt
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/sparques/blasterrx/cmd/irdump/internal/app"
	"github.com/sparques/blasterrx/cmd/irdump/internal/capture"
)

func main() {
	var (
		source       = flag.String("source", app.SourceFile, "Capture source (file|serial)")
		path         = flag.String("path", "-", "Capture file, - for stdin, or serial device")
		baud         = flag.Int("baud", capture.DefaultBaudRate, "Serial baud rate")
		pollInterval = flag.Duration("poll-interval", time.Second/60, "How often a live session polls for packets")
		strict       = flag.Bool("strict", false, "Drop a frame on any period that fits no band")
		holdoff      = flag.Duration("damage-holdoff", 0, "Ignore shots for this long after a damage packet, like the badge hit effect")
		record       = flag.String("record", "", "Copy the raw capture to this file")
		histogram    = flag.String("histogram", "", "Plot burst periods into this image file (.png, .svg, .pdf)")
		logLevel     = flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	)

	flag.Parse()

	cfg := app.Config{
		Source:           *source,
		Path:             *path,
		BaudRate:         *baud,
		PollInterval:     *pollInterval,
		Strict:           *strict,
		DamageHoldoff:    *holdoff,
		Record:           *record,
		Histogram:        *histogram,
		LogLevel:         *logLevel,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialise irdump: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("irdump terminated: %v", err)
	}
}
