package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sparques/blasterrx"
	"github.com/sparques/blasterrx/blaster"
	"github.com/sparques/blasterrx/cmd/irdump/internal/capture"
)

// App drives a blaster.Receiver from a capture source and prints what it
// decodes.
type App struct {
	cfg    Config
	logger Logger
	out    io.Writer

	recv    *blaster.Receiver
	periods *periodRecorder

	// While holding after a damage packet, polling is suspended until
	// DamageHoldoff has passed since holdFrom.
	holding     bool
	holdFrom    uint32
	damageDrops int
}

func New(cfg Config) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger, err := NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:    cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// tapLine hands every edge armed on the underlying line to tap as well.
type tapLine struct {
	blasterrx.Line
	tap blasterrx.EdgeHandler
}

func (l tapLine) Arm(h blasterrx.EdgeHandler) error {
	return l.Line.Arm(blasterrx.MultiEdgeHandler(h, l.tap))
}

func (a *App) open() (io.ReadCloser, error) {
	switch a.cfg.Source {
	case SourceSerial:
		return capture.OpenSerial(a.cfg.Path, a.cfg.BaudRate)
	default:
		if a.cfg.Path == "-" {
			return io.NopCloser(os.Stdin), nil
		}
		f, err := os.Open(a.cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open capture: %w", err)
		}
		return f, nil
	}
}

func (a *App) Run(ctx context.Context) error {
	src, err := a.open()
	if err != nil {
		return err
	}
	defer src.Close()

	var in io.Reader = src
	if a.cfg.Record != "" {
		rec, err := os.Create(a.cfg.Record)
		if err != nil {
			return fmt.Errorf("create record file: %w", err)
		}
		defer rec.Close()
		in = io.TeeReader(src, rec)
		a.logger.Infof("recording capture to %s", a.cfg.Record)
	}

	feed := capture.NewFeed(capture.NewReader(in))
	var line blasterrx.Line = feed
	if a.cfg.Histogram != "" {
		a.periods = newPeriodRecorder()
		line = tapLine{Line: feed, tap: a.periods}
	}

	a.recv = blaster.NewReceiver(line)
	a.recv.SetStrict(a.cfg.Strict)
	if err := a.recv.Enable(); err != nil {
		return err
	}

	if a.cfg.Source == SourceSerial {
		a.logger.Infof("listening on %s at %d baud", a.cfg.Path, a.cfg.BaudRate)
		err = a.runLive(ctx, feed, src)
	} else {
		err = a.runReplay(ctx, feed)
	}

	if derr := a.recv.Disable(); derr != nil && err == nil {
		err = derr
	}
	a.summarize()
	return err
}

// runReplay feeds the whole capture synchronously and polls after every
// edge, so no frame is lost to a slow poll.
func (a *App) runReplay(ctx context.Context, feed *capture.Feed) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		e, err := feed.Step()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("replay: %w", err)
		}
		// the capture's own clock stands in for wall time
		a.poll(e.Micros)
	}
}

// runLive pumps edges on their own goroutine, the way an interrupt would
// arrive, and polls on a ticker. Closing the port is what unblocks the pump
// on shutdown.
func (a *App) runLive(ctx context.Context, feed *capture.Feed, port io.Closer) error {
	errCh := make(chan error, 1)
	go func() {
		for {
			if _, err := feed.Step(); err != nil {
				errCh <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	start := time.Now()
	now := func() uint32 {
		return uint32(time.Since(start) / time.Microsecond)
	}

	for {
		select {
		case <-ctx.Done():
			a.logger.Infof("context cancelled")
			_ = port.Close()
			<-errCh
			return nil
		case err := <-errCh:
			a.poll(now())
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("capture: %w", err)
		case <-ticker.C:
			a.poll(now())
		}
	}
}

// poll is one tick of the badge main loop. now is in microseconds.
func (a *App) poll(now uint32) {
	if a.holding {
		if now-a.holdFrom < uint32(a.cfg.DamageHoldoff/time.Microsecond) {
			return
		}
		// whatever arrived during the hit effect is stale
		a.holding = false
		if stale, ok := a.recv.TryRead(); ok {
			a.damageDrops++
			a.logger.Debugf("dropped packet received during hit effect: %s", stale)
		}
		return
	}

	p, ok := a.recv.TryRead()
	if !ok {
		return
	}
	fmt.Fprintln(a.out, p)

	if a.cfg.DamageHoldoff > 0 && p.Action() == blaster.ActionDamage {
		a.holding = true
		a.holdFrom = now
	}
}

func (a *App) summarize() {
	st := a.recv.Stats()
	a.logger.Infof("frames: %d accepted, %d failed checksum, %d dropped during hit effect",
		st.Accepted, st.Rejected, a.damageDrops)

	if a.periods == nil {
		return
	}
	c := a.periods.Counts()
	a.logger.Infof("periods: %d start, %d one, %d zero, %d unmatched",
		c[blaster.SymbolStart], c[blaster.SymbolOne], c[blaster.SymbolZero], c[blaster.SymbolNone])
	if err := a.periods.WriteHistogram(a.cfg.Histogram); err != nil {
		a.logger.Warnf("histogram: %v", err)
		return
	}
	a.logger.Infof("wrote histogram to %s", a.cfg.Histogram)
}
