// Package capture reads IR receiver edge captures.
//
// A capture is text, one edge per line:
//
//	<level> <micros>
//
// level is the pin level after the edge, 0/1 or L/H. micros is the
// receiver's free running microsecond counter as a decimal uint32. Blank
// lines and lines starting with # are skipped.
package capture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every error about a capture line that can't
// be parsed.
var ErrMalformed = errors.New("malformed capture line")

// Edge is a single level transition.
type Edge struct {
	Level  bool
	Micros uint32
}

func (e Edge) String() string {
	if e.Level {
		return "1 " + strconv.FormatUint(uint64(e.Micros), 10)
	}
	return "0 " + strconv.FormatUint(uint64(e.Micros), 10)
}

// ParseLine decodes one capture line. skip is true for blank and comment
// lines.
func ParseLine(line string) (e Edge, skip bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Edge{}, true, nil
	}

	f := strings.Fields(line)
	if len(f) != 2 {
		return Edge{}, false, fmt.Errorf("%w: want 2 fields, got %d", ErrMalformed, len(f))
	}

	switch strings.ToUpper(f[0]) {
	case "0", "L":
		e.Level = false
	case "1", "H":
		e.Level = true
	default:
		return Edge{}, false, fmt.Errorf("%w: bad level %q", ErrMalformed, f[0])
	}

	us, err := strconv.ParseUint(f[1], 10, 32)
	if err != nil {
		return Edge{}, false, fmt.Errorf("%w: bad timestamp %q", ErrMalformed, f[1])
	}
	e.Micros = uint32(us)
	return e, false, nil
}

// Reader pulls edges out of a capture stream.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{sc: bufio.NewScanner(r)}
}

// Next returns the next edge. At the end of the stream it returns io.EOF.
func (r *Reader) Next() (Edge, error) {
	for r.sc.Scan() {
		r.line++
		e, skip, err := ParseLine(r.sc.Text())
		if err != nil {
			return Edge{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		if skip {
			continue
		}
		return e, nil
	}
	if err := r.sc.Err(); err != nil {
		return Edge{}, err
	}
	return Edge{}, io.EOF
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}
