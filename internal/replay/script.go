// Package replay drives a paint view from a timestamped touch script on a
// fake clock, so strokes, delayed clears and rate reports can be reproduced
// without a window.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/slots"
)

// Kind names a script operation.
type Kind string

const (
	KindResize  Kind = "resize"
	KindMode    Kind = "mode"
	KindBrush   Kind = "brush"
	KindBrushPx Kind = "brush-px"
	KindClear   Kind = "clear"
	KindRate    Kind = "rate"
	KindDown    Kind = "down"
	KindMove    Kind = "move"
	KindBatch   Kind = "batch"
	KindUp      Kind = "up"
	KindCancel  Kind = "cancel"
	KindWait    Kind = "wait"
)

// Op is one parsed script line. Only the fields relevant to Kind are set.
type Op struct {
	Line int
	At   time.Duration
	Kind Kind

	W, H  int
	Mode  paintview.Mode
	Brush float32
	Clear paintview.ClearPolicy
	On    bool
	Slot  int
	Point slots.Point
	Batch paintview.MoveBatch
}

// Script is a parsed replay script in time order.
type Script []Op

// End returns the timestamp of the last op.
func (s Script) End() time.Duration {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].At
}

// ParseError reports the script line that failed to parse.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// ErrTimeWentBackwards is wrapped by ParseError when a timestamp precedes
// the previous one.
var ErrTimeWentBackwards = errors.New("timestamp earlier than previous op")

// Parse reads a script. Each line is "<t-ms> <op> [args]"; blank lines and
// text after '#' are ignored.
func Parse(r io.Reader) (Script, error) {
	var (
		script Script
		last   time.Duration
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		op, err := parseOp(fields)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		if op.At < last {
			return nil, &ParseError{Line: lineNo, Err: ErrTimeWentBackwards}
		}
		last = op.At
		op.Line = lineNo
		script = append(script, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return script, nil
}

func parseOp(fields []string) (Op, error) {
	if len(fields) < 2 {
		return Op{}, fmt.Errorf("want \"<t-ms> <op>\", got %q", strings.Join(fields, " "))
	}
	ms, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || ms < 0 {
		return Op{}, fmt.Errorf("invalid timestamp %q", fields[0])
	}
	op := Op{At: time.Duration(ms) * time.Millisecond, Kind: Kind(strings.ToLower(fields[1]))}
	args := fields[2:]

	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", op.Kind, n, len(args))
		}
		return nil
	}

	switch op.Kind {
	case KindResize:
		if err := want(2); err != nil {
			return op, err
		}
		if op.W, err = strconv.Atoi(args[0]); err != nil {
			return op, fmt.Errorf("invalid width %q", args[0])
		}
		if op.H, err = strconv.Atoi(args[1]); err != nil {
			return op, fmt.Errorf("invalid height %q", args[1])
		}
	case KindMode:
		if err := want(1); err != nil {
			return op, err
		}
		if op.Mode, err = paintview.ParseMode(args[0]); err != nil {
			return op, err
		}
	case KindBrush:
		if err := want(1); err != nil {
			return op, err
		}
		if op.Brush, err = paintview.ParseBrushSize(args[0]); err != nil {
			return op, err
		}
	case KindBrushPx:
		if err := want(1); err != nil {
			return op, err
		}
		px, err := strconv.ParseFloat(args[0], 32)
		if err != nil || px <= 0 {
			return op, fmt.Errorf("invalid pixel width %q", args[0])
		}
		op.Brush = float32(px)
	case KindClear:
		if err := want(1); err != nil {
			return op, err
		}
		if op.Clear, err = paintview.ParseClearPolicy(args[0]); err != nil {
			return op, err
		}
	case KindRate:
		if err := want(1); err != nil {
			return op, err
		}
		switch strings.ToLower(args[0]) {
		case "on":
			op.On = true
		case "off":
		default:
			return op, fmt.Errorf("rate wants on or off, got %q", args[0])
		}
	case KindDown, KindUp:
		if err := want(1); err != nil {
			return op, err
		}
		if op.Slot, err = parseSlot(args[0]); err != nil {
			return op, err
		}
	case KindMove:
		if err := want(3); err != nil {
			return op, err
		}
		if op.Slot, err = parseSlot(args[0]); err != nil {
			return op, err
		}
		if op.Point, err = parsePoint(args[1], args[2]); err != nil {
			return op, err
		}
	case KindBatch:
		if len(args) == 0 {
			return op, fmt.Errorf("batch needs at least one pointer")
		}
		for _, a := range args {
			p, err := parsePointer(a)
			if err != nil {
				return op, err
			}
			op.Batch = append(op.Batch, p)
		}
	case KindCancel, KindWait:
		if err := want(0); err != nil {
			return op, err
		}
	default:
		return op, fmt.Errorf("unknown op %q", fields[1])
	}
	return op, nil
}

func parseSlot(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid slot %q", s)
	}
	return n, nil
}

func parsePoint(xs, ys string) (slots.Point, error) {
	x, err := strconv.ParseFloat(xs, 32)
	if err != nil {
		return slots.Point{}, fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 32)
	if err != nil {
		return slots.Point{}, fmt.Errorf("invalid y %q", ys)
	}
	return slots.Point{X: float32(x), Y: float32(y)}, nil
}

// parsePointer reads "slot:x,y[;x,y...]". The last position is current and
// the rest are history, oldest first.
func parsePointer(s string) (paintview.PointerSamples, error) {
	slotStr, rest, ok := strings.Cut(s, ":")
	if !ok || rest == "" {
		return paintview.PointerSamples{}, fmt.Errorf("batch pointer %q wants slot:x,y", s)
	}
	slot, err := parseSlot(slotStr)
	if err != nil {
		return paintview.PointerSamples{}, err
	}
	var pts []slots.Point
	for _, pair := range strings.Split(rest, ";") {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return paintview.PointerSamples{}, fmt.Errorf("batch sample %q wants x,y", pair)
		}
		p, err := parsePoint(xs, ys)
		if err != nil {
			return paintview.PointerSamples{}, err
		}
		pts = append(pts, p)
	}
	return paintview.PointerSamples{
		Slot:    slot,
		History: pts[:len(pts)-1],
		Current: pts[len(pts)-1],
	}, nil
}
