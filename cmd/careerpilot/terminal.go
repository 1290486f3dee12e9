package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/observability"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

// terminal reads answers from the user and prints workflow output
type terminal struct {
	in      *bufio.Reader
	out     io.Writer
	printer *observability.Printer
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{
		in:      bufio.NewReader(in),
		out:     out,
		printer: observability.NewPrinter(out),
	}
}

// ask prints prompt and returns the trimmed reply, or def for an empty reply.
// io.EOF is returned only when the input ends before any text.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (t *terminal) ask(prompt, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", prompt)
	}
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// choose asks for a 1-based option number and returns the chosen index.
// Free text matching an option exactly is accepted as well.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (t *terminal) choose(prompt string, options []string, def int) (int, error) {
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}
	for {
		reply, err := t.ask(prompt, strconv.Itoa(def+1))
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(reply); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		for i, opt := range options {
			if strings.EqualFold(opt, reply) {
				return i, nil
			}
		}
		fmt.Fprintf(t.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

// println writes one line
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (t *terminal) println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

// notifier prints busy labels and notifications as they happen
type notifier struct {
	printer *observability.Printer
}

// Publish prints the events a terminal user needs to see
func (n notifier) Publish(ev events.Event) {
	switch ev.Type {
	case events.Busy:
		n.printer.PrintNotice("info", ev.Message+"...")
	case events.Notification:
		level := string(workflow.LevelInfo)
		if note, ok := ev.Data.(*workflow.Notification); ok {
			level = string(note.Level)
		}
		n.printer.PrintNotice(level, ev.Message)
	case events.AnalysisFailed:
		n.printer.PrintNotice("warning", "Analysis for "+ev.Message+" could not be loaded.")
	}
}
