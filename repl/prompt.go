package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/teranos/fsim/kanban"
)

// InvalidIntegerMessage is printed each time a prompt rejects its input
const InvalidIntegerMessage = "Please enter a non-negative integer"

// Prompter reads answers line by line from a reader. A background goroutine
// does the blocking reads so a waiting prompt can be abandoned when its
// context ends.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer

	start    sync.Once
	requests chan struct{}
	results  chan readResult
	pending  bool
	err      error
}

type readResult struct {
	line string
	err  error
}

// NewPrompter reads from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:       bufio.NewScanner(in),
		out:      out,
		requests: make(chan struct{}),
		results:  make(chan readResult, 1),
	}
}

// ReadLine returns the next line without its terminator, io.EOF, or the
// context error if ctx ends first. A line that arrives after cancellation is
// returned by the next call.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.start.Do(func() { go p.readLoop() })

	if !p.pending {
		select {
		case p.requests <- struct{}{}:
			p.pending = true
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	select {
	case r := <-p.results:
		p.pending = false
		if r.err != nil {
			p.err = r.err
			return "", r.err
		}
		return r.line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readLoop scans one line per request until the reader is exhausted.
func (p *Prompter) readLoop() {
	for range p.requests {
		if !p.in.Scan() {
			err := p.in.Err()
			if err == nil {
				err = io.EOF
			}
			p.results <- readResult{err: err}
			return
		}
		p.results <- readResult{line: strings.TrimRight(p.in.Text(), "\r")}
	}
}

// Int asks until a non-negative integer is entered.
func (p *Prompter) Int(ctx context.Context, prompt string) (int, error) {
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		if v, ok := ParseNonNegative(line); ok {
			return v, nil
		}
		fmt.Fprintln(p.out, InvalidIntegerMessage)
	}
}

// Limit asks for a WIP limit. "none" or "-" means unbounded.
func (p *Prompter) Limit(ctx context.Context, prompt string) (int, error) {
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		if v, ok := ParseLimit(line); ok {
			return v, nil
		}
		fmt.Fprintln(p.out, InvalidIntegerMessage+" (or 'none')")
	}
}

// ParseNonNegative parses s as an integer >= 0.
func ParseNonNegative(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// ParseLimit parses a WIP limit, mapping "none", "-" and "∞" to kanban.Unbounded.
func ParseLimit(s string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "-", "∞", "unbounded":
		return kanban.Unbounded, true
	}
	return ParseNonNegative(s)
}
