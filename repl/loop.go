// Package repl is the interactive console loop. Input tokens are mapped to
// engine calls through a dispatch table; the loop holds no simulation state
// of its own.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/teranos/fsim/display"
	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/kanban"
	"github.com/teranos/fsim/logger"
	"github.com/teranos/fsim/sym"
)

// CommandPrompt is shown before every command
const CommandPrompt = "Please enter a command? (q: quit, d: details)"

// Engine is the subset of a simulation the loop drives.
type Engine interface {
	Len() int
	Step() kanban.Snapshot
	Snapshot() kanban.Snapshot
	SetSpeed(i, v int) error
	SetWIPLimit(i, v int) error
	Completed() []kanban.Ticket
}

// RenderFunc draws the state after a step.
type RenderFunc func(io.Writer, kanban.Snapshot)

// handler runs one command. quit ends the loop.
type handler func(l *Loop, args []string) (quit bool, err error)

// commands maps command tokens to handlers. Anything else steps.
var commands = map[string]handler{
	"q": quitCommand,
	"d": detailsCommand,
	"s": speedCommand,
	"w": wipCommand,
	"l": ledgerCommand,
	"n": stepCommand,
}

// Loop reads commands and applies them to an engine.
type Loop struct {
	engine Engine
	prompt *Prompter
	out    io.Writer
	render RenderFunc
	log    *zap.SugaredLogger
	ctx    context.Context
}

// Option configures a Loop
type Option func(*Loop)

// WithRenderer replaces the default day renderer.
func WithRenderer(r RenderFunc) Option {
	return func(l *Loop) { l.render = r }
}

// WithPrompter reads commands through p, so answers already buffered by an
// earlier Setup are not lost.
func WithPrompter(p *Prompter) Option {
	return func(l *Loop) { l.prompt = p }
}

// WithLogger sets the loop logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(l *Loop) { l.log = log }
}

// New builds a loop over engine reading from in and writing to out.
func New(engine Engine, in io.Reader, out io.Writer, opts ...Option) *Loop {
	l := &Loop{
		engine: engine,
		prompt: NewPrompter(in, out),
		out:    out,
		render: display.RenderDay,
		log:    logger.ComponentLogger("repl"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes commands until quit, end of input or ctx is done.
// End of input is a clean exit.
func (l *Loop) Run(ctx context.Context) error {
	l.ctx = ctx
	defer func() { l.ctx = nil }()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(l.out, CommandPrompt)
		line, err := l.prompt.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return errors.Wrap(err, "failed to read command")
		}

		quit, err := l.Dispatch(line)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			l.report(err)
		}
		if quit {
			return nil
		}
	}
}

// Dispatch runs one input line.
func (l *Loop) Dispatch(line string) (bool, error) {
	name, args := tokenize(line)
	h, ok := commands[name]
	if !ok {
		h = stepCommand
	}
	l.log.Debugw("Command", logger.FieldCommand, name, "args", args)
	return h(l, args)
}

// tokenize splits a line into a command token and its arguments. Glyphs are
// accepted in place of command tokens.
func tokenize(line string) (string, []string) {
	words, err := shellquote.Split(line)
	if err != nil {
		words = strings.Fields(line)
	}
	if len(words) == 0 {
		return "", nil
	}
	name := strings.ToLower(words[0])
	if cmd, ok := sym.SymbolToCommand[words[0]]; ok {
		name = cmd
	}
	return name, words[1:]
}

// runContext is the context of the running loop, or Background when Dispatch
// is called directly.
func (l *Loop) runContext() context.Context {
	if l.ctx == nil {
		return context.Background()
	}
	return l.ctx
}

func (l *Loop) report(err error) {
	fmt.Fprintf(l.out, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(l.out, "  hint: %s\n", hint)
	}
}

// intArg uses args[i] when it parses, otherwise prompts.
func (l *Loop) intArg(args []string, i int, prompt string) (int, error) {
	if i < len(args) {
		if v, ok := ParseNonNegative(args[i]); ok {
			return v, nil
		}
		fmt.Fprintln(l.out, InvalidIntegerMessage)
	}
	return l.prompt.Int(l.runContext(), prompt)
}

func quitCommand(*Loop, []string) (bool, error) { return true, nil }

func detailsCommand(l *Loop, _ []string) (bool, error) {
	display.RenderCommands(l.out)
	return false, nil
}

func stepCommand(l *Loop, _ []string) (bool, error) {
	l.render(l.out, l.engine.Step())
	return false, nil
}

func ledgerCommand(l *Loop, _ []string) (bool, error) {
	display.RenderLedger(l.out, l.engine.Completed())
	return false, nil
}

func speedCommand(l *Loop, args []string) (bool, error) {
	box, err := l.intArg(args, 0, "index of box you want to change: ")
	if err != nil {
		return false, err
	}
	speed, err := l.intArg(args, 1, "please enter new speed: ")
	if err != nil {
		return false, err
	}
	if err := l.engine.SetSpeed(box, speed); err != nil {
		return false, err
	}
	fmt.Fprintf(l.out, "%s box %d speed set to %d\n", sym.Speed, box, speed)
	return false, nil
}

func wipCommand(l *Loop, args []string) (bool, error) {
	box, err := l.intArg(args, 0, "index of box you want to change: ")
	if err != nil {
		return false, err
	}

	var limit int
	if v, ok := parseLimitArg(args, 1); ok {
		limit = v
	} else {
		if len(args) > 1 {
			fmt.Fprintln(l.out, InvalidIntegerMessage+" (or 'none')")
		}
		if limit, err = l.prompt.Limit(l.runContext(), "please enter new WIP limit (none for unbounded): "); err != nil {
			return false, err
		}
	}

	if err := l.engine.SetWIPLimit(box, limit); err != nil {
		return false, err
	}
	fmt.Fprintf(l.out, "%s box %d WIP limit set to %s\n", sym.WIP, box, kanban.Limit(limit))
	return false, nil
}

func parseLimitArg(args []string, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	return ParseLimit(args[i])
}
