package kanban

import (
	"math"
	"strconv"

	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/sym"
)

// Unbounded is the default WIP limit: no ceiling on queued+done tickets.
// Room computations subtract a non-negative load from it and never overflow.
const Unbounded = math.MaxInt

// Box is one pipeline stage. It owns an inbox of tickets awaiting work and a
// done queue of tickets waiting to be pulled downstream.
type Box struct {
	speed    int
	wipLimit int
	inbox    []Ticket
	done     []Ticket
}

// NewBox creates a box with the given daily capacity and an unbounded WIP limit.
func NewBox(speed int) *Box {
	return &Box{speed: speed, wipLimit: Unbounded}
}

// SetSpeed replaces the daily capacity. Takes effect on the next step.
func (b *Box) SetSpeed(v int) { b.speed = v }

// SetWIPLimit replaces the WIP ceiling. Lowering it below the current load
// evicts nothing; the box admits no new work until it drains below the limit.
func (b *Box) SetWIPLimit(v int) { b.wipLimit = v }

// Speed is how many tickets the box finishes per day.
func (b *Box) Speed() int { return b.speed }

// WIPLimit is the ceiling on Load; Unbounded when none was set.
func (b *Box) WIPLimit() int { return b.wipLimit }

// QueuedCount is the number of tickets waiting to be worked on.
func (b *Box) QueuedCount() int { return len(b.inbox) }

// DoneCount is the number of finished tickets not yet pulled downstream.
func (b *Box) DoneCount() int { return len(b.done) }

// Load is queued plus done: the tickets counted against the WIP limit.
func (b *Box) Load() int { return len(b.inbox) + len(b.done) }

// Room is how many more tickets the box may hold under its WIP limit, never negative.
func (b *Box) Room() int {
	room := b.wipLimit - b.Load()
	if room < 0 {
		return 0
	}
	return room
}

// Process moves up to speed tickets, oldest first, from the inbox to the back
// of the done queue and returns how many moved.
func (b *Box) Process() int {
	var moved []Ticket
	moved, b.inbox = takeFront(b.inbox, b.speed)
	b.done = append(b.done, moved...)
	return len(moved)
}

func (b *Box) admit(tickets []Ticket) {
	b.inbox = append(b.inbox, tickets...)
}

func (b *Box) takeDone(n int) []Ticket {
	var taken []Ticket
	taken, b.done = takeFront(b.done, n)
	return taken
}

func (b *Box) state(index int) BoxState {
	return BoxState{
		Index:      index,
		Speed:      b.speed,
		WIPLimit:   Limit(b.wipLimit),
		Queued:     len(b.inbox),
		InProgress: len(b.done),
	}
}

// Limit is a WIP limit as seen by renderers. Unbounded encodes as "none".
type Limit int

// IsUnbounded reports whether the limit is the Unbounded default.
func (l Limit) IsUnbounded() bool { return int(l) == Unbounded }

func (l Limit) String() string {
	if l.IsUnbounded() {
		return sym.Infinity
	}
	return strconv.Itoa(int(l))
}

// MarshalJSON encodes a bounded limit as a number and Unbounded as "none".
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.IsUnbounded() {
		return []byte(`"none"`), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// UnmarshalJSON accepts a number or "none".
func (l *Limit) UnmarshalJSON(data []byte) error {
	if string(data) == `"none"` {
		*l = Limit(Unbounded)
		return nil
	}
	v, err := strconv.Atoi(string(data))
	if err != nil {
		return errors.NewInvalidInputError("WIP limit %s is neither a number nor \"none\"", data)
	}
	*l = Limit(v)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (l Limit) MarshalYAML() (interface{}, error) {
	if l.IsUnbounded() {
		return "none", nil
	}
	return int(l), nil
}

// MarshalText is used by TOML encoders.
func (l Limit) MarshalText() ([]byte, error) {
	if l.IsUnbounded() {
		return []byte("none"), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// BoxState is a read-only copy of one box's counters.
type BoxState struct {
	Index      int   `json:"index" yaml:"index" toml:"index"`
	Speed      int   `json:"speed" yaml:"speed" toml:"speed"`
	WIPLimit   Limit `json:"wip_limit" yaml:"wip_limit" toml:"wip_limit"`
	Queued     int   `json:"queued" yaml:"queued" toml:"queued"`
	InProgress int   `json:"in_progress" yaml:"in_progress" toml:"in_progress"`
}

// Load is Queued plus InProgress.
func (s BoxState) Load() int { return s.Queued + s.InProgress }
