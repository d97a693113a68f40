package kanban

import (
	"github.com/teranos/fsim/errors"
)

// BoxSpec configures one box at construction. A nil WIPLimit is unbounded.
type BoxSpec struct {
	Speed    int
	WIPLimit *int
}

// Observer receives per-step transfer counts. Implementations must not call
// back into the pipeline.
type Observer interface {
	// Pulled reports count tickets moved out of box from's done queue;
	// from is the last box when tickets leave the pipeline.
	Pulled(day, from, count int)
	Admitted(day, count int)
	Processed(day, box, count int)
}

type nopObserver struct{}

func (nopObserver) Pulled(int, int, int)    {}
func (nopObserver) Admitted(int, int)       {}
func (nopObserver) Processed(int, int, int) {}

// Pipeline owns an ordered, fixed sequence of boxes and the ledger of
// completed tickets.
type Pipeline struct {
	boxes    []*Box
	ledger   []Ticket
	observer Observer

	currentDay      int
	nextTicketID    int
	created         int
	dailyThroughput int
	cycleTime       CycleTime
}

// New builds a pipeline from box specs in order. The box count is fixed.
func New(specs ...BoxSpec) *Pipeline {
	p := &Pipeline{
		boxes:    make([]*Box, 0, len(specs)),
		observer: nopObserver{},
	}
	for _, s := range specs {
		b := NewBox(s.Speed)
		if s.WIPLimit != nil {
			b.SetWIPLimit(*s.WIPLimit)
		}
		p.boxes = append(p.boxes, b)
	}
	p.cycleTime = ComputeCycleTime(p.Boxes())
	return p
}

// NewWithSpeeds is New with unbounded WIP limits.
func NewWithSpeeds(speeds ...int) *Pipeline {
	specs := make([]BoxSpec, len(speeds))
	for i, s := range speeds {
		specs[i] = BoxSpec{Speed: s}
	}
	return New(specs...)
}

// SetObserver installs o; nil restores the no-op observer.
func (p *Pipeline) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	p.observer = o
}

// StepForward simulates one day:
//  1. pull done work downstream, last box first, bounded by each receiver's WIP room
//  2. append tickets leaving the last box to the ledger, stamped with today
//  3. admit new tickets into the first box, bounded by its speed and WIP room
//  4. process every box in index order
//  5. recompute cycle time
//  6. advance the day
func (p *Pipeline) StepForward() {
	day := p.currentDay
	output := p.pull(day)

	for i := range output {
		output[i].finish(day)
	}
	p.ledger = append(p.ledger, output...)
	p.dailyThroughput = len(output)

	if len(p.boxes) > 0 {
		p.admit(day)
	}

	for i, b := range p.boxes {
		if n := b.Process(); n > 0 {
			p.observer.Processed(day, i, n)
		}
	}

	p.cycleTime = ComputeCycleTime(p.Boxes())
	p.currentDay++
}

// pull moves done tickets right to left and returns those leaving the pipeline.
// The receiver's done queue has already been drained when its upstream
// neighbour is considered, so room freed this step is visible.
func (p *Pipeline) pull(day int) []Ticket {
	n := len(p.boxes)
	if n == 0 {
		return nil
	}

	last := p.boxes[n-1]
	output := last.takeDone(last.DoneCount())
	if len(output) > 0 {
		p.observer.Pulled(day, n-1, len(output))
	}

	for i := n - 2; i >= 0; i-- {
		from, to := p.boxes[i], p.boxes[i+1]
		insertable := min(to.Room(), from.DoneCount())
		if insertable == 0 {
			continue
		}
		to.admit(from.takeDone(insertable))
		p.observer.Pulled(day, i, insertable)
	}
	return output
}

func (p *Pipeline) admit(day int) {
	first := p.boxes[0]
	count := min(first.Speed(), first.Room())
	if count <= 0 {
		return
	}
	tickets := make([]Ticket, count)
	for i := range tickets {
		tickets[i] = newTicket(p.nextTicketID, day)
		p.nextTicketID++
	}
	first.admit(tickets)
	p.created += count
	p.observer.Admitted(day, count)
}

// SetSpeed changes box i's speed. It fails without mutating anything when i
// is out of range or v is negative.
func (p *Pipeline) SetSpeed(i, v int) error {
	b, err := p.box(i)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.NewInvalidInputError("speed must be >= 0, got %d", v)
	}
	b.SetSpeed(v)
	return nil
}

// SetWIPLimit changes box i's WIP limit; use Unbounded to lift it.
func (p *Pipeline) SetWIPLimit(i, v int) error {
	b, err := p.box(i)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.NewInvalidInputError("wip limit must be >= 0, got %d", v)
	}
	b.SetWIPLimit(v)
	return nil
}

func (p *Pipeline) box(i int) (*Box, error) {
	if i < 0 || i >= len(p.boxes) {
		return nil, errors.NewBoxIndexError(i, len(p.boxes))
	}
	return p.boxes[i], nil
}

// Len is the number of boxes.
func (p *Pipeline) Len() int { return len(p.boxes) }

// Box returns a copy of box i's counters.
func (p *Pipeline) Box(i int) (BoxState, error) {
	b, err := p.box(i)
	if err != nil {
		return BoxState{}, err
	}
	return b.state(i), nil
}

// Boxes returns copies of every box's counters in index order.
func (p *Pipeline) Boxes() []BoxState {
	states := make([]BoxState, len(p.boxes))
	for i, b := range p.boxes {
		states[i] = b.state(i)
	}
	return states
}

// CurrentDay is the number of steps taken; the next step simulates this day.
func (p *Pipeline) CurrentDay() int { return p.currentDay }

// DailyThroughput is the number of tickets that left the pipeline on the last step.
func (p *Pipeline) DailyThroughput() int { return p.dailyThroughput }

// CumulativeThroughput is the number of tickets that ever left the pipeline.
func (p *Pipeline) CumulativeThroughput() int { return len(p.ledger) }

// CycleTime is the value computed at the end of the last step.
func (p *Pipeline) CycleTime() CycleTime { return p.cycleTime }

// Bottleneck is the highest box index with queued tickets, or NoBottleneck.
func (p *Pipeline) Bottleneck() int { return BottleneckIndex(p.Boxes()) }

// TotalWIP is the number of tickets inside the pipeline.
func (p *Pipeline) TotalWIP() int { return TotalWIP(p.Boxes()) }

// TotalCreated is the number of tickets ever admitted into the first box.
func (p *Pipeline) TotalCreated() int { return p.created }

// Completed returns a copy of the ledger in completion order.
func (p *Pipeline) Completed() []Ticket {
	return append([]Ticket(nil), p.ledger...)
}

// Snapshot is a read model of the pipeline after a step, for renderers.
type Snapshot struct {
	Elapsed         int        `json:"elapsed" yaml:"elapsed" toml:"elapsed"`
	Day             int        `json:"day" yaml:"day" toml:"day"`
	Boxes           []BoxState `json:"boxes" yaml:"boxes" toml:"boxes"`
	DailyThroughput int        `json:"daily_throughput" yaml:"daily_throughput" toml:"daily_throughput"`
	Cumulative      int        `json:"cumulative_throughput" yaml:"cumulative_throughput" toml:"cumulative_throughput"`
	CycleTime       CycleTime  `json:"cycle_time" yaml:"cycle_time" toml:"cycle_time"`
	Bottleneck      int        `json:"bottleneck" yaml:"bottleneck" toml:"bottleneck"`
	TotalWIP        int        `json:"total_wip" yaml:"total_wip" toml:"total_wip"`
	TotalCreated    int        `json:"total_created" yaml:"total_created" toml:"total_created"`
}

// HasBottleneck reports whether some box has queued tickets.
func (s Snapshot) HasBottleneck() bool { return s.Bottleneck != NoBottleneck }

// Snapshot captures every read accessor at once. Day is the day last
// simulated, -1 before the first step.
func (p *Pipeline) Snapshot() Snapshot {
	boxes := p.Boxes()
	return Snapshot{
		Elapsed:         p.currentDay,
		Day:             p.currentDay - 1,
		Boxes:           boxes,
		DailyThroughput: p.dailyThroughput,
		Cumulative:      len(p.ledger),
		CycleTime:       p.cycleTime,
		Bottleneck:      BottleneckIndex(boxes),
		TotalWIP:        TotalWIP(boxes),
		TotalCreated:    p.created,
	}
}
