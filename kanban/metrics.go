package kanban

import (
	"strconv"

	"github.com/teranos/fsim/sym"
)

// NoBottleneck is reported when no box has queued tickets.
const NoBottleneck = -1

// CycleTime is the estimated days for a ticket entering today to leave the
// pipeline. A stalled box (speed 0) holding queued work makes it unbounded.
type CycleTime struct {
	Days      int  `json:"days" yaml:"days" toml:"days"`
	Unbounded bool `json:"unbounded" yaml:"unbounded" toml:"unbounded"`
}

func (c CycleTime) String() string {
	if c.Unbounded {
		return sym.Infinity
	}
	return strconv.Itoa(c.Days)
}

// ComputeCycleTime returns len(boxes) + Σ ceil(queued/speed).
// A zero-speed box contributes nothing when its queue is empty.
func ComputeCycleTime(boxes []BoxState) CycleTime {
	days := len(boxes)
	for _, b := range boxes {
		if b.Queued == 0 {
			continue
		}
		if b.Speed <= 0 {
			return CycleTime{Unbounded: true}
		}
		days += (b.Queued + b.Speed - 1) / b.Speed
	}
	return CycleTime{Days: days}
}

// BottleneckIndex returns the highest index whose box has queued tickets,
// or NoBottleneck.
func BottleneckIndex(boxes []BoxState) int {
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].Queued > 0 {
			return i
		}
	}
	return NoBottleneck
}

// TotalWIP sums queued and in-progress tickets across boxes.
func TotalWIP(boxes []BoxState) int {
	total := 0
	for _, b := range boxes {
		total += b.Load()
	}
	return total
}

// AverageLeadTime is the mean EndDay-StartDay over finished tickets.
func AverageLeadTime(tickets []Ticket) (float64, bool) {
	sum, n := 0, 0
	for _, t := range tickets {
		if lt, ok := t.LeadTime(); ok {
			sum += lt
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
