// Package trace records per-day pipeline snapshots for a simulation run and
// summarizes them once the run ends.
package trace

import (
	"slices"

	"github.com/google/uuid"

	"github.com/teranos/fsim/kanban"
)

// Recorder accumulates snapshots for one run. It is not safe for concurrent use.
type Recorder struct {
	runID string
	days  []kanban.Snapshot
}

// NewRecorder starts a run with a fresh random run ID.
func NewRecorder() *Recorder {
	return &Recorder{runID: uuid.NewString()}
}

// RunID identifies the run in logs and exported traces.
func (r *Recorder) RunID() string { return r.runID }

// Record appends a snapshot.
func (r *Recorder) Record(s kanban.Snapshot) {
	r.days = append(r.days, s)
}

// Days returns the recorded snapshots in order.
func (r *Recorder) Days() []kanban.Snapshot {
	return append([]kanban.Snapshot(nil), r.days...)
}

// Len is the number of recorded snapshots.
func (r *Recorder) Len() int { return len(r.days) }

// Summary describes a finished run.
type Summary struct {
	RunID             string  `json:"run_id" yaml:"run_id" toml:"run_id"`
	Days              int     `json:"days" yaml:"days" toml:"days"`
	Completed         int     `json:"completed" yaml:"completed" toml:"completed"`
	Created           int     `json:"created" yaml:"created" toml:"created"`
	FinalWIP          int     `json:"final_wip" yaml:"final_wip" toml:"final_wip"`
	PeakWIP           int     `json:"peak_wip" yaml:"peak_wip" toml:"peak_wip"`
	AverageThroughput float64 `json:"average_throughput" yaml:"average_throughput" toml:"average_throughput"`
	AverageLeadTime   float64 `json:"average_lead_time" yaml:"average_lead_time" toml:"average_lead_time"`
	HasLeadTime       bool    `json:"has_lead_time" yaml:"has_lead_time" toml:"has_lead_time"`
	// BottleneckDays counts the days each box was the bottleneck, by box index.
	BottleneckDays []BottleneckCount `json:"bottleneck_days" yaml:"bottleneck_days" toml:"bottleneck_days"`
}

// BottleneckCount is the number of days one box was the bottleneck.
type BottleneckCount struct {
	Box  int `json:"box" yaml:"box" toml:"box"`
	Days int `json:"days" yaml:"days" toml:"days"`
}

// Summarize aggregates the recorded days together with the pipeline's ledger.
func (r *Recorder) Summarize(completed []kanban.Ticket) Summary {
	s := Summary{
		RunID:     r.runID,
		Days:      len(r.days),
		Completed: len(completed),
	}
	if len(r.days) > 0 {
		last := r.days[len(r.days)-1]
		s.Created = last.TotalCreated
		s.FinalWIP = last.TotalWIP
		s.AverageThroughput = float64(len(completed)) / float64(len(r.days))
	}
	counts := map[int]int{}
	for _, d := range r.days {
		if d.TotalWIP > s.PeakWIP {
			s.PeakWIP = d.TotalWIP
		}
		if d.HasBottleneck() {
			counts[d.Bottleneck]++
		}
	}
	for box, days := range counts {
		s.BottleneckDays = append(s.BottleneckDays, BottleneckCount{Box: box, Days: days})
	}
	slices.SortFunc(s.BottleneckDays, func(a, b BottleneckCount) int { return a.Box - b.Box })
	s.AverageLeadTime, s.HasLeadTime = kanban.AverageLeadTime(completed)
	return s
}
