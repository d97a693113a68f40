// Package pulse drives a pipeline in time. A Session serializes access to one
// pipeline so that a ticker goroutine, a configuration watcher and the
// interactive loop can share it.
package pulse

import (
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/kanban"
	"github.com/teranos/fsim/logger"
	"github.com/teranos/fsim/trace"
)

// Session owns a pipeline and the recorder of its run.
type Session struct {
	mu       sync.Mutex
	pipeline *kanban.Pipeline
	recorder *trace.Recorder
	log      *zap.SugaredLogger
}

// NewSession wraps p. Every step taken through the session is recorded.
func NewSession(p *kanban.Pipeline, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = logger.Logger
	}
	rec := trace.NewRecorder()
	log = log.With(logger.FieldRunID, rec.RunID())
	p.SetObserver(NewStepObserver(log))
	return &Session{pipeline: p, recorder: rec, log: log}
}

// RunID of the recorded run.
func (s *Session) RunID() string { return s.recorder.RunID() }

// Len is the fixed number of boxes.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline.Len()
}

// Step advances one day and returns the resulting snapshot.
func (s *Session) Step() kanban.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pipeline.StepForward()
	snap := s.pipeline.Snapshot()
	s.recorder.Record(snap)

	s.log.Debugw("Day simulated",
		logger.FieldDay, snap.Day,
		logger.FieldThroughput, snap.DailyThroughput,
		logger.FieldCumulative, snap.Cumulative,
		logger.FieldCycleTime, snap.CycleTime.String(),
		logger.FieldBottleneck, snap.Bottleneck,
		logger.FieldWIP, snap.TotalWIP)
	return snap
}

// Snapshot reads the current state without stepping.
func (s *Session) Snapshot() kanban.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline.Snapshot()
}

// SetSpeed changes the speed of box i from the next step on.
func (s *Session) SetSpeed(i, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pipeline.SetSpeed(i, v); err != nil {
		return err
	}
	s.log.Infow("Speed changed", logger.FieldBox, i, logger.FieldSpeed, v)
	return nil
}

// SetWIPLimit changes the WIP limit of box i from the next step on.
func (s *Session) SetWIPLimit(i, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pipeline.SetWIPLimit(i, v); err != nil {
		return err
	}
	s.log.Infow("WIP limit changed", logger.FieldBox, i, logger.FieldWIPLimit, kanban.Limit(v).String())
	return nil
}

// Apply sets the speed and WIP limit of every box from specs. The box count
// of a pipeline is fixed, so specs must have exactly one entry per box.
// Nothing is changed when any entry is rejected.
func (s *Session) Apply(specs []kanban.BoxSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(specs) != s.pipeline.Len() {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidConfig, "cannot apply %d boxes to a pipeline of %d", len(specs), s.pipeline.Len()),
			"restart the run to change the number of boxes")
	}
	for i, spec := range specs {
		if spec.Speed < 0 {
			return errors.NewInvalidConfigError("box %d: speed must be non-negative, got %d", i, spec.Speed)
		}
		if spec.WIPLimit != nil && *spec.WIPLimit < 0 {
			return errors.NewInvalidConfigError("box %d: wip_limit must be non-negative, got %d", i, *spec.WIPLimit)
		}
	}

	for i, spec := range specs {
		limit := kanban.Unbounded
		if spec.WIPLimit != nil {
			limit = *spec.WIPLimit
		}
		if err := s.pipeline.SetSpeed(i, spec.Speed); err != nil {
			return errors.Wrapf(err, "failed to apply speed to box %d", i)
		}
		if err := s.pipeline.SetWIPLimit(i, limit); err != nil {
			return errors.Wrapf(err, "failed to apply WIP limit to box %d", i)
		}
	}
	s.log.Infow("Pipeline settings applied", logger.FieldBoxes, len(specs))
	return nil
}

// Completed returns a copy of the ledger.
func (s *Session) Completed() []kanban.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline.Completed()
}

// Summary aggregates every day stepped through this session.
func (s *Session) Summary() trace.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Summarize(s.pipeline.Completed())
}

// Days returns the recorded snapshots.
func (s *Session) Days() []kanban.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Days()
}
