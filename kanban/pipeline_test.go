package kanban

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fsim/errors"
	"github.com/teranos/fsim/internal/util"
)

func stepN(p *Pipeline, n int) {
	for i := 0; i < n; i++ {
		p.StepForward()
	}
}

func TestStepForward_SingleBox(t *testing.T) {
	p := NewWithSpeeds(2)

	p.StepForward()
	b, err := p.Box(0)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Queued)
	assert.Equal(t, 2, b.InProgress)
	assert.Equal(t, 0, p.CumulativeThroughput())
	assert.Equal(t, 0, p.DailyThroughput())
	assert.Equal(t, 1, p.CurrentDay())

	p.StepForward()
	b, err = p.Box(0)
	require.NoError(t, err)
	assert.Equal(t, 2, b.InProgress)
	assert.Equal(t, 2, p.CumulativeThroughput())
	assert.Equal(t, 2, p.DailyThroughput())
	assert.Equal(t, 4, p.TotalCreated())

	for _, ticket := range p.Completed() {
		assert.Equal(t, 0, ticket.StartDay)
		assert.Equal(t, 1, ticket.EndDay)
	}
}

func TestStepForward_FastUpstreamBuildsQueueDownstream(t *testing.T) {
	p := NewWithSpeeds(3, 1)
	stepN(p, 5)

	boxes := p.Boxes()
	assert.Equal(t, 0, boxes[0].Queued)
	assert.Equal(t, 3, boxes[0].InProgress)
	assert.Equal(t, 8, boxes[1].Queued)
	assert.Equal(t, 1, boxes[1].InProgress)

	// Box 1 is the only box with a queue, so it is the rightmost one.
	assert.Equal(t, 1, p.Bottleneck())
	assert.Equal(t, 3, p.CumulativeThroughput())
	assert.Equal(t, 15, p.TotalCreated())
	assert.Equal(t, CycleTime{Days: 2 + 8}, p.CycleTime())
}

func TestStepForward_DownstreamWIPLimitCreatesBackpressure(t *testing.T) {
	p := New(BoxSpec{Speed: 3}, BoxSpec{Speed: 1, WIPLimit: util.Ptr(2)})

	wantUpstreamDone := []int{3, 4, 6, 8, 10}
	previous := 0
	for day, want := range wantUpstreamDone {
		p.StepForward()
		boxes := p.Boxes()

		assert.Equal(t, want, boxes[0].InProgress, "day %d upstream done", day)
		assert.LessOrEqual(t, boxes[1].Load(), 2, "day %d downstream load", day)

		transferred := (previous + 3) - boxes[0].InProgress
		if day > 0 {
			assert.LessOrEqual(t, transferred, 2, "day %d transfer must respect the ceiling", day)
		}
		previous = boxes[0].InProgress
	}
	assert.Equal(t, 3, p.CumulativeThroughput())
}

func TestStepForward_FirstBoxWIPLimitCapsAdmission(t *testing.T) {
	p := New(BoxSpec{Speed: 5, WIPLimit: util.Ptr(3)}, BoxSpec{Speed: 0})

	p.StepForward()
	b, _ := p.Box(0)
	assert.Equal(t, 3, b.Load())
	assert.Equal(t, 3, p.TotalCreated())

	// Box 1 takes everything (unbounded), freeing box 0 for the next admission.
	p.StepForward()
	assert.Equal(t, 6, p.TotalCreated())
	b0, _ := p.Box(0)
	b1, _ := p.Box(1)
	assert.Equal(t, 3, b0.Load())
	assert.Equal(t, 3, b1.Queued)
}

func TestStepForward_EmptyPipeline(t *testing.T) {
	p := New()
	for i := 0; i < 3; i++ {
		require.NotPanics(t, p.StepForward)
	}

	assert.Equal(t, 3, p.CurrentDay())
	assert.Equal(t, 0, p.DailyThroughput())
	assert.Equal(t, 0, p.CumulativeThroughput())
	assert.Equal(t, 0, p.TotalWIP())
	assert.Equal(t, NoBottleneck, p.Bottleneck())
	assert.Equal(t, CycleTime{Days: 0}, p.CycleTime())
	assert.Empty(t, p.Boxes())
}

func TestStepForward_ZeroSpeedStallsStage(t *testing.T) {
	p := NewWithSpeeds(2, 0, 4)
	stepN(p, 4)

	boxes := p.Boxes()
	assert.Equal(t, 6, boxes[1].Queued)
	assert.Equal(t, 0, boxes[1].InProgress)
	assert.Equal(t, 0, boxes[2].Load())
	assert.Equal(t, 0, p.CumulativeThroughput())
	assert.Equal(t, 1, p.Bottleneck())
	assert.True(t, p.CycleTime().Unbounded, "a stalled box with queued work has no finite cycle time")
	assert.Equal(t, "∞", p.CycleTime().String())
}

func TestStepForward_ZeroSpeedFirstBoxAdmitsNothing(t *testing.T) {
	p := NewWithSpeeds(0, 3)
	stepN(p, 3)

	assert.Equal(t, 0, p.TotalCreated())
	assert.Equal(t, 0, p.TotalWIP())
	assert.False(t, p.CycleTime().Unbounded, "an empty stalled box contributes nothing")
	assert.Equal(t, 2, p.CycleTime().Days)
}

func TestSetSpeed(t *testing.T) {
	p := NewWithSpeeds(1, 1)

	require.NoError(t, p.SetSpeed(1, 4))
	b, _ := p.Box(1)
	assert.Equal(t, 4, b.Speed)

	err := p.SetSpeed(2, 9)
	require.Error(t, err)
	assert.True(t, errors.IsBoxIndexError(err))

	err = p.SetSpeed(-1, 9)
	assert.True(t, errors.IsBoxIndexError(err))

	err = p.SetSpeed(0, -3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	boxes := p.Boxes()
	assert.Equal(t, 1, boxes[0].Speed, "failed calls must not mutate")
	assert.Equal(t, 4, boxes[1].Speed)
}

func TestSetWIPLimit(t *testing.T) {
	p := NewWithSpeeds(2)

	b, _ := p.Box(0)
	assert.True(t, b.WIPLimit.IsUnbounded())

	require.NoError(t, p.SetWIPLimit(0, 1))
	p.StepForward()
	b, _ = p.Box(0)
	assert.Equal(t, 1, b.Load())

	err := p.SetWIPLimit(1, 5)
	assert.True(t, errors.IsBoxIndexError(err))
	assert.Equal(t, []string{"valid box indexes are 0..0"}, errors.GetAllHints(err))

	require.NoError(t, p.SetWIPLimit(0, Unbounded))
	b, _ = p.Box(0)
	assert.True(t, b.WIPLimit.IsUnbounded())
}

func TestSetWIPLimit_LoweredBelowLoadEvictsNothing(t *testing.T) {
	p := NewWithSpeeds(4, 0)
	stepN(p, 2)
	b, _ := p.Box(1)
	require.Equal(t, 4, b.Queued)

	require.NoError(t, p.SetWIPLimit(1, 2))
	p.StepForward()

	boxes := p.Boxes()
	assert.Equal(t, 4, boxes[1].Queued)
	assert.Equal(t, 8, boxes[0].InProgress, "upstream holds what downstream cannot take")
}

func TestBox_OutOfRange(t *testing.T) {
	p := NewWithSpeeds(1)
	_, err := p.Box(3)
	assert.True(t, errors.IsBoxIndexError(err))
}

func TestCompleted_ReturnsCopy(t *testing.T) {
	p := NewWithSpeeds(1)
	stepN(p, 3)

	completed := p.Completed()
	require.Len(t, completed, 2)
	completed[0].EndDay = 99

	assert.Equal(t, 1, p.Completed()[0].EndDay)
}

func TestSnapshot(t *testing.T) {
	p := NewWithSpeeds(3, 1)

	before := p.Snapshot()
	assert.Equal(t, -1, before.Day)
	assert.Equal(t, 0, before.Elapsed)
	assert.False(t, before.HasBottleneck())
	assert.Equal(t, 2, before.CycleTime.Days)

	stepN(p, 2)
	s := p.Snapshot()
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, 2, s.Elapsed)
	assert.Equal(t, p.Boxes(), s.Boxes)
	assert.Equal(t, p.TotalWIP(), s.TotalWIP)
	assert.Equal(t, p.CycleTime(), s.CycleTime)
	assert.Equal(t, 1, s.Bottleneck)
	assert.True(t, s.HasBottleneck())
	assert.Equal(t, 6, s.TotalCreated)
}

type recordingObserver struct {
	pulled    map[int]int
	admitted  int
	processed map[int]int
}

func (r *recordingObserver) Pulled(_, from, count int)    { r.pulled[from] += count }
func (r *recordingObserver) Admitted(_, count int)        { r.admitted += count }
func (r *recordingObserver) Processed(_, box, count int) { r.processed[box] += count }

func TestObserver(t *testing.T) {
	p := NewWithSpeeds(2, 1)
	obs := &recordingObserver{pulled: map[int]int{}, processed: map[int]int{}}
	p.SetObserver(obs)

	stepN(p, 3)

	assert.Equal(t, 6, obs.admitted)
	assert.Equal(t, 6, obs.processed[0])
	assert.Equal(t, 2, obs.processed[1])
	assert.Equal(t, 4, obs.pulled[0])
	assert.Equal(t, 1, obs.pulled[1])
	assert.Equal(t, p.CumulativeThroughput(), obs.pulled[1])

	p.SetObserver(nil)
	require.NotPanics(t, p.StepForward)
}

// checkQueueOrder verifies ticket IDs ascend through every queue, and that a
// box's done queue only holds tickets older than its inbox.
func checkQueueOrder(t *testing.T, p *Pipeline) {
	t.Helper()
	downstreamMax := -1
	for i := len(p.boxes) - 1; i >= 0; i-- {
		b := p.boxes[i]
		queue := append(append([]Ticket(nil), b.done...), b.inbox...)
		for j := 1; j < len(queue); j++ {
			require.Less(t, queue[j-1].ID, queue[j].ID, "box %d out of FIFO order", i)
		}
		if len(queue) > 0 && downstreamMax >= 0 {
			require.Less(t, downstreamMax, queue[0].ID, "box %d overtook box %d", i, i+1)
		}
		if len(queue) > 0 {
			downstreamMax = queue[len(queue)-1].ID
		}
	}
}

func TestStepForward_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(5)
		specs := make([]BoxSpec, n)
		for i := range specs {
			specs[i].Speed = rng.Intn(5)
			if rng.Intn(2) == 0 {
				specs[i].WIPLimit = util.Ptr(rng.Intn(6))
			}
		}
		p := New(specs...)

		var previousLedger []Ticket
		for step := 0; step < 40; step++ {
			if n > 0 && rng.Intn(4) == 0 {
				require.NoError(t, p.SetSpeed(rng.Intn(n), rng.Intn(5)))
			}
			p.StepForward()

			// Conservation
			require.Equal(t, p.TotalCreated(), p.TotalWIP()+p.CumulativeThroughput(), "trial %d step %d", trial, step)

			// WIP limits
			for _, b := range p.Boxes() {
				require.LessOrEqual(t, b.Load(), int(b.WIPLimit), "trial %d step %d box %d", trial, step, b.Index)
			}

			// Monotonic ledger, never reordered, stamped once
			ledger := p.Completed()
			require.GreaterOrEqual(t, len(ledger), len(previousLedger))
			for j, prev := range previousLedger {
				require.Equal(t, prev, ledger[j], "trial %d step %d ledger entry %d changed", trial, step, j)
			}
			for j, ticket := range ledger {
				require.True(t, ticket.Finished())
				require.GreaterOrEqual(t, ticket.EndDay, ticket.StartDay)
				if j > 0 {
					require.Less(t, ledger[j-1].ID, ticket.ID, "ledger out of FIFO order")
				}
			}
			previousLedger = ledger

			checkQueueOrder(t, p)
			require.Equal(t, step+1, p.CurrentDay())
		}
	}
}
