package trace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fsim/kanban"
)

func TestRecorder_RunID(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()

	_, err := uuid.Parse(a.RunID())
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestRecorder_Summarize(t *testing.T) {
	p := kanban.NewWithSpeeds(3, 1)
	r := NewRecorder()
	for i := 0; i < 5; i++ {
		p.StepForward()
		r.Record(p.Snapshot())
	}

	require.Equal(t, 5, r.Len())
	s := r.Summarize(p.Completed())

	assert.Equal(t, r.RunID(), s.RunID)
	assert.Equal(t, 5, s.Days)
	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 15, s.Created)
	assert.Equal(t, 12, s.FinalWIP)
	assert.Equal(t, 12, s.PeakWIP)
	assert.InDelta(t, 0.6, s.AverageThroughput, 1e-9)
	assert.True(t, s.HasLeadTime)
	// Tickets admitted day 0 leave on days 2, 3 and 4.
	assert.InDelta(t, 3.0, s.AverageLeadTime, 1e-9)
	assert.Equal(t, []BottleneckCount{{Box: 1, Days: 4}}, s.BottleneckDays)
}

func TestRecorder_EmptyRun(t *testing.T) {
	r := NewRecorder()
	s := r.Summarize(nil)

	assert.Equal(t, 0, s.Days)
	assert.False(t, s.HasLeadTime)
	assert.Zero(t, s.AverageThroughput)
	assert.Empty(t, s.BottleneckDays)
}

func TestRecorder_DaysIsCopy(t *testing.T) {
	r := NewRecorder()
	r.Record(kanban.Snapshot{Day: 0})

	days := r.Days()
	days[0].Day = 42
	assert.Equal(t, 0, r.Days()[0].Day)
}
