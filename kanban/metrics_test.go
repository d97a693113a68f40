package kanban

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCycleTime(t *testing.T) {
	tests := []struct {
		name  string
		boxes []BoxState
		want  CycleTime
	}{
		{"no boxes", nil, CycleTime{Days: 0}},
		{"empty queues", []BoxState{{Speed: 2}, {Speed: 1}}, CycleTime{Days: 2}},
		{"exact division", []BoxState{{Speed: 2, Queued: 4}}, CycleTime{Days: 1 + 2}},
		{"rounds up", []BoxState{{Speed: 3, Queued: 4}, {Speed: 1, Queued: 1}}, CycleTime{Days: 2 + 2 + 1}},
		{"in progress does not count", []BoxState{{Speed: 1, InProgress: 9}}, CycleTime{Days: 1}},
		{"stalled empty box", []BoxState{{Speed: 0}, {Speed: 1, Queued: 2}}, CycleTime{Days: 2 + 2}},
		{"stalled box with queue", []BoxState{{Speed: 2, Queued: 2}, {Speed: 0, Queued: 1}}, CycleTime{Unbounded: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeCycleTime(tt.boxes))
		})
	}
}

func TestBottleneckIndex(t *testing.T) {
	assert.Equal(t, NoBottleneck, BottleneckIndex(nil))
	assert.Equal(t, NoBottleneck, BottleneckIndex([]BoxState{{InProgress: 4}, {}}))
	assert.Equal(t, 0, BottleneckIndex([]BoxState{{Queued: 1}, {InProgress: 3}}))
	assert.Equal(t, 2, BottleneckIndex([]BoxState{{Queued: 5}, {}, {Queued: 1}}))
}

func TestTotalWIP(t *testing.T) {
	assert.Equal(t, 0, TotalWIP(nil))
	assert.Equal(t, 10, TotalWIP([]BoxState{{Queued: 1, InProgress: 2}, {Queued: 3, InProgress: 4}}))
}

func TestAverageLeadTime(t *testing.T) {
	_, ok := AverageLeadTime(nil)
	assert.False(t, ok)

	avg, ok := AverageLeadTime([]Ticket{
		{StartDay: 0, EndDay: 2},
		{StartDay: 1, EndDay: 2},
		{StartDay: 3, EndDay: Unfinished},
	})
	assert.True(t, ok)
	assert.InDelta(t, 1.5, avg, 1e-9)
}

func TestCycleTime_String(t *testing.T) {
	assert.Equal(t, "7", CycleTime{Days: 7}.String())
	assert.Equal(t, "∞", CycleTime{Unbounded: true}.String())
}
