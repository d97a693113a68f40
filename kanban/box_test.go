package kanban

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func ids(tickets []Ticket) []int {
	out := make([]int, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}

func TestBox_ProcessMovesUpToSpeedInOrder(t *testing.T) {
	b := NewBox(2)
	b.admit([]Ticket{newTicket(1, 0), newTicket(2, 0), newTicket(3, 0)})

	assert.Equal(t, 2, b.Process())
	assert.Equal(t, []int{1, 2}, ids(b.done))
	assert.Equal(t, []int{3}, ids(b.inbox))

	assert.Equal(t, 1, b.Process(), "fewer than speed queued: process them all")
	assert.Equal(t, []int{1, 2, 3}, ids(b.done))
	assert.Equal(t, 0, b.QueuedCount())

	assert.Equal(t, 0, b.Process())
}

func TestBox_ZeroSpeedProcessesNothing(t *testing.T) {
	b := NewBox(0)
	b.admit([]Ticket{newTicket(1, 0)})

	assert.Equal(t, 0, b.Process())
	assert.Equal(t, 1, b.QueuedCount())
	assert.Equal(t, 0, b.DoneCount())
}

func TestBox_Room(t *testing.T) {
	b := NewBox(1)
	assert.Equal(t, Unbounded, b.Room())

	b.SetWIPLimit(2)
	b.admit([]Ticket{newTicket(1, 0)})
	assert.Equal(t, 1, b.Room())

	b.admit([]Ticket{newTicket(2, 0), newTicket(3, 0)})
	assert.Equal(t, 0, b.Room(), "room never goes negative")
}

func TestBox_TakeDone(t *testing.T) {
	b := NewBox(3)
	b.admit([]Ticket{newTicket(1, 0), newTicket(2, 0), newTicket(3, 0)})
	b.Process()

	taken := b.takeDone(2)
	assert.Equal(t, []int{1, 2}, ids(taken))
	assert.Equal(t, []int{3}, ids(b.done))

	taken[0].ID = 100
	assert.Equal(t, []int{3}, ids(b.done), "taken tickets are not aliased")

	assert.Empty(t, b.takeDone(0))
	assert.Equal(t, []int{3}, ids(b.takeDone(10)))
}

func TestTicket_FinishOnce(t *testing.T) {
	ticket := newTicket(7, 2)
	_, ok := ticket.LeadTime()
	assert.False(t, ok)

	ticket.finish(5)
	ticket.finish(9)

	assert.Equal(t, 5, ticket.EndDay)
	lt, ok := ticket.LeadTime()
	require.True(t, ok)
	assert.Equal(t, 3, lt)
}

func TestLimit_Encoding(t *testing.T) {
	type wrapper struct {
		Limit Limit `json:"limit" yaml:"limit"`
	}

	data, err := json.Marshal(wrapper{Limit(Unbounded)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":"none"}`, string(data))

	data, err = json.Marshal(wrapper{Limit(2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":2}`, string(data))

	out, err := yaml.Marshal(wrapper{Limit(Unbounded)})
	require.NoError(t, err)
	assert.Equal(t, "limit: none\n", string(out))

	out, err = yaml.Marshal(wrapper{Limit(4)})
	require.NoError(t, err)
	assert.Equal(t, "limit: 4\n", string(out))

	var back wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"limit":"none"}`), &back))
	assert.True(t, back.Limit.IsUnbounded())
	require.NoError(t, json.Unmarshal([]byte(`{"limit":7}`), &back))
	assert.Equal(t, Limit(7), back.Limit)
	assert.Error(t, json.Unmarshal([]byte(`{"limit":"seven"}`), &back))

	assert.Equal(t, "∞", Limit(Unbounded).String())
	assert.Equal(t, "3", Limit(3).String())
}
