// Package kanban is the flow simulation engine: a pipeline of boxes advancing
// one day per step, with derived throughput, cycle time, WIP and bottleneck metrics.
//
// The engine is single-threaded and performs no I/O. Callers that drive a
// pipeline from several goroutines must serialize access themselves.
package kanban

// Unfinished is the EndDay of a ticket that has not left the last box.
const Unfinished = -1

// Ticket is one unit of work. Tickets are values moved between queues;
// a ticket is never held by two queues at once.
type Ticket struct {
	ID       int `json:"id" yaml:"id" toml:"id"`
	StartDay int `json:"start_day" yaml:"start_day" toml:"start_day"`
	EndDay   int `json:"end_day" yaml:"end_day" toml:"end_day"`
}

func newTicket(id, day int) Ticket {
	return Ticket{ID: id, StartDay: day, EndDay: Unfinished}
}

// Finished reports whether the ticket has exited the pipeline.
func (t Ticket) Finished() bool {
	return t.EndDay != Unfinished
}

// LeadTime returns EndDay-StartDay for finished tickets.
func (t Ticket) LeadTime() (int, bool) {
	if !t.Finished() {
		return 0, false
	}
	return t.EndDay - t.StartDay, true
}

// finish stamps the exit day. A ticket is finished at most once.
func (t *Ticket) finish(day int) {
	if t.Finished() {
		return
	}
	t.EndDay = day
}

// takeFront removes the first n tickets of q and returns them with the remainder.
// n is clamped to len(q).
func takeFront(q []Ticket, n int) (taken, rest []Ticket) {
	if n > len(q) {
		n = len(q)
	}
	if n <= 0 {
		return nil, q
	}
	taken = append([]Ticket(nil), q[:n]...)
	rest = append(q[:0], q[n:]...)
	return taken, rest
}
