// Package display renders simulation state for the console and encodes it
// as JSON, YAML or TOML for other tools.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/fsim/kanban"
	"github.com/teranos/fsim/sym"
	"github.com/teranos/fsim/trace"
)

// LedgerTail is how many of the most recent completed tickets RenderLedger lists
const LedgerTail = 10

// RenderDay writes the state after one simulated day: every box with its
// queue and finished work, then the day's metrics.
func RenderDay(w io.Writer, s kanban.Snapshot) {
	fmt.Fprintln(w, pterm.LightCyan(fmt.Sprintf("*** DAY %d ***", s.Day)))
	fmt.Fprintln(w, "system state:")
	for _, b := range s.Boxes {
		header := fmt.Sprintf("box %d (speed: %d", b.Index, b.Speed)
		if !b.WIPLimit.IsUnbounded() {
			header += fmt.Sprintf(", wip limit: %d", b.WIPLimit)
		}
		fmt.Fprintln(w, header+")")
		fmt.Fprintf(w, "\t queue: %d\n", b.Queued)
		fmt.Fprintf(w, "\t in progress: %d\n\n", b.InProgress)
	}
	RenderMetrics(w, s)
}

// RenderMetrics writes the metric lines of a snapshot.
func RenderMetrics(w io.Writer, s kanban.Snapshot) {
	fmt.Fprintf(w, "daily throughput: %d\n", s.DailyThroughput)
	fmt.Fprintf(w, "cumulated throughput: %d\n", s.Cumulative)
	fmt.Fprintf(w, "cycle time: %s\n", s.CycleTime)
	if s.HasBottleneck() {
		fmt.Fprintln(w, pterm.Yellow(fmt.Sprintf("Bottleneck -> box %d", s.Bottleneck)))
	} else {
		fmt.Fprintln(w, pterm.Green("No bottleneck"))
	}
}

// RenderTable writes one row per recorded day.
func RenderTable(w io.Writer, days []kanban.Snapshot) error {
	data := pterm.TableData{{"Day", "Daily", "Cumulative", "Cycle time", "WIP", "Bottleneck"}}
	for _, d := range days {
		bottleneck := "-"
		if d.HasBottleneck() {
			bottleneck = "box " + strconv.Itoa(d.Bottleneck)
		}
		data = append(data, []string{
			strconv.Itoa(d.Day),
			strconv.Itoa(d.DailyThroughput),
			strconv.Itoa(d.Cumulative),
			d.CycleTime.String(),
			strconv.Itoa(d.TotalWIP),
			bottleneck,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// RenderSummary writes the aggregate of a finished run.
func RenderSummary(w io.Writer, s trace.Summary) {
	fmt.Fprintf(w, "%s run %s: %d days\n", sym.Pulse, s.RunID, s.Days)
	fmt.Fprintf(w, "  completed: %d of %d created (%d still in the pipeline, peak %d)\n",
		s.Completed, s.Created, s.FinalWIP, s.PeakWIP)
	fmt.Fprintf(w, "  average throughput: %.2f per day\n", s.AverageThroughput)
	if s.HasLeadTime {
		fmt.Fprintf(w, "  average lead time: %.2f days\n", s.AverageLeadTime)
	} else {
		fmt.Fprintln(w, "  average lead time: n/a")
	}
	if len(s.BottleneckDays) == 0 {
		fmt.Fprintln(w, "  bottleneck: none")
		return
	}
	parts := make([]string, len(s.BottleneckDays))
	for i, b := range s.BottleneckDays {
		parts[i] = fmt.Sprintf("box %d (%d days)", b.Box, b.Days)
	}
	fmt.Fprintf(w, "  bottleneck: %s\n", strings.Join(parts, ", "))
}

// RenderLedger writes the completed-ticket count, the average lead time and
// the most recent tickets to leave the pipeline.
func RenderLedger(w io.Writer, completed []kanban.Ticket) {
	fmt.Fprintf(w, "%s completed tickets: %d\n", sym.Ledger, len(completed))
	if avg, ok := kanban.AverageLeadTime(completed); ok {
		fmt.Fprintf(w, "average lead time: %.2f days\n", avg)
	}

	tail := completed
	if len(tail) > LedgerTail {
		tail = tail[len(tail)-LedgerTail:]
	}
	for _, t := range tail {
		lead, _ := t.LeadTime()
		fmt.Fprintf(w, "  #%d  day %d %s day %d  (%d days)\n", t.ID, t.StartDay, pterm.Gray("→"), t.EndDay, lead)
	}
}

// RenderCommands lists the console commands in palette order.
func RenderCommands(w io.Writer) {
	for _, glyph := range sym.PaletteOrder {
		cmd := sym.SymbolToCommand[glyph]
		fmt.Fprintf(w, "%s %s: %s\n", glyph, cmd, sym.CommandDescriptions[cmd])
	}
}
