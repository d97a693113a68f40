package repl

import (
	"context"
	"fmt"

	"github.com/teranos/fsim/kanban"
)

// MaxBoxes caps the box count accepted by Setup.
const MaxBoxes = 100

// Setup asks for the number of boxes and the speed of each. All boxes start
// with an unbounded WIP limit.
func Setup(ctx context.Context, p *Prompter) ([]kanban.BoxSpec, error) {
	var n int
	for {
		v, err := p.Int(ctx, "Number of boxes: ")
		if err != nil {
			return nil, err
		}
		if v <= MaxBoxes {
			n = v
			break
		}
		fmt.Fprintf(p.out, "A pipeline holds at most %d boxes\n", MaxBoxes)
	}
	fmt.Fprintln(p.out)

	specs := make([]kanban.BoxSpec, n)
	for i := range specs {
		speed, err := p.Int(ctx, fmt.Sprintf("Speed for box %d: ", i))
		if err != nil {
			return nil, err
		}
		specs[i].Speed = speed
	}
	return specs, nil
}
