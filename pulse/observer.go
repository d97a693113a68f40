package pulse

import (
	"go.uber.org/zap"

	"github.com/teranos/fsim/logger"
)

// StepObserver logs every ticket movement inside a step at debug level.
type StepObserver struct {
	log *zap.SugaredLogger
}

// NewStepObserver returns an observer that writes to log.
func NewStepObserver(log *zap.SugaredLogger) *StepObserver {
	return &StepObserver{log: log.Named("step")}
}

func (o *StepObserver) Pulled(day, from, count int) {
	if count == 0 {
		return
	}
	o.log.Debugw("Pulled", logger.FieldDay, day, logger.FieldBox, from, logger.FieldCount, count)
}

func (o *StepObserver) Admitted(day, count int) {
	o.log.Debugw("Admitted", logger.FieldDay, day, logger.FieldCount, count)
}

func (o *StepObserver) Processed(day, box, count int) {
	if count == 0 {
		return
	}
	o.log.Debugw("Processed", logger.FieldDay, day, logger.FieldBox, box, logger.FieldCount, count)
}
