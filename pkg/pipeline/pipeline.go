// Package pipeline wires the loader, the engine and the renderers into the
// two report runs.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/user/vascope/pkg/logger"
)

// Progress receives short status lines while a pipeline runs. It may be nil.
type Progress func(string)

func (p Progress) report(msg string) {
	if p != nil {
		p(msg)
	}
}

// Pipeline is a single report run
type Pipeline interface {
	Name() string
	Description() string
	Execute(ctx context.Context, progress Progress) (Result, error)
}

// Result is what a pipeline run produced
type Result interface {
	RunID() string
	OutputPath() string
}

type run struct {
	id  string
	log *logrus.Entry
}

func newRun(name string) run {
	id := uuid.NewString()
	return run{id: id, log: logger.WithRun(id).WithField("pipeline", name)}
}
