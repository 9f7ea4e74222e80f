// Package planner turns a logical stream graph into a physical plan of
// stages.
//
// Planning runs in three steps:
//  1. Analyze
//     Every operator reachable from the terminal is found and its fan-out
//     counted. Operators with more than one dependant are forked and always
//     begin their own stage.
//  2. Build
//     A single depth-first walk from the terminal toward the sources assigns
//     each operator to exactly one stage, splitting at aggregates, forked
//     operators and source-wrapper chains, and collapsing chained merges
//     into one stage.
//  3. Assemble
//     Empty placeholder stages are dropped and members are put in
//     source-to-sink order.
package planner

import (
	"github.com/pmehra7/summingbird/internal/logger"
	"github.com/pmehra7/summingbird/internal/logical"
	apperrors "github.com/pmehra7/summingbird/pkg/errors"
)

// Planner builds plans. The zero value is ready to use and does not log.
// A Planner holds no state between calls.
type Planner struct {
	log *logger.Logger
}

// New creates a Planner logging stage decisions to log at debug level.
func New(log *logger.Logger) *Planner {
	return &Planner{log: log}
}

// Build plans terminal with a non-logging Planner.
func Build(terminal logical.Operator) (*Plan, error) {
	return (&Planner{}).Plan(terminal)
}

// Plan converts the graph ending at terminal into a physical plan. It
// returns an *errors.InvalidGraphError when no valid plan exists. The graph
// must be acyclic.
func (p *Planner) Plan(terminal logical.Operator) (*Plan, error) {
	if terminal == nil {
		return nil, apperrors.NewInvalidGraphError("", "terminal operator is nil")
	}

	deps := Analyze(terminal)
	if len(deps.incomplete) > 0 {
		return nil, apperrors.NewInvalidGraphError(deps.incomplete[0].Name(), "operator has a nil input")
	}

	built, visited, err := buildStages(terminal, deps.forkedSet(), p.log)
	if err != nil {
		p.log.Error(err, "planning failed")
		return nil, err
	}

	plan := assemble(terminal, built)
	if err := plan.checkSources(); err != nil {
		return nil, err
	}

	if p.log.DebugEnabled() {
		p.log.WithFields(map[string]any{
			"terminal":  logical.Describe(terminal),
			"operators": len(visited),
			"forked":    len(deps.Forked()),
			"stages":    plan.Size(),
			"dropped":   len(built) - plan.Size(),
		}).Debug("plan assembled")
	}
	return plan, nil
}
