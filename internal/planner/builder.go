package planner

import (
	"fmt"

	"github.com/pmehra7/summingbird/internal/logger"
	"github.com/pmehra7/summingbird/internal/logical"
)

// frame is a pending visit: plan op into stage.
type frame struct {
	op    logical.Operator
	stage *stageBuilder
}

// traversal is the state of one planning walk. The work stack replaces
// recursion; siblings are pushed in reverse so they pop in depth-first order.
type traversal struct {
	forked    opSet
	completed []*stageBuilder
	visited   opSet
	stack     []frame
	log       *logger.Logger
}

// buildStages assigns every operator reachable from terminal to a stage. The
// returned stages are in completion order, may include empty placeholders,
// and hold members in sink-to-source order.
func buildStages(terminal logical.Operator, forked opSet, log *logger.Logger) ([]*stageBuilder, opSet, error) {
	t := &traversal{
		forked:  forked,
		visited: opSet{},
		log:     log,
	}
	t.push(terminal, newStageBuilder())

	for len(t.stack) > 0 {
		f := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		if err := t.visit(f.op, f.stage); err != nil {
			return nil, nil, err
		}
	}
	return t.completed, t.visited, nil
}

func (t *traversal) push(op logical.Operator, stage *stageBuilder) {
	t.stack = append(t.stack, frame{op: op, stage: stage})
}

// complete appends stage to the completed list unless it is already there.
func (t *traversal) complete(stage *stageBuilder) {
	for _, s := range t.completed {
		if s == stage {
			return
		}
	}
	stage.done = true
	t.completed = append(t.completed, stage)
}

func (t *traversal) visit(op logical.Operator, stage *stageBuilder) error {
	if t.visited.contains(op) {
		// Shared ancestor: already planned from another path.
		t.complete(stage)
		return nil
	}

	stage.add(op)
	t.visited.add(op)

	switch o := op.(type) {
	case *logical.Source:
		stage.convert(KindSource)
		t.complete(stage)
	case *logical.Aggregate:
		stage.convert(KindAggregate)
		t.complete(stage)
		t.push(o.Input, newStageBuilder())
	case *logical.Passthrough:
		t.maybeSplit(op, o.Input, stage)
	case *logical.Transform:
		t.maybeSplit(op, o.Input, stage)
	case *logical.Merge:
		if o.Left == o.Right {
			return selfMergeError(o)
		}
		return t.mergeInto(o, stage)
	default:
		panic(fmt.Sprintf("planner: unknown operator %T", op))
	}
	return nil
}

// maybeSplit decides whether dep continues current's stage or starts a new one.
func (t *traversal) maybeSplit(current, dep logical.Operator, stage *stageBuilder) {
	if t.shouldSplit(current, dep, stage) {
		if t.log.DebugEnabled() {
			t.log.WithFields(map[string]any{
				"operator":   logical.Describe(current),
				"dependency": logical.Describe(dep),
			}).Debug("stage split")
		}
		t.complete(stage)
		t.push(dep, newStageBuilder())
		return
	}
	t.push(dep, stage)
}

func (t *traversal) shouldSplit(current, dep logical.Operator, stage *stageBuilder) bool {
	if t.forked.contains(dep) {
		return true
	}
	// Only the first stage has been completed: keep a bare source chain out
	// of the first transform stage.
	if stage.kind == KindTransform && len(t.completed) == 1 && passthroughChainToSource(dep) {
		return true
	}
	_, isTransform := current.(*logical.Transform)
	return isTransform && passthroughChainToSource(dep)
}

// passthroughChainToSource reports whether op's whole lineage is passthrough
// wrappers ending at a Source.
func passthroughChainToSource(op logical.Operator) bool {
	for {
		switch o := op.(type) {
		case *logical.Source:
			return true
		case *logical.Passthrough:
			op = o.Input
		default:
			return false
		}
	}
}

// mergeInto places the whole merge chain under m into stage and starts a new
// stage for every input of the chain.
func (t *traversal) mergeInto(m *logical.Merge, stage *stageBuilder) error {
	group, err := collapseMerges(m, t.forked)
	if err != nil {
		return err
	}

	for _, node := range group.merges {
		if !stage.contains(node) {
			stage.add(node)
		}
		t.visited.add(node)
	}
	t.complete(stage)

	if t.log.DebugEnabled() {
		t.log.WithFields(map[string]any{
			"operator": logical.Describe(m),
			"merges":   len(group.merges),
			"inputs":   len(group.leaves),
		}).Debug("merge chain collapsed")
	}

	for i := len(group.leaves) - 1; i >= 0; i-- {
		t.push(group.leaves[i], newStageBuilder())
	}
	return nil
}
