package planner

import "github.com/pmehra7/summingbird/internal/logical"

// opSet is an identity-keyed set of operators.
type opSet map[logical.Operator]struct{}

func (s opSet) add(op logical.Operator) { s[op] = struct{}{} }

func (s opSet) contains(op logical.Operator) bool {
	_, ok := s[op]
	return ok
}

// Dependencies is the result of analysing the graph reachable from a terminal
// operator: every reachable operator and the number of distinct operators
// that depend on it directly.
type Dependencies struct {
	terminal  logical.Operator
	order     []logical.Operator
	reachable opSet
	fanOut    map[logical.Operator]int

	// incomplete lists operators with a nil dependency.
	incomplete []logical.Operator
}

// Analyze walks every operator reachable from terminal, terminal included.
// The graph must be acyclic.
func Analyze(terminal logical.Operator) *Dependencies {
	d := &Dependencies{
		terminal:  terminal,
		reachable: opSet{},
		fanOut:    make(map[logical.Operator]int),
	}
	if terminal == nil {
		return d
	}

	d.reachable.add(terminal)
	edges := make(map[logical.Operator]opSet)
	stack := []logical.Operator{terminal}
	for len(stack) > 0 {
		op := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d.order = append(d.order, op)

		for _, dep := range op.Dependencies() {
			if dep == nil {
				d.incomplete = append(d.incomplete, op)
				continue
			}
			dependants, ok := edges[dep]
			if !ok {
				dependants = opSet{}
				edges[dep] = dependants
			}
			// Merge(x, x) counts once.
			if !dependants.contains(op) {
				dependants.add(op)
				d.fanOut[dep]++
			}
			if !d.reachable.contains(dep) {
				d.reachable.add(dep)
				stack = append(stack, dep)
			}
		}
	}
	return d
}

// Terminal returns the operator the analysis started from.
func (d *Dependencies) Terminal() logical.Operator { return d.terminal }

// All returns every reachable operator in discovery order.
func (d *Dependencies) All() []logical.Operator {
	return append([]logical.Operator(nil), d.order...)
}

// Contains reports whether op is reachable from the terminal.
func (d *Dependencies) Contains(op logical.Operator) bool {
	return d.reachable.contains(op)
}

// FanOut returns the number of distinct direct dependants of op.
func (d *Dependencies) FanOut(op logical.Operator) int {
	return d.fanOut[op]
}

// IsForked reports whether more than one operator depends on op.
func (d *Dependencies) IsForked(op logical.Operator) bool {
	return d.fanOut[op] > 1
}

// Forked returns the operators with a fan-out greater than one, in
// discovery order.
func (d *Dependencies) Forked() []logical.Operator {
	var forked []logical.Operator
	for _, op := range d.order {
		if d.IsForked(op) {
			forked = append(forked, op)
		}
	}
	return forked
}

func (d *Dependencies) forkedSet() opSet {
	set := opSet{}
	for op, n := range d.fanOut {
		if n > 1 {
			set.add(op)
		}
	}
	return set
}
