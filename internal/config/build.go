package config

import (
	"github.com/pmehra7/summingbird/internal/logical"
)

// Graph is a topology materialised into logical operators. Each id maps to
// exactly one operator, so operators sharing an input id share the input.
type Graph struct {
	Terminal logical.Operator
	ByID     map[string]logical.Operator
	// Unreachable lists, in document order, operators the terminal does not
	// depend on. They are not materialised.
	Unreachable []string

	ids map[logical.Operator]string
}

// IDOf returns the document id op was built from.
func (g *Graph) IDOf(op logical.Operator) (string, bool) {
	id, ok := g.ids[op]
	return id, ok
}

// Build validates topo and materialises the operators reachable from its
// terminal.
func Build(topo *Topology) (*Graph, error) {
	if err := ValidateTopology(topo); err != nil {
		return nil, err
	}

	specs := make(map[string]OperatorSpec, len(topo.Operators))
	for _, op := range topo.Operators {
		specs[op.ID] = op
	}

	g := &Graph{
		ByID: make(map[string]logical.Operator),
		ids:  make(map[logical.Operator]string),
	}

	// Post-order walk: an operator is built once all of its inputs are.
	stack := []string{topo.Terminal}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		if _, done := g.ByID[id]; done {
			stack = stack[:len(stack)-1]
			continue
		}

		spec := specs[id]
		pending := false
		for _, in := range spec.Inputs() {
			if _, done := g.ByID[in]; !done {
				stack = append(stack, in)
				pending = true
			}
		}
		if pending {
			continue
		}

		stack = stack[:len(stack)-1]
		op := materialise(spec, g.ByID)
		g.ByID[id] = op
		g.ids[op] = id
	}

	g.Terminal = g.ByID[topo.Terminal]
	for _, op := range topo.Operators {
		if _, ok := g.ByID[op.ID]; !ok {
			g.Unreachable = append(g.Unreachable, op.ID)
		}
	}
	return g, nil
}

func materialise(spec OperatorSpec, built map[string]logical.Operator) logical.Operator {
	name := spec.DisplayName()
	switch spec.Type {
	case TypeSource:
		return logical.NewSource(name)
	case TypePassthrough:
		kind := logical.PassthroughKind(spec.Kind)
		if kind == "" {
			kind = logical.PassthroughName
		}
		return logical.NewPassthrough(name, kind, built[spec.Input])
	case TypeTransform:
		kind := logical.TransformKind(spec.Kind)
		if kind == "" {
			kind = logical.TransformFlatMap
		}
		t := logical.NewTransform(name, kind, built[spec.Input])
		t.Store = spec.Store
		return t
	case TypeMerge:
		return logical.NewMerge(name, built[spec.Left], built[spec.Right])
	default:
		return logical.NewAggregate(name, spec.Store, built[spec.Input])
	}
}
