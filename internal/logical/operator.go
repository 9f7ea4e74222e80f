// Package logical defines the operators of a logical stream graph.
//
// Operators are compared by identity: two operators are the same only when
// they are the same pointer. Building two structurally identical operators
// yields two distinct nodes in the graph.
package logical

import "fmt"

// Type enumerates the operator variants the planner distinguishes.
type Type int

const (
	TypeSource Type = iota
	TypePassthrough
	TypeTransform
	TypeMerge
	TypeAggregate
)

func (t Type) String() string {
	switch t {
	case TypeSource:
		return "source"
	case TypePassthrough:
		return "passthrough"
	case TypeTransform:
		return "transform"
	case TypeMerge:
		return "merge"
	case TypeAggregate:
		return "aggregate"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// PassthroughKind names the wrapper a Passthrough stands for. The planner
// treats every kind the same way.
type PassthroughKind string

const (
	PassthroughName        PassthroughKind = "name"
	PassthroughIdentityKey PassthroughKind = "identity_key"
	PassthroughOptionMap   PassthroughKind = "option_map"
)

// TransformKind names the computation a Transform stands for. The planner
// treats every kind the same way.
type TransformKind string

const (
	TransformFlatMap  TransformKind = "flat_map"
	TransformWrite    TransformKind = "write"
	TransformLeftJoin TransformKind = "left_join"
)

// Operator is a node of the logical graph. The set of implementations is
// closed: Source, Passthrough, Transform, Merge and Aggregate.
type Operator interface {
	// Name is a display label. It does not identify the operator.
	Name() string
	Type() Type
	// Dependencies returns the direct upstream operators, left before right.
	Dependencies() []Operator

	operator()
}

// Source represents external input. It has no dependency.
type Source struct {
	Label string
}

// Passthrough wraps its input without introducing stage-worthy semantics.
type Passthrough struct {
	Label string
	Kind  PassthroughKind
	Input Operator
}

// Transform is a computational or side-effecting step. Store names the
// external store or service used by write and left_join kinds.
type Transform struct {
	Label string
	Kind  TransformKind
	Store string
	Input Operator
}

// Merge is the union of two distinct upstream operators.
type Merge struct {
	Label string
	Left  Operator
	Right Operator
}

// Aggregate is a stateful keyed accumulation into Store.
type Aggregate struct {
	Label string
	Store string
	Input Operator
}

// NewSource creates a Source.
func NewSource(name string) *Source {
	return &Source{Label: name}
}

// NewPassthrough creates a Passthrough of the given kind over input.
func NewPassthrough(name string, kind PassthroughKind, input Operator) *Passthrough {
	return &Passthrough{Label: name, Kind: kind, Input: input}
}

// NewTransform creates a Transform of the given kind over input.
func NewTransform(name string, kind TransformKind, input Operator) *Transform {
	return &Transform{Label: name, Kind: kind, Input: input}
}

// NewMerge creates a Merge of left and right. Passing the same operator
// twice is accepted here and rejected by the planner.
func NewMerge(name string, left, right Operator) *Merge {
	return &Merge{Label: name, Left: left, Right: right}
}

// NewAggregate creates an Aggregate over input.
func NewAggregate(name, store string, input Operator) *Aggregate {
	return &Aggregate{Label: name, Store: store, Input: input}
}

func (s *Source) Name() string             { return s.Label }
func (s *Source) Type() Type               { return TypeSource }
func (s *Source) Dependencies() []Operator { return nil }
func (*Source) operator()                  {}

func (p *Passthrough) Name() string             { return p.Label }
func (p *Passthrough) Type() Type               { return TypePassthrough }
func (p *Passthrough) Dependencies() []Operator { return []Operator{p.Input} }
func (*Passthrough) operator()                  {}

func (t *Transform) Name() string             { return t.Label }
func (t *Transform) Type() Type               { return TypeTransform }
func (t *Transform) Dependencies() []Operator { return []Operator{t.Input} }
func (*Transform) operator()                  {}

func (m *Merge) Name() string             { return m.Label }
func (m *Merge) Type() Type               { return TypeMerge }
func (m *Merge) Dependencies() []Operator { return []Operator{m.Left, m.Right} }
func (*Merge) operator()                  {}

func (a *Aggregate) Name() string             { return a.Label }
func (a *Aggregate) Type() Type               { return TypeAggregate }
func (a *Aggregate) Dependencies() []Operator { return []Operator{a.Input} }
func (*Aggregate) operator()                  {}

// Describe renders an operator as "type(name)" for logs and errors.
func Describe(op Operator) string {
	if op == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", op.Type(), op.Name())
}
