// Package config decodes topology documents: YAML descriptions of a logical
// stream graph that can be validated and materialised into operators.
package config

// Operator types accepted in a topology document.
const (
	TypeSource      = "source"
	TypePassthrough = "passthrough"
	TypeTransform   = "transform"
	TypeMerge       = "merge"
	TypeAggregate   = "aggregate"
)

// Topology represents a full topology document.
type Topology struct {
	Version     string         `yaml:"version" validate:"required,semver"`
	Name        string         `yaml:"name" validate:"required,min=1,max=100"`
	Description string         `yaml:"description,omitempty"`
	Terminal    string         `yaml:"terminal" validate:"required,operator_id"`
	Operators   []OperatorSpec `yaml:"operators" validate:"required,min=1,dive"`
}

// OperatorSpec describes one operator of the graph. Which of the reference
// fields apply depends on Type.
type OperatorSpec struct {
	ID    string `yaml:"id" validate:"required,operator_id"`
	Type  string `yaml:"type" validate:"required,oneof=source passthrough transform merge aggregate"`
	Name  string `yaml:"name,omitempty" validate:"omitempty,max=100"`
	Kind  string `yaml:"kind,omitempty"`
	Input string `yaml:"input,omitempty" validate:"omitempty,operator_id"`
	Left  string `yaml:"left,omitempty" validate:"omitempty,operator_id"`
	Right string `yaml:"right,omitempty" validate:"omitempty,operator_id"`
	Store string `yaml:"store,omitempty" validate:"omitempty,max=100"`
}

// DisplayName returns Name, or ID when no name is set.
func (o OperatorSpec) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.ID
}

// Inputs returns the ids this operator reads from, left before right.
func (o OperatorSpec) Inputs() []string {
	var inputs []string
	for _, ref := range []string{o.Input, o.Left, o.Right} {
		if ref != "" {
			inputs = append(inputs, ref)
		}
	}
	return inputs
}

// Operator returns the operator definition with the given id.
func (t *Topology) Operator(id string) (OperatorSpec, bool) {
	if t == nil {
		return OperatorSpec{}, false
	}
	for _, op := range t.Operators {
		if op.ID == id {
			return op, true
		}
	}
	return OperatorSpec{}, false
}
