// Package render writes physical plans as styled text, JSON or YAML.
package render

import (
	"fmt"

	"github.com/pmehra7/summingbird/internal/logical"
	"github.com/pmehra7/summingbird/internal/planner"
)

// IDResolver maps an operator back to the document id it was built from.
type IDResolver func(op logical.Operator) (string, bool)

// Document is the serialisable form of a plan shared by every output format.
type Document struct {
	Version     string     `json:"version" yaml:"version"`
	Name        string     `json:"name" yaml:"name"`
	Terminal    string     `json:"terminal" yaml:"terminal"`
	Fingerprint string     `json:"fingerprint" yaml:"fingerprint"`
	StageCount  int        `json:"stage_count" yaml:"stage_count"`
	Stages      []StageDoc `json:"stages" yaml:"stages"`
	Unreachable []string   `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`
}

// StageDoc describes one stage. Members run from source to sink.
type StageDoc struct {
	ID        int         `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Kind      string      `json:"kind" yaml:"kind"`
	Members   []MemberDoc `json:"members" yaml:"members"`
	DependsOn []string    `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Feeds     []string    `json:"feeds,omitempty" yaml:"feeds,omitempty"`
}

// MemberDoc describes one operator of a stage.
type MemberDoc struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Store string `json:"store,omitempty" yaml:"store,omitempty"`
}

// NewDocument builds the payload for plan. ids may be nil.
func NewDocument(name string, plan *planner.Plan, ids IDResolver, unreachable []string) Document {
	doc := Document{
		Version:     "1.0",
		Name:        name,
		Fingerprint: fmt.Sprintf("%016x", plan.Fingerprint()),
		StageCount:  plan.Size(),
		Stages:      make([]StageDoc, 0, plan.Size()),
		Unreachable: append([]string(nil), unreachable...),
	}
	if terminal := plan.Terminal(); terminal != nil {
		doc.Terminal = memberDoc(terminal, ids).label()
	}

	for _, stage := range plan.Stages() {
		sd := StageDoc{
			ID:   stage.ID(),
			Name: stage.Name(),
			Kind: stage.Kind().String(),
		}
		for _, m := range stage.Members() {
			sd.Members = append(sd.Members, memberDoc(m, ids))
		}
		for _, up := range plan.DependenciesOf(stage) {
			sd.DependsOn = append(sd.DependsOn, up.Name())
		}
		for _, down := range plan.DependantsOf(stage) {
			sd.Feeds = append(sd.Feeds, down.Name())
		}
		doc.Stages = append(doc.Stages, sd)
	}
	return doc
}

func memberDoc(op logical.Operator, ids IDResolver) MemberDoc {
	md := MemberDoc{Name: op.Name(), Type: op.Type().String()}
	if ids != nil {
		if id, ok := ids(op); ok {
			md.ID = id
		}
	}

	switch o := op.(type) {
	case *logical.Passthrough:
		md.Kind = string(o.Kind)
	case *logical.Transform:
		md.Kind = string(o.Kind)
		md.Store = o.Store
	case *logical.Aggregate:
		md.Store = o.Store
	}
	return md
}

// label is the id when known, the display name otherwise.
func (m MemberDoc) label() string {
	if m.ID != "" {
		return m.ID
	}
	return m.Name
}
