package planner

import (
	"encoding/binary"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/pmehra7/summingbird/internal/logical"
	apperrors "github.com/pmehra7/summingbird/pkg/errors"
)

// Plan is the physical plan of a logical graph: the terminal operator and
// the stages its operators were assigned to. Stage order follows
// construction and carries no meaning.
type Plan struct {
	terminal   logical.Operator
	stages     []*Stage
	owner      map[logical.Operator]*Stage
	upstream   map[*Stage][]*Stage
	downstream map[*Stage][]*Stage
}

// assemble turns the builder output into a Plan: empty placeholders are
// dropped and members are reversed into source-to-sink order.
func assemble(terminal logical.Operator, built []*stageBuilder) *Plan {
	p := &Plan{
		terminal:   terminal,
		owner:      make(map[logical.Operator]*Stage),
		upstream:   make(map[*Stage][]*Stage),
		downstream: make(map[*Stage][]*Stage),
	}

	for _, b := range built {
		if len(b.members) == 0 {
			continue
		}
		members := make([]logical.Operator, len(b.members))
		for i, m := range b.members {
			members[len(b.members)-1-i] = m
		}
		stage := &Stage{id: len(p.stages), kind: b.kind, members: members}
		p.stages = append(p.stages, stage)
		for _, m := range members {
			p.owner[m] = stage
		}
	}

	p.link()
	return p
}

// link derives stage-level edges from member dependencies that cross a
// stage boundary.
func (p *Plan) link() {
	for _, stage := range p.stages {
		seen := make(map[*Stage]struct{})
		for _, m := range stage.members {
			for _, dep := range m.Dependencies() {
				from, ok := p.owner[dep]
				if !ok || from == stage {
					continue
				}
				if _, dup := seen[from]; dup {
					continue
				}
				seen[from] = struct{}{}
				p.upstream[stage] = append(p.upstream[stage], from)
				p.downstream[from] = append(p.downstream[from], stage)
			}
		}
	}
}

// checkSources is a sanity check on assembled plans: every leaf of a well
// formed graph is a Source, so a plan without a Source stage means the
// builder lost part of the graph.
func (p *Plan) checkSources() error {
	if len(p.SourceStages()) > 0 {
		return nil
	}
	name := ""
	if p.terminal != nil {
		name = p.terminal.Name()
	}
	return apperrors.NewInvalidGraphError(name, "plan has no source stage")
}

// Terminal returns the operator the plan was built from.
func (p *Plan) Terminal() logical.Operator { return p.terminal }

// Size returns the number of stages in this Plan.
func (p *Plan) Size() int { return len(p.stages) }

// GetStage returns a particular Stage in this Plan.
func (p *Plan) GetStage(idx int) *Stage { return p.stages[idx] }

// Stages returns all stages of the plan.
func (p *Plan) Stages() []*Stage {
	return append([]*Stage(nil), p.stages...)
}

// StageOf returns the stage owning op.
func (p *Plan) StageOf(op logical.Operator) (*Stage, bool) {
	s, ok := p.owner[op]
	return s, ok
}

// TailStage returns the stage holding the terminal operator.
func (p *Plan) TailStage() *Stage {
	return p.owner[p.terminal]
}

// SourceStages returns the Source-kind stages.
func (p *Plan) SourceStages() []*Stage {
	var out []*Stage
	for _, s := range p.stages {
		if s.kind == KindSource {
			out = append(out, s)
		}
	}
	return out
}

// DependenciesOf returns the stages feeding stage.
func (p *Plan) DependenciesOf(stage *Stage) []*Stage {
	return append([]*Stage(nil), p.upstream[stage]...)
}

// DependantsOf returns the stages consuming stage's output.
func (p *Plan) DependantsOf(stage *Stage) []*Stage {
	return append([]*Stage(nil), p.downstream[stage]...)
}

// Fingerprint combines the stage fingerprints independently of stage order.
func (p *Plan) Fingerprint() uint64 {
	prints := make([]uint64, len(p.stages))
	for i, s := range p.stages {
		prints[i] = s.Fingerprint()
	}
	sort.Slice(prints, func(i, j int) bool { return prints[i] < prints[j] })

	h := xxhash.New()
	var buf [8]byte
	for _, fp := range prints {
		binary.LittleEndian.PutUint64(buf[:], fp)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func (p *Plan) String() string {
	var b strings.Builder
	for i, s := range p.stages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.String())
	}
	return b.String()
}
