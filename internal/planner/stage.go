package planner

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/pmehra7/summingbird/internal/logical"
)

// StageKind tags what a stage does at its boundary.
type StageKind int

const (
	// KindTransform stages hold plain per-record operators.
	KindTransform StageKind = iota
	// KindSource stages read external input.
	KindSource
	// KindAggregate stages end in a keyed accumulation.
	KindAggregate
)

func (k StageKind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindSource:
		return "source"
	case KindAggregate:
		return "aggregate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// prefix is the display prefix of stages of this kind.
func (k StageKind) prefix() string {
	switch k {
	case KindSource:
		return "Source"
	case KindAggregate:
		return "Summer"
	default:
		return "FlatMap"
	}
}

// stageBuilder is a stage under construction. Members are appended while the
// builder walks from sink to source. Once completed it must not change.
type stageBuilder struct {
	kind    StageKind
	members []logical.Operator
	done    bool
}

func newStageBuilder() *stageBuilder {
	return &stageBuilder{kind: KindTransform}
}

func (s *stageBuilder) add(op logical.Operator) {
	if s.done {
		panic(fmt.Sprintf("planner: adding %s to a completed stage", logical.Describe(op)))
	}
	s.members = append(s.members, op)
}

func (s *stageBuilder) convert(kind StageKind) {
	if s.done {
		panic("planner: converting a completed stage")
	}
	s.kind = kind
}

func (s *stageBuilder) contains(op logical.Operator) bool {
	for _, m := range s.members {
		if m == op {
			return true
		}
	}
	return false
}

// Stage is one deployable unit of a Plan: a contiguous run of logical
// operators ordered from source to sink.
type Stage struct {
	id      int
	kind    StageKind
	members []logical.Operator
}

// ID returns the stage's position in its Plan.
func (s *Stage) ID() int { return s.id }

// Kind returns the stage kind.
func (s *Stage) Kind() StageKind { return s.kind }

// Name returns a display name such as "FlatMap-2".
func (s *Stage) Name() string {
	return fmt.Sprintf("%s-%d", s.kind.prefix(), s.id)
}

// Members returns the stage's operators ordered from source to sink.
func (s *Stage) Members() []logical.Operator {
	return append([]logical.Operator(nil), s.members...)
}

// Size returns the number of members.
func (s *Stage) Size() int { return len(s.members) }

// Head returns the most upstream member.
func (s *Stage) Head() logical.Operator { return s.members[0] }

// Tail returns the most downstream member.
func (s *Stage) Tail() logical.Operator { return s.members[len(s.members)-1] }

// Contains reports whether op is a member of the stage.
func (s *Stage) Contains(op logical.Operator) bool {
	for _, m := range s.members {
		if m == op {
			return true
		}
	}
	return false
}

// Fingerprint hashes the kind, the ordered member names and types, and the
// name and type of every member's inputs. Inputs outside the stage are what
// wire it to its upstream stages, so plans that differ only in wiring hash
// differently.
func (s *Stage) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeOp := func(op logical.Operator) {
		binary.LittleEndian.PutUint64(buf[:], uint64(op.Type()))
		_, _ = h.Write(buf[:])
		_, _ = h.WriteString(op.Name())
		_, _ = h.Write([]byte{0})
	}

	binary.LittleEndian.PutUint64(buf[:], uint64(s.kind))
	_, _ = h.Write(buf[:])
	for _, m := range s.members {
		writeOp(m)
		deps := m.Dependencies()
		binary.LittleEndian.PutUint64(buf[:], uint64(len(deps)))
		_, _ = h.Write(buf[:])
		for _, dep := range deps {
			writeOp(dep)
		}
	}
	return h.Sum64()
}

func (s *Stage) String() string {
	names := make([]string, len(s.members))
	for i, m := range s.members {
		names[i] = m.Name()
	}
	return fmt.Sprintf("%s%v", s.Name(), names)
}
