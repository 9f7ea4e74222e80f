package planner

import (
	"github.com/pmehra7/summingbird/internal/logical"
	apperrors "github.com/pmehra7/summingbird/pkg/errors"
)

// mergeGroup is a chain of merges planned as one N-way fan-in.
type mergeGroup struct {
	// merges holds the merge operators of the chain, root first, then the
	// left subtree before the right one.
	merges []logical.Operator
	// leaves are the inputs of the chain in left-to-right order.
	leaves []logical.Operator
}

// collapseMerges flattens directly chained merges under root. Nested merges
// that are forked stay opaque leaves; root itself is always expanded because
// it is the merge being planned. Both lists are de-duplicated by identity
// keeping the first occurrence.
func collapseMerges(root *logical.Merge, forked opSet) (mergeGroup, error) {
	var group mergeGroup
	seenMerges := opSet{}
	seenLeaves := opSet{}

	stack := []logical.Operator{root}
	for len(stack) > 0 {
		op := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		m, isMerge := op.(*logical.Merge)
		if !isMerge || (op != root && forked.contains(op)) {
			if !seenLeaves.contains(op) {
				seenLeaves.add(op)
				group.leaves = append(group.leaves, op)
			}
			continue
		}

		if m.Left == m.Right {
			return mergeGroup{}, selfMergeError(m)
		}
		if !seenMerges.contains(m) {
			seenMerges.add(m)
			group.merges = append(group.merges, m)
		}
		stack = append(stack, m.Right, m.Left)
	}
	return group, nil
}

func selfMergeError(m *logical.Merge) error {
	return apperrors.NewInvalidGraphError(m.Name(), "merge inputs must be distinct operators")
}
