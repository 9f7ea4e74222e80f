package config

// detectCycle returns the ids participating in a dependency cycle, or nil if
// no cycle exists. Edges point from an operator to its inputs.
func detectCycle(ops []OperatorSpec) []string {
	graph := make(map[string][]string, len(ops))
	ids := make([]string, 0, len(ops))
	for _, op := range ops {
		if _, seen := graph[op.ID]; seen {
			continue
		}
		graph[op.ID] = op.Inputs()
		ids = append(ids, op.ID)
	}

	visiting := make(map[string]bool, len(ops))
	visited := make(map[string]bool, len(ops))
	var stack []string

	var cycle []string
	var dfs func(string) bool
	dfs = func(node string) bool {
		visiting[node] = true
		stack = append(stack, node)

		for _, dep := range graph[node] {
			if visited[dep] {
				continue
			}
			if visiting[dep] {
				if idx := indexOf(stack, dep); idx >= 0 {
					cycle = append([]string{}, stack[idx:]...)
					cycle = append(cycle, dep)
				}
				return true
			}
			if dfs(dep) {
				return true
			}
		}

		visiting[node] = false
		visited[node] = true
		stack = stack[:len(stack)-1]
		return false
	}

	for _, id := range ids {
		if visited[id] {
			continue
		}
		if dfs(id) {
			break
		}
	}

	return cycle
}

func indexOf(slice []string, target string) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
