package graph

import (
	"slices"
)

// NumberOfEdgesTo counts the nodes of r whose edges list id.
func NumberOfEdgesTo(r Reader, id string) int {
	n := 0
	for _, pid := range r.IDs() {
		node, _ := r.Get(pid)
		if node.HasEdge(id) {
			n++
		}
	}
	return n
}

// IsClone reports whether id is listed by more than one parent.
func IsClone(r Reader, id string) bool {
	n := 0
	for _, pid := range r.IDs() {
		node, _ := r.Get(pid)
		if !node.HasEdge(id) {
			continue
		}
		n++
		if n > 1 {
			return true
		}
	}
	return false
}

// Parents returns the ids of the nodes listing id, in key order.
func Parents(r Reader, id string) []string {
	var res []string
	for _, pid := range r.IDs() {
		node, _ := r.Get(pid)
		if node.HasEdge(id) {
			res = append(res, pid)
		}
	}
	return res
}

// IsCyclic reports whether following edges from any node of r can lead
// back to that node.
func IsCyclic(r Reader) bool {
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var visit func(id string) bool
	visit = func(id string) bool {
		if onStack[id] {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		onStack[id] = true
		node, _ := r.Get(id)
		for _, tgt := range node.Edges {
			if visit(tgt) {
				return true
			}
		}
		onStack[id] = false
		return false
	}
	for _, id := range r.IDs() {
		if visit(id) {
			return true
		}
	}
	return false
}

// DepthFirst returns the ids reachable from start in pre-order, visiting
// edges left to right.  A shared node appears at its first position only.
func DepthFirst(r Reader, start string) []string {
	var res []string
	visited := map[string]bool{}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		res = append(res, id)
		node, ok := r.Get(id)
		if !ok {
			continue
		}
		for i := len(node.Edges) - 1; i >= 0; i-- {
			if !visited[node.Edges[i]] {
				stack = append(stack, node.Edges[i])
			}
		}
	}
	return res
}

// SortIDsDepthFirst orders ids by their depth first position from the
// root.  Ids not reachable from the root sort first, keeping their
// relative order.
func SortIDsDepthFirst(r Reader, ids []string) []string {
	pos := map[string]int{}
	for i, id := range DepthFirst(r, RootKey) {
		pos[id] = i
	}
	res := slices.Clone(ids)
	slices.SortStableFunc(res, func(a, b string) int {
		return index(pos, a) - index(pos, b)
	})
	return res
}

func index(pos map[string]int, id string) int {
	if i, ok := pos[id]; ok {
		return i
	}
	return -1
}
