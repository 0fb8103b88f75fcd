// Package thread rebuilds the reply forest of a post from its flat comment list.
package thread

import (
	"campus-feed/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Node struct {
	models.Comment
	Children []*Node `json:"children"`
}

// Build returns the root nodes of the forest in input order. Children keep
// their relative input order. A comment whose parent is not in the set, or
// whose ancestor chain loops back to itself, becomes a root. A repeated ID
// is kept only at its first occurrence.
func Build(comments []models.Comment) []*Node {
	byID := make(map[bson.ObjectID]*Node, len(comments))
	order := make([]*Node, 0, len(comments))
	for _, c := range comments {
		if _, dup := byID[c.ID]; dup {
			continue
		}
		n := &Node{Comment: c, Children: []*Node{}}
		byID[c.ID] = n
		order = append(order, n)
	}

	parentOf := func(n *Node) *Node {
		if n.ParentID == nil || *n.ParentID == n.ID {
			return nil
		}
		return byID[*n.ParentID]
	}

	roots := make([]*Node, 0)
	for _, n := range order {
		p := parentOf(n)
		if p == nil || loopsBack(n, parentOf) {
			roots = append(roots, n)
			continue
		}
		p.Children = append(p.Children, n)
	}
	return roots
}

// loopsBack reports whether walking up from n ever reaches n again.
func loopsBack(n *Node, parentOf func(*Node) *Node) bool {
	seen := map[*Node]struct{}{}
	for cur := parentOf(n); cur != nil; cur = parentOf(cur) {
		if cur == n {
			return true
		}
		if _, ok := seen[cur]; ok {
			return false
		}
		seen[cur] = struct{}{}
	}
	return false
}

// Walk visits every node depth-first with its depth (roots are 0).
func Walk(roots []*Node, fn func(n *Node, depth int)) {
	var visit func(ns []*Node, depth int)
	visit = func(ns []*Node, depth int) {
		for _, n := range ns {
			fn(n, depth)
			visit(n.Children, depth+1)
		}
	}
	visit(roots, 0)
}

// Count returns the number of nodes in the forest.
func Count(roots []*Node) int {
	total := 0
	Walk(roots, func(*Node, int) { total++ })
	return total
}
