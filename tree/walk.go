package tree

import "github.com/tmerr/permtree/model"

// Visitor is invoked once per node during a walk, with the node's depth
// below the walk's starting point.
type Visitor func(n *model.Node, depth int)

// Walk visits n and then, in order, every successfully listed child subtree
// at depth+1. Preorder: a node is always visited before anything inside it.
// Both renderers run over this walk, so their output ordering is identical
// by construction.
func Walk(n *model.Node, depth int, visit Visitor) {
	visit(n, depth)
	if n.Data == nil {
		return
	}
	for i := range n.Data.Children {
		Walk(&n.Data.Children[i], depth+1, visit)
	}
}
