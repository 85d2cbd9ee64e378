package tree

import "github.com/tmerr/permtree/model"

// Prune drops subtrees that carry no information: no override anywhere, no
// error anywhere. It returns the reduced node and whether it survived.
// Nodes with a probe or listing error always survive; hiding an error would
// hide a real problem.
//
// Prune works bottom-up and is idempotent.
func Prune(n model.Node) (model.Node, bool) {
	if n.Err != nil {
		return n, true
	}

	if n.Data.ListErr != nil {
		return n, true
	}

	kept := n.Data.Children[:0:0]
	for _, child := range n.Data.Children {
		if pruned, ok := Prune(child); ok {
			kept = append(kept, pruned)
		}
	}
	n.Data.Children = kept

	if n.HasOverride() || len(kept) > 0 {
		return n, true
	}
	return model.Node{}, false
}
