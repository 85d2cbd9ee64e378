// Package render turns a pruned override tree into output: an annotated
// tree for humans, or a command sequence that reproduces the layout.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/tmerr/permtree/model"
	"github.com/tmerr/permtree/resolve"
	"github.com/tmerr/permtree/tree"
)

// Tree writes an indented listing of n to w. Each line shows only the
// attributes the entry overrides; fully inherited attributes are silent.
// Entries that could not be probed get an error marker instead.
func Tree(w io.Writer, n *model.Node, names *resolve.Cache) {
	tree.Walk(n, 0, func(n *model.Node, depth int) {
		indent := strings.Repeat("  ", depth)

		if n.Err != nil {
			fmt.Fprintf(w, "%s%s [error: %v]\n", indent, n.Name, n.Err)
			return
		}

		marker := ""
		if n.Data.Kind == model.Directory {
			marker = "+ "
		}

		line := indent + marker
		if attrs := overrides(n.Data, names); attrs != "" {
			line += "[" + attrs + "] "
		}
		line += n.Name

		if n.Data.ListErr != nil {
			line += fmt.Sprintf(" [unreadable: %v]", n.Data.ListErr)
		}
		fmt.Fprintln(w, line)
	})
}

func overrides(d *model.NodeData, names *resolve.Cache) string {
	var attrs []string
	if d.ModeSet {
		attrs = append(attrs, model.ModeString(d.Mode))
	}
	if d.UidSet {
		attrs = append(attrs, fmt.Sprintf("u:%d/%s", d.Uid, names.UserName(d.Uid)))
	}
	if d.GidSet {
		attrs = append(attrs, fmt.Sprintf("g:%d/%s", d.Gid, names.GroupName(d.Gid)))
	}
	return strings.Join(attrs, " ")
}
