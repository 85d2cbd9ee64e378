package render

import (
	"fmt"
	"io"

	"github.com/tmerr/permtree/model"
	"github.com/tmerr/permtree/resolve"
	"github.com/tmerr/permtree/tree"
)

// Commands writes a shell command sequence to w that reproduces the
// override tree n, rooted at root (the resolved root path), assuming the
// target subtree starts out uniform with the root's own settings.
//
// Every command is recursive, so emission order decides the final state:
// the walk is preorder, which guarantees that a parent's blanket chown/chmod
// lands before the more specific command of anything inside it. The most
// specific command is always the last write that touches an entry, so the
// end state matches the tree exactly. Emitting a parent after a child would
// clobber the child's override.
func Commands(w io.Writer, n *model.Node, root string, names *resolve.Cache) {
	// The current path as raw components, grown and cut as the walk moves
	// through the tree. components[0] is the root path itself.
	var components []string

	tree.Walk(n, 0, func(n *model.Node, depth int) {
		if depth == 0 {
			components = []string{root}
		} else {
			components = append(components[:depth], n.Name)
		}

		if n.Data == nil || !n.HasOverride() {
			return
		}

		path := shellPath(components)
		d := n.Data

		switch {
		case d.UidSet && d.GidSet:
			fmt.Fprintf(w, "chown -R %s:%s %s\n", names.UserName(d.Uid), names.GroupName(d.Gid), path)
		case d.UidSet:
			fmt.Fprintf(w, "chown -R %s %s\n", names.UserName(d.Uid), path)
		case d.GidSet:
			fmt.Fprintf(w, "chown -R :%s %s\n", names.GroupName(d.Gid), path)
		}

		if d.ModeSet {
			// Five octal digits: the extra leading zero makes chmod
			// clear setuid/setgid on directories instead of
			// preserving them.
			fmt.Fprintf(w, "chmod -R 0%04o %s\n", d.Mode, path)
		}
	})
}

// shellPath reassembles the component stack into a shell argument that is
// safe for arbitrary filename bytes. Every byte is escaped as a three-digit
// octal sequence and decoded again by printf on the shell side, so spaces,
// quotes and control characters never reach the shell parser literally.
func shellPath(components []string) string {
	raw := components[0]
	for _, c := range components[1:] {
		if raw != "/" {
			raw += "/"
		}
		raw += c
	}

	escaped := make([]byte, 0, 4*len(raw))
	for i := 0; i < len(raw); i++ {
		escaped = append(escaped, fmt.Sprintf("\\%03o", raw[i])...)
	}
	return fmt.Sprintf(`"$(printf '%s')"`, escaped)
}
