package render

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/tmerr/permtree/model"
)

// decodePath undoes shellPath: it unwraps the "$(printf '...')" expression
// and decodes the three-digit octal escapes back into raw bytes.
func decodePath(t *testing.T, arg string) string {
	t.Helper()
	const pre, post = `"$(printf '`, `')"`
	if !strings.HasPrefix(arg, pre) || !strings.HasSuffix(arg, post) {
		t.Fatalf("path argument not in printf form: %q", arg)
	}
	escaped := arg[len(pre) : len(arg)-len(post)]

	var raw []byte
	for len(escaped) > 0 {
		if escaped[0] != '\\' || len(escaped) < 4 {
			t.Fatalf("unescaped byte in path argument: %q", escaped)
		}
		b, err := strconv.ParseUint(escaped[1:4], 8, 8)
		if err != nil {
			t.Fatalf("bad octal escape in %q: %v", escaped, err)
		}
		raw = append(raw, byte(b))
		escaped = escaped[4:]
	}
	return string(raw)
}

// command splits one output line into the part before the path argument and
// the decoded path.
func command(t *testing.T, line string) (prefix, path string) {
	t.Helper()
	i := strings.Index(line, `"$(`)
	if i < 0 {
		t.Fatalf("no path argument in line %q", line)
	}
	return strings.TrimRight(line[:i], " "), decodePath(t, line[i:])
}

func emit(n model.Node, root string) []string {
	var buf bytes.Buffer
	Commands(&buf, &n, root, testNames())
	out := strings.TrimSuffix(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestCommandsExample(t *testing.T) {
	n := exampleTree()
	lines := emit(n, "/r")

	want := []struct{ prefix, path string }{
		{"chown -R one:grp", "/r"},
		{"chmod -R 00755", "/r"},
		{"chown -R two", "/r/b"},
		{"chmod -R 00644", "/r/b"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d commands, want %d:\n%s", len(lines), len(want), strings.Join(lines, "\n"))
	}
	for i, w := range want {
		prefix, path := command(t, lines[i])
		if prefix != w.prefix || path != w.path {
			t.Errorf("command %d = %q %q, want %q %q", i, prefix, path, w.prefix, w.path)
		}
	}
}

func TestCommandsDepthJump(t *testing.T) {
	// r
	//   a
	//     deep   (override)
	//   c        (override)
	//
	// After the walk backtracks out of a's subtree the path stack must be
	// cut back before c's path is assembled.
	n := model.Node{Name: "/r", Data: &model.NodeData{
		Kind: model.Directory,
		Mode: 0755, ModeSet: true, UidSet: true, GidSet: true,
		Children: []model.Node{
			{Name: "a", Data: &model.NodeData{
				Kind: model.Directory, Mode: 0755,
				Children: []model.Node{
					{Name: "deep", Data: &model.NodeData{
						Kind: model.Leaf, Mode: 0600, ModeSet: true,
					}},
				},
			}},
			{Name: "c", Data: &model.NodeData{
				Kind: model.Leaf, Mode: 0640, ModeSet: true,
			}},
		},
	}}

	lines := emit(n, "/r")

	var paths []string
	for _, line := range lines {
		_, path := command(t, line)
		paths = append(paths, path)
	}

	// a carries no override and gets no command of its own.
	want := []string{"/r", "/r", "/r/a/deep", "/r/c"}
	if len(paths) != len(want) {
		t.Fatalf("paths %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("command %d path = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestCommandsPreorderInvariant(t *testing.T) {
	// Both the directory and an entry inside it have commands; the
	// directory's recursive command must come first so the entry's is the
	// last write affecting it.
	n := model.Node{Name: "/r", Data: &model.NodeData{
		Kind: model.Directory,
		Mode: 0755, ModeSet: true, UidSet: true, GidSet: true,
		Children: []model.Node{
			{Name: "d", Data: &model.NodeData{
				Kind: model.Directory, Mode: 0700, ModeSet: true,
				Children: []model.Node{
					{Name: "f", Data: &model.NodeData{
						Kind: model.Leaf, Mode: 0644, ModeSet: true,
					}},
				},
			}},
		},
	}}

	var seen []string
	for _, line := range emit(n, "/r") {
		_, path := command(t, line)
		seen = append(seen, path)
	}
	for i := 1; i < len(seen); i++ {
		for j := 0; j < i; j++ {
			if strings.HasPrefix(seen[j], seen[i]+"/") {
				t.Errorf("command for %q emitted after its descendant %q", seen[i], seen[j])
			}
		}
	}
}

func TestCommandsOwnershipForms(t *testing.T) {
	mk := func(uidSet, gidSet bool) model.Node {
		return model.Node{Name: "/r", Data: &model.NodeData{
			Kind: model.Leaf,
			Uid:  2, Gid: 1,
			UidSet: uidSet, GidSet: gidSet,
		}}
	}

	tests := []struct {
		name     string
		node     model.Node
		wantCmds []string
	}{
		{"Both", mk(true, true), []string{"chown -R two:grp"}},
		{"UserOnly", mk(true, false), []string{"chown -R two"}},
		{"GroupOnly", mk(false, true), []string{"chown -R :grp"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines := emit(tc.node, "/r")
			if len(lines) != len(tc.wantCmds) {
				t.Fatalf("got %v, want %d commands", lines, len(tc.wantCmds))
			}
			for i, w := range tc.wantCmds {
				prefix, _ := command(t, lines[i])
				if prefix != w {
					t.Errorf("command %d = %q, want %q", i, prefix, w)
				}
			}
		})
	}
}

func TestCommandsSetuidClearingOctal(t *testing.T) {
	n := model.Node{Name: "/r", Data: &model.NodeData{
		Kind: model.Directory,
		Mode: 04755, ModeSet: true,
	}}
	lines := emit(n, "/r")
	if len(lines) != 1 {
		t.Fatalf("got %v, want one chmod", lines)
	}
	prefix, _ := command(t, lines[0])
	if prefix != "chmod -R 04755" {
		t.Errorf("chmod = %q, want five octal digits with leading zero", prefix)
	}
}

func TestCommandsSkipErrorAndCleanNodes(t *testing.T) {
	n := model.Node{Name: "/r", Data: &model.NodeData{
		Kind: model.Directory,
		Mode: 0755, ModeSet: true, UidSet: true, GidSet: true,
		Children: []model.Node{
			{Name: "bad", Err: errors.New("permission denied")},
			{Name: "clean", Data: &model.NodeData{Kind: model.Leaf, Mode: 0755}},
		},
	}}

	lines := emit(n, "/r")
	for _, line := range lines {
		_, path := command(t, line)
		if path != "/r" {
			t.Errorf("unexpected command for %q; error and override-free nodes emit nothing", path)
		}
	}
}

func TestCommandsEscapesHostileNames(t *testing.T) {
	name := "a b'\"$\n\x01"
	n := model.Node{Name: "/r", Data: &model.NodeData{
		Kind: model.Directory,
		Mode: 0755, ModeSet: true, UidSet: true, GidSet: true,
		Children: []model.Node{
			{Name: name, Data: &model.NodeData{
				Kind: model.Leaf, Mode: 0600, ModeSet: true,
			}},
		},
	}}

	lines := emit(n, "/r")
	_, path := command(t, lines[len(lines)-1])
	if path != "/r/"+name {
		t.Errorf("hostile name did not round-trip: %q", path)
	}
}
