package tree

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tmerr/permtree/model"
)

func dir(name string, children ...model.Node) model.Node {
	return model.Node{Name: name, Data: &model.NodeData{
		Kind:     model.Directory,
		Children: children,
	}}
}

func leaf(name string) model.Node {
	return model.Node{Name: name, Data: &model.NodeData{Kind: model.Leaf}}
}

func withOverride(n model.Node) model.Node {
	n.Data.ModeSet = true
	return n
}

func TestPruneDropsInformationFreeSubtrees(t *testing.T) {
	root := withOverride(dir("r",
		leaf("inherited"),
		dir("empty"),
		dir("boring", leaf("alsoboring")),
		withOverride(leaf("keep")),
	))

	pruned, ok := Prune(root)
	if !ok {
		t.Fatal("root with override must survive")
	}
	if len(pruned.Data.Children) != 1 || pruned.Data.Children[0].Name != "keep" {
		t.Errorf("want only the overriding child, got %+v", pruned.Data.Children)
	}
}

func TestPruneKeepsAncestorsOfOverrides(t *testing.T) {
	root := withOverride(dir("r",
		dir("a", dir("b", withOverride(leaf("deep")))),
	))

	pruned, ok := Prune(root)
	if !ok {
		t.Fatal("root must survive")
	}
	a := pruned.Data.Children
	if len(a) != 1 || a[0].Name != "a" {
		t.Fatalf("chain to overriding descendant broken: %+v", a)
	}
	b := a[0].Data.Children
	if len(b) != 1 || len(b[0].Data.Children) != 1 {
		t.Fatalf("chain to overriding descendant broken below a")
	}
}

func TestPruneRetainsErrors(t *testing.T) {
	errNode := model.Node{Name: "bad", Err: errors.New("permission denied")}
	unlistable := model.Node{Name: "dir", Data: &model.NodeData{
		Kind:    model.Directory,
		ListErr: errors.New("permission denied"),
	}}

	root := withOverride(dir("r", errNode, unlistable, leaf("inherited")))

	pruned, ok := Prune(root)
	if !ok {
		t.Fatal("root must survive")
	}
	if len(pruned.Data.Children) != 2 {
		t.Fatalf("want both error nodes retained, got %+v", pruned.Data.Children)
	}
	if pruned.Data.Children[0].Err == nil {
		t.Error("probe error discarded")
	}
	if pruned.Data.Children[1].Data.ListErr == nil {
		t.Error("listing error discarded")
	}
}

func TestPruneDropsOverrideFreeTree(t *testing.T) {
	if _, ok := Prune(dir("r", leaf("a"))); ok {
		t.Error("tree without overrides or errors must prune away entirely")
	}
}

func TestPruneIdempotent(t *testing.T) {
	root := withOverride(dir("r",
		leaf("inherited"),
		dir("a", withOverride(leaf("deep"))),
		model.Node{Name: "bad", Err: errors.New("boom")},
	))

	once, ok := Prune(root)
	if !ok {
		t.Fatal("root must survive")
	}
	twice, ok := Prune(once)
	if !ok {
		t.Fatal("pruned tree must survive a second prune")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("pruning not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}
