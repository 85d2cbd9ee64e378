package tree

import (
	"regexp"
	"sort"

	"github.com/tmerr/permtree/model"
)

// Filter restricts which entries a build descends into. A nil regexp means
// no restriction on that side. Exclusion wins over inclusion.
type Filter struct {
	Include *regexp.Regexp
	Exclude *regexp.Regexp
}

func (f *Filter) match(path string) bool {
	if f == nil {
		return true
	}
	if f.Exclude != nil && f.Exclude.MatchString(path) {
		return false
	}
	if f.Include != nil && !f.Include.MatchString(path) {
		return false
	}
	return true
}

// parentInfo carries a parent directory's resolved metadata down one level.
// Overrides are computed against these values, never against an ancestor
// further up.
type parentInfo struct {
	mode uint32
	uid  uint32
	gid  uint32
}

// Build probes path and its subtree through src and returns the override
// tree. name is what the root node is called in output; pass the path's
// final component or the path itself, whichever suits the caller.
//
// Probe failures never propagate: a path that cannot be stat'ed becomes an
// error leaf, a directory that cannot be listed keeps its own metadata and
// records the listing error in place of children.
func Build(src Source, path, name string, filter *Filter) model.Node {
	return build(src, path, name, nil, filter)
}

func build(src Source, path, name string, parent *parentInfo, filter *Filter) model.Node {
	info, err := src.Stat(path)
	if err != nil {
		return model.Node{Name: name, Err: err}
	}

	data := &model.NodeData{
		Kind: model.Leaf,
		Mode: info.Mode & model.ModeMask,
		Uid:  info.Uid,
		Gid:  info.Gid,
	}
	if parent == nil {
		// The root has nothing to inherit from, so everything it has
		// is an override.
		data.ModeSet = true
		data.UidSet = true
		data.GidSet = true
	} else {
		data.ModeSet = data.Mode != parent.mode
		data.UidSet = data.Uid != parent.uid
		data.GidSet = data.Gid != parent.gid
	}

	if !info.Dir {
		return model.Node{Name: name, Data: data}
	}
	data.Kind = model.Directory

	names, err := src.List(path)
	if err != nil {
		// The directory exists and was stat'ed fine, its contents are
		// simply unknown. Do not pretend it is empty.
		data.ListErr = err
		return model.Node{Name: name, Data: data}
	}
	sort.Strings(names)

	// Children inherit from this node's resolved values, independent of
	// whether this node itself overrode anything.
	self := &parentInfo{mode: data.Mode, uid: data.Uid, gid: data.Gid}
	for _, childName := range names {
		childPath := src.Join(path, childName)
		if !filter.match(childPath) {
			continue
		}
		data.Children = append(data.Children, build(src, childPath, childName, self, filter))
	}

	return model.Node{Name: name, Data: data}
}
