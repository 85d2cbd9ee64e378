package tree

// Info is the metadata a Source reports for one path: the raw unix mode
// restricted to model.ModeMask, the owning ids, and whether the entry is a
// directory.
type Info struct {
	Mode uint32
	Uid  uint32
	Gid  uint32
	Dir  bool
}

// Source abstracts where metadata comes from, so the same builder works on
// the live filesystem and on archive contents. Stat and List fail per path;
// a failure never aborts the walk, it becomes part of the tree.
type Source interface {
	Stat(path string) (Info, error)

	// List returns the names of the immediate children of a directory.
	// Order does not matter, the builder sorts.
	List(path string) ([]string, error)

	// Join builds the path of a child entry from its parent's path.
	Join(parent, name string) string
}
