package archive

import (
	"archive/tar"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"syscall"

	"github.com/cavaliergopher/cpio"
	"github.com/tmerr/permtree/model"
	"github.com/tmerr/permtree/tree"
)

// Root is the path of an Index's synthetic top directory.
const Root = "."

// Index is a tree.Source over the contents of one archive. Archives cannot
// be stat'ed path by path, so the whole archive is walked once up front and
// the entry metadata is kept in memory.
type Index struct {
	entries  map[string]tree.Info
	children map[string][]string
}

// ReadIndex walks the archive at archivePath and indexes every entry.
// Directories that only appear implicitly, as a prefix of some entry's
// path, are synthesized with mode 0755 and root ownership, the same shape
// an extraction would create for them. Formats that carry no ownership
// information (zip, 7z) report uid and gid 0 throughout.
func ReadIndex(archivePath string) (*Index, error) {
	ix := &Index{
		entries:  map[string]tree.Info{},
		children: map[string][]string{},
	}

	err := Walk(archivePath, func(p string, fi fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to process entry %s: %w", p, err)
		}
		uid, gid := ownerIDs(fi)
		ix.add(p, tree.Info{
			Mode: model.ModeBits(fi.Mode()),
			Uid:  uid,
			Gid:  gid,
			Dir:  fi.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, ok := ix.entries[Root]; !ok {
		ix.entries[Root] = tree.Info{Mode: 0755, Dir: true}
	}
	ix.link()
	return ix, nil
}

// add records one entry, synthesizing any missing ancestor directories.
// A real header for a directory always wins over a synthesized one.
func (ix *Index) add(p string, info tree.Info) {
	ix.entries[p] = info

	for dir := path.Dir(p); dir != Root && dir != "/"; dir = path.Dir(dir) {
		if _, ok := ix.entries[dir]; ok {
			break
		}
		ix.entries[dir] = tree.Info{Mode: 0755, Dir: true}
	}
}

func (ix *Index) link() {
	for p := range ix.entries {
		if p == Root {
			continue
		}
		parent := path.Dir(p)
		ix.children[parent] = append(ix.children[parent], path.Base(p))
	}
	for _, names := range ix.children {
		sort.Strings(names)
	}
}

func (ix *Index) Stat(p string) (tree.Info, error) {
	info, ok := ix.entries[p]
	if !ok {
		return tree.Info{}, fmt.Errorf("no such entry in archive: %s", p)
	}
	return info, nil
}

func (ix *Index) List(p string) ([]string, error) {
	return ix.children[p], nil
}

func (ix *Index) Join(parent, name string) string {
	if parent == Root {
		return name
	}
	return parent + "/" + name
}

// ownerIDs extracts owning ids from whatever header type the walker hands
// out. Headers without the information fall back to 0.
func ownerIDs(fi fs.FileInfo) (uid, gid uint32) {
	switch sys := fi.Sys().(type) {
	case *tar.Header:
		return uint32(sys.Uid), uint32(sys.Gid)
	case *cpio.Header:
		return uint32(sys.Uid), uint32(sys.Guid)
	case *syscall.Stat_t:
		return sys.Uid, sys.Gid
	}
	return 0, 0
}
