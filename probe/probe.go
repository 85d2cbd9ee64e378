// Package probe implements tree.Source on the live filesystem.
package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/tmerr/permtree/model"
	"github.com/tmerr/permtree/tree"
)

// FS reads metadata with lstat, so symlinks are reported as themselves and
// never followed.
type FS struct{}

func (FS) Stat(path string) (tree.Info, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return tree.Info{}, err
	}

	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return tree.Info{}, fmt.Errorf("unexpected stat value for %s: %v", path, fi.Sys())
	}

	return tree.Info{
		Mode: uint32(stat.Mode) & model.ModeMask,
		Uid:  stat.Uid,
		Gid:  stat.Gid,
		Dir:  fi.IsDir(),
	}, nil
}

func (FS) List(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (FS) Join(parent, name string) string {
	return filepath.Join(parent, name)
}
