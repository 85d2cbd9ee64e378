package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tmerr/permtree/archive"
	"github.com/tmerr/permtree/config"
	"github.com/tmerr/permtree/probe"
	"github.com/tmerr/permtree/render"
	"github.com/tmerr/permtree/resolve"
	"github.com/tmerr/permtree/tree"
)

const envPrefix = "PERMTREE_"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}

func NewRootCmd() *cobra.Command {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:           "permtree [flags] path...",
		Short:         "list file owners and permissions in a compact tree view",
		Long: `permtree walks one or more directory trees (or archives) and reports how
permission mode and owning user/group differ from what each entry would
inherit from its parent, either as an annotated tree or as a sequence of
chown/chmod commands that reproduces the layout.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd.Flags(), cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(os.Stdout, cfg, args)
		},
	}

	fs := cmd.Flags()
	fs.BoolP("commands", "c", false, "emit chown/chmod commands that reproduce the layout instead of a tree")
	fs.BoolP("tree", "t", false, "print the annotated tree (the default)")
	fs.StringP("exclude", "e", "", "exclude paths matching regular expression")
	fs.StringP("include", "i", "", "include only paths matching regular expression")

	return cmd
}

// loadConfig merges, lowest precedence first: struct defaults, environment
// (PERMTREE_ prefixed, _ mapped to .), then command line flags.
func loadConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"commands": false,
		"tree":     false,
	}, "."), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load config struct: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return fmt.Errorf("failed to load flags: %w", err)
	}

	return k.Unmarshal("", cfg)
}

type root struct {
	arg     string
	path    string
	archive bool
}

// run resolves every root argument up front and only then starts walking:
// a bad argument is a configuration mistake and aborts the whole
// invocation, it must not be silently skipped while other roots produce
// output.
func run(w io.Writer, cfg *config.Config, args []string) error {
	var roots []root
	var errs *multierror.Error

	for _, arg := range args {
		resolved, err := canonicalize(arg)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("cannot resolve %q: %w", arg, err))
			continue
		}
		fi, err := os.Stat(resolved)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("cannot resolve %q: %w", arg, err))
			continue
		}
		roots = append(roots, root{
			arg:  arg,
			path: resolved,
			// A directory whose name merely looks like an archive is
			// still a directory.
			archive: !fi.IsDir() && archive.IsSupported(resolved),
		})
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	names := resolve.NewCache()

	for _, r := range roots {
		var (
			src  tree.Source
			base string
		)
		if r.archive {
			ix, err := archive.ReadIndex(r.path)
			if err != nil {
				return fmt.Errorf("cannot read archive %q: %w", r.arg, err)
			}
			src = ix
			// Reproduction commands for archive contents are
			// relative to wherever the archive gets extracted.
			base = archive.Root
		} else {
			src = probe.FS{}
			base = r.path
		}

		node := tree.Build(src, base, r.path, cfg.Filter)
		pruned, ok := tree.Prune(node)
		if !ok {
			continue
		}

		if cfg.Commands {
			render.Commands(w, &pruned, base, names)
		} else {
			render.Tree(w, &pruned, names)
		}
	}

	return nil
}

// canonicalize turns a root argument into an absolute, symlink-normalized
// path, failing if the path does not exist.
func canonicalize(arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
