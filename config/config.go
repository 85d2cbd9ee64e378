package config

import (
	"fmt"
	"regexp"

	"github.com/tmerr/permtree/tree"
)

type Config struct {
	Commands bool   `koanf:"commands" short:"c" description:"emit chown/chmod commands that reproduce the layout instead of a tree"`
	Tree     bool   `koanf:"tree" short:"t" description:"print the annotated tree (the default)"`
	Exclude  string `koanf:"exclude" short:"e" description:"exclude paths matching regular expression"`
	Include  string `koanf:"include" short:"i" description:"include only paths matching regular expression"`

	Filter *tree.Filter `koanf:"-"`
}

func (c *Config) Validate() error {
	if c.Commands && c.Tree {
		return fmt.Errorf("may only define -c or -t, not both")
	}

	c.Filter = &tree.Filter{}

	if c.Exclude != "" {
		r, err := regexp.Compile(c.Exclude)
		if err != nil {
			return fmt.Errorf("invalid exclude regex: %w", err)
		}
		c.Filter.Exclude = r
	}

	if c.Include != "" {
		r, err := regexp.Compile(c.Include)
		if err != nil {
			return fmt.Errorf("invalid include regex: %w", err)
		}
		c.Filter.Include = r
	}

	return nil
}
