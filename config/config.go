// Package config defines the inventory layout and class-resolution
// tolerance settings shared by the walker, node and inventory packages.
package config

import (
	"fmt"
	"regexp"
)

// Config mirrors original_source's Config (nodes_path, classes_path,
// ignore_class_notfound), extended with the regex allow-list from
// spec.md's DATA MODEL table.
type Config struct {
	NodesPath                 string
	ClassesPath               string
	IgnoreClassNotFound       bool
	IgnoreClassNotFoundRegexp []*regexp.Regexp
}

// New builds a Config, compiling every pattern in regexpPatterns
// eagerly so a malformed pattern fails at construction rather than
// mid-render.
func New(nodesPath, classesPath string, ignoreClassNotFound bool, regexpPatterns ...string) (*Config, error) {
	compiled := make([]*regexp.Regexp, 0, len(regexpPatterns))
	for _, pattern := range regexpPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore_class_notfound_regexp pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}

	return &Config{
		NodesPath:                 nodesPath,
		ClassesPath:               classesPath,
		IgnoreClassNotFound:       ignoreClassNotFound,
		IgnoreClassNotFoundRegexp: compiled,
	}, nil
}

// AllowsMissing reports whether a missing class named className may be
// tolerated. Nothing is tolerated unless IgnoreClassNotFound is set;
// when it is, either no allow-list is configured (any missing class is
// tolerated), or className must match at least one configured pattern.
func (c *Config) AllowsMissing(className string) bool {
	if !c.IgnoreClassNotFound {
		return false
	}
	if len(c.IgnoreClassNotFoundRegexp) == 0 {
		return true
	}
	for _, re := range c.IgnoreClassNotFoundRegexp {
		if re.MatchString(className) {
			return true
		}
	}
	return false
}
