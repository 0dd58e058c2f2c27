// Package inventory discovers node/class files on disk, renders every
// node in parallel, and aggregates the results into a class/application
// index, per spec.md §1's discovery/aggregator external collaborators.
package inventory

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Layout is the discovered set of node and class file paths under a
// config's NodesPath/ClassesPath, named the way spec.md §6's
// "Inventory tree layout" describes: a file `a/b/c.yml` under
// classes_path names class "a.b.c"; any `.yml`/`.yaml` file anywhere
// under nodes_path names a node by its basename without extension.
type Layout struct {
	Fs afero.Fs

	// NodeNames is every discovered node, in lexical order.
	NodeNames []string
	// nodePaths maps a node name to its file path on Fs.
	nodePaths map[string]string
	// classPaths maps a dotted class name to its file path on Fs.
	classPaths map[string]string
}

// Discover walks nodesPath and classesPath on fs and derives node and
// class names from file paths. Both trees may be the same directory.
func Discover(fs afero.Fs, nodesPath, classesPath string) (*Layout, error) {
	nodePaths, err := collectYAMLFiles(fs, nodesPath)
	if err != nil {
		return nil, err
	}
	classPaths, err := collectYAMLFiles(fs, classesPath)
	if err != nil {
		return nil, err
	}

	layout := &Layout{
		Fs:         fs,
		nodePaths:  map[string]string{},
		classPaths: map[string]string{},
	}

	for relPath, fullPath := range nodePaths {
		name := strings.TrimSuffix(strings.TrimSuffix(relPath, ".yaml"), ".yml")
		name = filepath.Base(name)
		layout.nodePaths[name] = fullPath
		layout.NodeNames = append(layout.NodeNames, name)
	}
	sort.Strings(layout.NodeNames)

	for relPath, fullPath := range classPaths {
		name := strings.TrimSuffix(strings.TrimSuffix(relPath, ".yaml"), ".yml")
		name = strings.ReplaceAll(name, string(filepath.Separator), ".")
		layout.classPaths[name] = fullPath
	}

	return layout, nil
}

// collectYAMLFiles walks root on fs and returns a map of path relative
// to root (using filepath.Separator, extension removed) to the full
// path on fs, for every
// `.yml`/`.yaml` file found. `.yml` is preferred when both extensions
// exist for the same base name, per spec.md §4.5's relative-class-name
// note.
func collectYAMLFiles(fs afero.Fs, root string) (map[string]string, error) {
	found := map[string]string{}
	seenWithoutYml := map[string]bool{}

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		base := strings.TrimSuffix(rel, ext)

		if ext == ".yaml" {
			if _, already := found[base]; already && !seenWithoutYml[base] {
				return nil
			}
		} else {
			seenWithoutYml[base] = true
		}
		found[base] = path
		return nil
	})
	if err != nil && os.IsNotExist(err) {
		return found, nil
	}
	return found, err
}

// OwnLoc returns the dotted directory containing name (a node or class
// name as returned in NodeNames, or any dotted class name), suitable
// as the own_loc anchor for resolving name's own relative class list.
func OwnLoc(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// ClassPath returns the discovered file path for a dotted class name,
// if any.
func (l *Layout) ClassPath(name string) (string, bool) {
	p, ok := l.classPaths[name]
	return p, ok
}

// NodePath returns the discovered file path for a node name, if any.
func (l *Layout) NodePath(name string) (string, bool) {
	p, ok := l.nodePaths[name]
	return p, ok
}
