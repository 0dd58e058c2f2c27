package inventory

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/classtree/classtree/node"
	"github.com/classtree/classtree/walker"
)

// NodeNotFoundError is returned by Layout.loadNode when name has no
// backing file under nodes_path.
type NodeNotFoundError struct {
	NodeName string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %q not found", e.NodeName)
}

// fsLoader resolves class names to parsed file contents by reading
// from a Layout's classes tree, implementing walker.Loader.
type fsLoader struct {
	layout *Layout
}

func (l *fsLoader) LoadClass(name string) (*walker.ClassFile, error) {
	path, ok := l.layout.ClassPath(name)
	if !ok {
		return nil, &walker.ClassNotFoundError{ClassName: name}
	}

	data, err := afero.ReadFile(l.layout.Fs, path)
	if err != nil {
		return nil, err
	}

	raw, err := node.Parse(data)
	if err != nil {
		return nil, err
	}

	return raw.AsClassFile(OwnLoc(name)), nil
}

// loadNode reads and parses a node's own file from the layout.
func (l *Layout) loadNode(name string) (*node.Raw, string, error) {
	path, ok := l.NodePath(name)
	if !ok {
		return nil, "", &NodeNotFoundError{NodeName: name}
	}
	data, err := afero.ReadFile(l.Fs, path)
	if err != nil {
		return nil, "", err
	}
	raw, err := node.Parse(data)
	if err != nil {
		return nil, "", err
	}
	return raw, path, nil
}
