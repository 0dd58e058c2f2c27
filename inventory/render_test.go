package inventory

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/classtree/classtree/config"
)

type RenderTestSuite struct {
	suite.Suite
}

func (s *RenderTestSuite) writeFile(fs afero.Fs, path, contents string) {
	s.Require().NoError(afero.WriteFile(fs, path, []byte(contents), 0o644))
}

// Test_render_all ports a condensed version of inventory.rs's
// test_render: two nodes sharing a class, each contributing to the
// aggregated class/application indexes.
func (s *RenderTestSuite) Test_render_all() {
	fs := afero.NewMemMapFs()
	s.writeFile(fs, "classes/cls1.yml", `
parameters:
  foo:
    foo: foo
`)
	s.writeFile(fs, "nodes/n1.yml", `
classes: [cls1]
applications: [app1]
`)
	s.writeFile(fs, "nodes/n2.yml", `
classes: [cls1]
`)

	layout, err := Discover(fs, "nodes", "classes")
	s.Require().NoError(err)

	cfg, err := config.New("nodes", "classes", false)
	s.Require().NoError(err)

	inv, err := RenderAll(context.Background(), layout, cfg)
	s.Require().NoError(err)

	s.Len(inv.Nodes, 2)
	s.Equal([]string{"n1"}, inv.Applications["app1"])
	s.ElementsMatch([]string{"n1", "n2"}, inv.Classes["cls1"])

	n1 := inv.Nodes["n1"]
	foo, ok := n1.Parameters.GetString("foo")
	s.Require().True(ok)
	fooMap, ok := foo.AsMapping()
	s.Require().True(ok)
	fooVal, ok := fooMap.GetString("foo")
	s.Require().True(ok)
	lit, _ := fooVal.AsLiteral()
	s.Equal("foo", lit)
}

// Test_render_all_missing_class_fails exercises a node referencing a
// class with no backing file.
func (s *RenderTestSuite) Test_render_all_missing_class_fails() {
	fs := afero.NewMemMapFs()
	s.writeFile(fs, "nodes/n1.yml", `classes: [nope]`)

	layout, err := Discover(fs, "nodes", "classes")
	s.Require().NoError(err)

	cfg, err := config.New("nodes", "classes", false)
	s.Require().NoError(err)

	_, err = RenderAll(context.Background(), layout, cfg)
	s.Require().Error(err)
}

func TestRenderTestSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}
