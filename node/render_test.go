package node

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/classtree/classtree/config"
	"github.com/classtree/classtree/walker"
)

type fakeLoader struct {
	classes map[string]*walker.ClassFile
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{classes: map[string]*walker.ClassFile{}}
}

func (f *fakeLoader) addYAML(s *suite.Suite, name, ownLoc string, yamlSrc string) {
	raw, err := Parse([]byte(yamlSrc))
	s.Require().NoError(err)
	f.classes[name] = raw.AsClassFile(ownLoc)
}

func (f *fakeLoader) LoadClass(name string) (*walker.ClassFile, error) {
	cf, ok := f.classes[name]
	if !ok {
		return nil, &walker.ClassNotFoundError{ClassName: name}
	}
	return cf, nil
}

func mustCfg(s *suite.Suite) *config.Config {
	c, err := config.New("nodes", "classes", false)
	s.Require().NoError(err)
	return c
}

type RenderTestSuite struct {
	suite.Suite
}

// Test_render_n1 ports node_render_tests.rs's test_render_n1: two
// classes merge their `foo`/`bar` parameters with the later class
// winning the scalar conflict.
func (s *RenderTestSuite) Test_render_n1() {
	l := newFakeLoader()
	l.addYAML(&s.Suite, "cls1", "", `
parameters:
  foo:
    bar: cls1
    baz: cls1
  bar:
    foo: foo
`)
	l.addYAML(&s.Suite, "cls2", "", `
parameters:
  foo:
    foo: foo
    bar: cls2
`)

	raw, err := Parse([]byte(`
classes: [cls1, cls2]
applications: [app1, app2]
`))
	s.Require().NoError(err)
	s.Equal([]string{"cls1", "cls2"}, raw.Classes)
	s.Equal([]string{"app1", "app2"}, raw.Applications.Items())

	info, err := Render("n1", "", "", raw, l, mustCfg(&s.Suite))
	s.Require().NoError(err)
	s.Equal([]string{"cls1", "cls2"}, info.Classes)
	s.Equal([]string{"app1", "app2"}, info.Applications)

	foo, ok := info.Parameters.GetString("foo")
	s.Require().True(ok)
	fooMap, ok := foo.AsMapping()
	s.Require().True(ok)
	fooVal, _ := fooMap.GetString("foo")
	lit, _ := fooVal.AsLiteral()
	s.Equal("foo", lit)
	barVal, _ := fooMap.GetString("bar")
	lit, _ = barVal.AsLiteral()
	s.Equal("cls2", lit)
	bazVal, _ := fooMap.GetString("baz")
	lit, _ = bazVal.AsLiteral()
	s.Equal("cls1", lit)

	reclass, ok := info.Parameters.GetString("_reclass_")
	s.Require().True(ok)
	reclassMap, _ := reclass.AsMapping()
	env, _ := reclassMap.GetString("environment")
	lit, _ = env.AsLiteral()
	s.Equal("base", lit)
	nameVal, _ := reclassMap.GetString("name")
	nameMap, _ := nameVal.AsMapping()
	short, _ := nameMap.GetString("short")
	lit, _ = short.AsLiteral()
	s.Equal("n1", lit)
}

// Test_render_n4 ports test_render_n4: a `${...}`-valued class entry
// stays verbatim in the output list, only the children of the class it
// resolves to are appended after it, and `qux` renders to the class
// name cls8 set.
func (s *RenderTestSuite) Test_render_n4() {
	l := newFakeLoader()
	l.addYAML(&s.Suite, "cls7", "", `parameters: {}`)
	l.addYAML(&s.Suite, "cls1", "", `
classes: [cls7]
parameters:
  foo:
    baz: cls1
`)
	l.addYAML(&s.Suite, "cls8", "", `
parameters:
  foo:
    foo: cls1
    bar: cls1
  qux: cls1
`)

	raw, err := Parse([]byte(`classes: [cls8, "${qux}"]`))
	s.Require().NoError(err)

	info, err := Render("n4", "", "", raw, l, mustCfg(&s.Suite))
	s.Require().NoError(err)
	s.Equal([]string{"cls8", "${qux}", "cls7"}, info.Classes)

	qux, ok := info.Parameters.GetString("qux")
	s.Require().True(ok)
	lit, _ := qux.AsLiteral()
	s.Equal("cls1", lit)
}

func TestRenderTestSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}
