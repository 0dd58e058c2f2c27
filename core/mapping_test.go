package core

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MappingTestSuite struct {
	suite.Suite
}

// Test_s1_layered_override exercises spec.md S1: merging two classes'
// `foo` mappings layers rather than replaces.
func (s *MappingTestSuite) Test_s1_layered_override() {
	cls1Foo := NewEmptyMapping()
	_ = cls1Foo.Insert("foo", NewLiteral("foo"))
	_ = cls1Foo.Insert("baz", NewLiteral("cls1"))

	cls2Foo := NewEmptyMapping()
	_ = cls2Foo.Insert("bar", NewLiteral("cls2"))

	root := NewEmptyMapping()
	_ = root.Insert("foo", NewMapping(cls1Foo))
	overlay := NewEmptyMapping()
	_ = overlay.Insert("foo", NewMapping(cls2Foo))

	s.Require().NoError(root.Merge(overlay))

	fooVal, ok := root.GetString("foo")
	s.Require().True(ok)
	s.Require().True(fooVal.IsValueList())

	flat, err := Flatten(fooVal)
	s.Require().NoError(err)
	flatMap, ok := flat.AsMapping()
	s.Require().True(ok)

	fooInner, _ := flatMap.GetString("foo")
	lit, _ := fooInner.AsLiteral()
	s.Assert().Equal("foo", lit)

	bazInner, _ := flatMap.GetString("baz")
	lit, _ = bazInner.AsLiteral()
	s.Assert().Equal("cls1", lit)

	barInner, _ := flatMap.GetString("bar")
	lit, _ = barInner.AsLiteral()
	s.Assert().Equal("cls2", lit)
}

// Test_s5_override_prefix exercises spec.md S5: a `~`-prefixed key
// replaces rather than merges.
func (s *MappingTestSuite) Test_s5_override_prefix() {
	base := NewEmptyMapping()
	fooBase := NewEmptyMapping()
	_ = fooBase.Insert("a", NewInt(1))
	_ = base.Insert("foo", NewMapping(fooBase))

	overlay := NewEmptyMapping()
	fooOverlay := NewEmptyMapping()
	_ = fooOverlay.Insert("b", NewInt(2))
	_ = overlay.Insert("~foo", NewMapping(fooOverlay))

	s.Require().NoError(base.Merge(overlay))

	fooVal, _ := base.GetString("foo")
	s.Require().False(fooVal.IsValueList())
	fooMap, _ := fooVal.AsMapping()
	_, hasA := fooMap.GetString("a")
	s.Assert().False(hasA)
	bVal, hasB := fooMap.GetString("b")
	s.Require().True(hasB)
	n, _ := bVal.AsNumber()
	s.Assert().Equal(int64(2), n.Int)
}

// Test_s6_constant_violation exercises spec.md S6.
func (s *MappingTestSuite) Test_s6_constant_violation() {
	base := NewEmptyMapping()
	_ = base.Insert("=c", NewLiteral("p"))

	overlay := NewEmptyMapping()
	_ = overlay.Insert("c", NewLiteral("o"))

	err := base.Merge(overlay)
	s.Require().Error(err)
	s.Assert().Equal("cannot overwrite constant key c", err.Error())
}

// Test_s10_raw_string_embedding exercises spec.md S10.
func (s *MappingTestSuite) Test_s10_raw_string_embedding() {
	foo := NewEmptyMapping()
	_ = foo.Insert("bar", NewLiteral("bar"))
	_ = foo.Insert("baz", NewLiteral("baz"))

	fooVal := NewMapping(foo)
	s.Assert().Equal(`{"bar":"bar","baz":"baz"}`, fooVal.RawString())
}

func (s *MappingTestSuite) Test_insertion_order_preserved_across_merges() {
	m := NewEmptyMapping()
	_ = m.Insert("z", NewLiteral("1"))
	_ = m.Insert("a", NewLiteral("2"))

	overlay := NewEmptyMapping()
	_ = overlay.Insert("m", NewLiteral("3"))
	_ = overlay.Insert("z", NewLiteral("4"))

	s.Require().NoError(m.Merge(overlay))
	s.Assert().Equal([]string{"z", "a", "m"}, m.Keys())
}

func (s *MappingTestSuite) Test_flatten_null_absorbs_earlier_layers() {
	layers := NewValueList([]*Value{NewLiteral("x"), NewNull()})
	flat, err := Flatten(layers)
	s.Require().NoError(err)
	s.Assert().True(flat.IsNull())
}

func (s *MappingTestSuite) Test_flatten_scalar_over_container_fails() {
	seq := NewSequence([]*Value{NewInt(1)})
	layers := NewValueList([]*Value{seq, NewLiteral("x")})
	_, err := Flatten(layers)
	s.Require().Error(err)
}

func (s *MappingTestSuite) Test_flatten_sequence_concatenates() {
	a := NewSequence([]*Value{NewInt(1)})
	b := NewSequence([]*Value{NewInt(2)})
	layers := NewValueList([]*Value{a, b})
	flat, err := Flatten(layers)
	s.Require().NoError(err)
	items, _ := flat.AsSequence()
	s.Assert().Len(items, 2)
}

func TestMappingTestSuite(t *testing.T) {
	suite.Run(t, new(MappingTestSuite))
}
