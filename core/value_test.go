package core

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ValueTestSuite struct {
	suite.Suite
}

func (s *ValueTestSuite) Test_decodes_int_not_float() {
	var v Value
	s.Require().NoError(yaml.Unmarshal([]byte("42"), &v))
	s.Assert().True(v.IsNumber())
	n, _ := v.AsNumber()
	s.Assert().False(n.IsFloat)
	s.Assert().Equal(int64(42), n.Int)
}

func (s *ValueTestSuite) Test_decodes_float() {
	var v Value
	s.Require().NoError(yaml.Unmarshal([]byte("4.2"), &v))
	n, _ := v.AsNumber()
	s.Assert().True(n.IsFloat)
	s.Assert().Equal(4.2, n.Float)
}

func (s *ValueTestSuite) Test_decodes_bool() {
	var v Value
	s.Require().NoError(yaml.Unmarshal([]byte("true"), &v))
	b, ok := v.AsBool()
	s.Require().True(ok)
	s.Assert().True(b)
}

func (s *ValueTestSuite) Test_decodes_string_as_string_kind_not_literal() {
	var v Value
	s.Require().NoError(yaml.Unmarshal([]byte(`"${foo}"`), &v))
	s.Assert().True(v.IsString())
}

func (s *ValueTestSuite) Test_decodes_null() {
	var v Value
	s.Require().NoError(yaml.Unmarshal([]byte("~"), &v))
	s.Assert().True(v.IsNull())
}

func (s *ValueTestSuite) Test_strip_prefix_const() {
	key, constFlag, overrideFlag := StripPrefix("=foo")
	s.Assert().Equal("foo", key)
	s.Assert().True(constFlag)
	s.Assert().False(overrideFlag)
}

func (s *ValueTestSuite) Test_strip_prefix_override() {
	key, constFlag, overrideFlag := StripPrefix("~foo")
	s.Assert().Equal("foo", key)
	s.Assert().False(constFlag)
	s.Assert().True(overrideFlag)
}

func (s *ValueTestSuite) Test_strip_prefix_none() {
	key, constFlag, overrideFlag := StripPrefix("foo")
	s.Assert().Equal("foo", key)
	s.Assert().False(constFlag)
	s.Assert().False(overrideFlag)
}

func (s *ValueTestSuite) Test_raw_string_mapping_sorted_keys() {
	m := NewEmptyMapping()
	s.Require().NoError(m.Insert("bar", NewLiteral("bar")))
	s.Require().NoError(m.Insert("baz", NewLiteral("baz")))
	v := NewMapping(m)
	s.Assert().Equal(`{"bar":"bar","baz":"baz"}`, v.RawString())
}

func (s *ValueTestSuite) Test_raw_string_null_is_none() {
	s.Assert().Equal("None", NewNull().RawString())
}

func (s *ValueTestSuite) Test_raw_string_bool() {
	s.Assert().Equal("true", NewBool(true).RawString())
	s.Assert().Equal("false", NewBool(false).RawString())
}

func (s *ValueTestSuite) Test_get_sequence_by_index() {
	v := NewSequence([]*Value{NewLiteral("a"), NewLiteral("b")})
	item, ok := v.Get("1")
	s.Require().True(ok)
	lit, _ := item.AsLiteral()
	s.Assert().Equal("b", lit)
}

func (s *ValueTestSuite) Test_equal_mappings_ignore_insertion_order() {
	m1 := NewEmptyMapping()
	_ = m1.Insert("a", NewLiteral("1"))
	_ = m1.Insert("b", NewLiteral("2"))

	m2 := NewEmptyMapping()
	_ = m2.Insert("b", NewLiteral("2"))
	_ = m2.Insert("a", NewLiteral("1"))

	s.Assert().True(NewMapping(m1).Equal(NewMapping(m2)))
	s.Assert().Equal(NewMapping(m1).Hash(), NewMapping(m2).Hash())
}

func TestValueTestSuite(t *testing.T) {
	suite.Run(t, new(ValueTestSuite))
}
