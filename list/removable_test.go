package list

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RemovableListTestSuite struct {
	suite.Suite
}

func makeABC() *RemovableList {
	return RemovableListFrom([]string{"a", "b", "c"})
}

func makeDEF() *RemovableList {
	return RemovableListFrom([]string{"d", "e", "f"})
}

func (s *RemovableListTestSuite) Test_remove_existing() {
	l := makeABC()
	l.AppendIfNew("~b")
	s.Assert().Equal([]string{"a", "c"}, l.Items())
	s.Assert().Empty(l.negations)
}

func (s *RemovableListTestSuite) Test_remove_nonexisting_stores_negation() {
	l := makeABC()
	l.AppendIfNew("~d")
	s.Assert().Equal([]string{"a", "b", "c"}, l.Items())
	s.Assert().Equal([]string{"d"}, l.negations)
}

func (s *RemovableListTestSuite) Test_negate_then_add_cancels() {
	l := makeABC()
	l.AppendIfNew("~d")
	l.AppendIfNew("d")
	s.Assert().Equal([]string{"a", "b", "c"}, l.Items())
	s.Assert().Empty(l.negations)
}

// Test_s8_negation_in_applications exercises spec.md S8.
func (s *RemovableListTestSuite) Test_s8_negation_in_applications() {
	a := RemovableListFrom([]string{"app1", "app2"})
	b := RemovableListFrom([]string{"~app1"})
	a.Merge(b)
	s.Assert().Equal([]string{"app2"}, a.Items())
}

func (s *RemovableListTestSuite) Test_merge_add_store_removal() {
	l := makeABC()
	o := RemovableListFrom([]string{"d"})
	o.AppendIfNew("~c")
	o.AppendIfNew("~e")
	l.Merge(o)

	s.Assert().Equal([]string{"a", "b", "d"}, l.Items())
	s.Assert().Equal([]string{"e"}, l.negations)
}

func (s *RemovableListTestSuite) Test_merge_add_apply_removal() {
	l := makeABC()
	l.AppendIfNew("~d")
	o := RemovableListFrom([]string{"d"})
	l.Merge(o)

	s.Assert().Equal([]string{"a", "b", "c"}, l.Items())
	s.Assert().Empty(l.negations)
}

func (s *RemovableListTestSuite) Test_merge_plain() {
	l := makeABC()
	o := makeDEF()
	l.Merge(o)
	s.Assert().Equal([]string{"a", "b", "c", "d", "e", "f"}, l.Items())
}

func TestRemovableListTestSuite(t *testing.T) {
	suite.Run(t, new(RemovableListTestSuite))
}
