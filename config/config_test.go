package config

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) Test_allows_missing_without_regexp_list() {
	c, err := New("nodes", "classes", true)
	s.Require().NoError(err)
	s.True(c.AllowsMissing("anything"))
}

func (s *ConfigTestSuite) Test_disallows_missing_when_flag_unset() {
	c, err := New("nodes", "classes", false)
	s.Require().NoError(err)
	s.False(c.AllowsMissing("anything"))
}

// Test_s12_regexp_allow_list exercises spec.md S12.
func (s *ConfigTestSuite) Test_s12_regexp_allow_list() {
	c, err := New("nodes", "classes", true, "^service\\.")
	s.Require().NoError(err)
	s.True(c.AllowsMissing("service.foo"))
	s.False(c.AllowsMissing("missing"))
}

func (s *ConfigTestSuite) Test_invalid_pattern_fails_construction() {
	_, err := New("nodes", "classes", true, "(unterminated")
	s.Require().Error(err)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
