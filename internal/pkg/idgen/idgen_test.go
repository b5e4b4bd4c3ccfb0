package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lumina-api/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestSequential() {
	gen := idgen.NewSequential("sess")
	s.Assert().Equal("sess_1", gen.Generate())
	s.Assert().Equal("sess_2", gen.Generate())

	bare := idgen.NewSequential("")
	s.Assert().Equal("1", bare.Generate())
}

func (s *IDGenTestSuite) TestUUIDIsPrefixedAndUnique() {
	gen := idgen.NewUUID("log")
	a, b := gen.Generate(), gen.Generate()

	s.Assert().True(strings.HasPrefix(a, "log_"))
	s.Assert().NotEqual(a, b)
	s.Assert().Len(a, len("log_")+36)
}
