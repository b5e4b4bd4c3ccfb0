package transformation_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

type ProgressTestSuite struct {
	suite.Suite
}

func TestProgressSuite(t *testing.T) {
	suite.Run(t, new(ProgressTestSuite))
}

func (s *ProgressTestSuite) TestNewProgress() {
	p := transformation.NewProgress("  find my voice ")

	s.Assert().Equal("find my voice", p.Intention)
	s.Assert().Equal(transformation.LevelPhysical, p.CurrentLevel)
	s.Assert().Zero(p.Position)
	s.Assert().Zero(p.AwarenessTokens)
	s.Assert().Zero(p.PainTokens)
	s.Assert().Zero(p.ServiceTokens)
	s.Assert().Empty(p.Angels)
	s.Assert().NoError(p.Validate())
}

func (s *ProgressTestSuite) TestCloneIsDeep() {
	p := transformation.NewProgress("calm")
	p.Angels = append(p.Angels, "Patience")

	c := p.Clone()
	c.Angels[0] = "Courage"
	c.PainTokens = 3

	s.Assert().Equal("Patience", p.Angels[0])
	s.Assert().Zero(p.PainTokens)
	s.Assert().Nil((*transformation.Progress)(nil).Clone())
}

func (s *ProgressTestSuite) TestValidate() {
	testCases := []struct {
		name   string
		mutate func(p *transformation.Progress)
	}{
		{"negative pain", func(p *transformation.Progress) { p.PainTokens = -1 }},
		{"negative awareness", func(p *transformation.Progress) { p.AwarenessTokens = -2 }},
		{"negative service", func(p *transformation.Progress) { p.ServiceTokens = -3 }},
		{"position past track", func(p *transformation.Progress) { p.Position = transformation.TrackLength + 1 }},
		{"unknown level", func(p *transformation.Progress) { p.CurrentLevel = "ASTRAL" }},
		{"blank intention", func(p *transformation.Progress) { p.Intention = " " }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			p := transformation.NewProgress("calm")
			tc.mutate(p)
			err := p.Validate()
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *ProgressTestSuite) TestCanClearPain() {
	p := transformation.NewProgress("calm")
	s.Assert().False(p.CanClearPain())

	p.PainTokens = 1
	s.Assert().False(p.CanClearPain())

	p.AwarenessTokens = 1
	s.Assert().True(p.CanClearPain())
}

func (s *ProgressTestSuite) TestCardSource() {
	s.Assert().True(transformation.CardSourceEnvelope.IsValid())
	s.Assert().True(transformation.CardSourceDeck.IsValid())
	s.Assert().False(transformation.CardSource("POCKET").IsValid())
	s.Assert().Equal("subconscious envelope", transformation.CardSourceEnvelope.DisplayName())
}
