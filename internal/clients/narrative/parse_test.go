package narrative

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lumina-api/internal/errors"
)

type ParseTestSuite struct {
	suite.Suite
}

func TestParseSuite(t *testing.T) {
	suite.Run(t, new(ParseTestSuite))
}

func (s *ParseTestSuite) TestStripCodeFence() {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding space", "  \n```json {\"a\":1} ```  ", `{"a":1}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, stripCodeFence(tc.input))
		})
	}
}

func (s *ParseTestSuite) TestParseCard() {
	card, err := parseCard("```json\n" + `{
		"title": "Boldness",
		"description": "Step forward.",
		"action": "Speak first today.",
		"effect": {"awareness": 2, "pain": -1.0}
	}` + "\n```")

	s.Require().NoError(err)
	s.Assert().Equal("Boldness", card.Title)
	s.Assert().Equal(2, card.Effect.Awareness)
	s.Assert().Equal(-1, card.Effect.Pain)
	s.Assert().Zero(card.Effect.Service)
}

func (s *ParseTestSuite) TestParseCardRejectsMalformed() {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"not json", "the universe is silent"},
		{"missing title", `{"description":"d","action":"a","effect":{}}`},
		{"missing action", `{"title":"t","description":"d","effect":{}}`},
		{"missing effect", `{"title":"t","description":"d","action":"a"}`},
		{"blank description", `{"title":"t","description":"  ","action":"a","effect":{}}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := parseCard(tc.input)
			s.Require().Error(err)
			s.Assert().True(IsMalformed(err))
			s.Assert().True(errors.IsInternal(err))
		})
	}
}
