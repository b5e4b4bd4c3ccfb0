package narrative_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/lumina-api/internal/clients/narrative"
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

type LocaleTestSuite struct {
	suite.Suite
}

func TestLocaleSuite(t *testing.T) {
	suite.Run(t, new(LocaleTestSuite))
}

func (s *LocaleTestSuite) TestResolveLocale() {
	s.Assert().Equal(language.English, narrative.ResolveLocale(""))
	s.Assert().Equal(language.English, narrative.ResolveLocale("en-GB"))
	s.Assert().Equal(language.English, narrative.ResolveLocale("not a tag!"))
	s.Assert().Equal(language.SimplifiedChinese, narrative.ResolveLocale("zh-CN"))
	s.Assert().Equal(language.SimplifiedChinese, narrative.ResolveLocale("zh-Hans"))
}

func (s *LocaleTestSuite) TestFallbackContent() {
	card := narrative.FallbackCard("en")
	s.Assert().Equal("Silent Whisper", card.Title)
	s.Assert().Equal(transformation.Effect{Awareness: 1}, card.Effect)

	zh := narrative.FallbackCard("zh-CN")
	s.Assert().Equal("静默的低语", zh.Title)
	s.Assert().Equal(1, zh.Effect.Awareness)

	s.Assert().Equal("You have advanced to the next level.", narrative.FallbackGraduationMessage("en"))
}

func (s *LocaleTestSuite) TestThemesPerLevel() {
	for _, level := range transformation.Levels {
		s.Assert().NotEmpty(narrative.Themes("en", level), level)
		s.Assert().Len(narrative.Themes("zh", level), len(narrative.Themes("en", level)), level)
	}
	s.Assert().Contains(narrative.Themes("zh", transformation.LevelPhysical), "纪律")
}
