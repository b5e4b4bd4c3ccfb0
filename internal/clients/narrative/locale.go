package narrative

import (
	"golang.org/x/text/language"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

var supportedTags = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var tagMatcher = language.NewMatcher(supportedTags)

// catalog holds every player visible string for one locale
type catalog struct {
	tag          language.Tag
	levelNames   map[transformation.Level]string
	squareNames  map[transformation.SquareType]string
	sourceNames  map[transformation.CardSource]string
	themes       map[transformation.Level][]string
	fallbackCard transformation.Card
	// graduationFallback is used when the provider fails
	graduationFallback string
	// graduationEmpty is used when the provider answers with nothing
	graduationEmpty string
	cardPrompt      cardPromptText
	graduation      string
}

// ResolveLocale matches tag against the supported locales. Unparseable or
// unknown tags resolve to English.
func ResolveLocale(tag string) language.Tag {
	if tag == "" {
		return language.English
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return language.English
	}
	_, index, _ := tagMatcher.Match(parsed)
	return supportedTags[index]
}

func catalogFor(tag string) *catalog {
	if ResolveLocale(tag) == language.SimplifiedChinese {
		return chineseCatalog
	}
	return englishCatalog
}

// FallbackCard returns the neutral card used whenever the provider is
// unconfigured or fails
func FallbackCard(locale string) *transformation.Card {
	c := catalogFor(locale).fallbackCard
	return &c
}

// FallbackGraduationMessage returns the generic congratulation
func FallbackGraduationMessage(locale string) string {
	return catalogFor(locale).graduationFallback
}

// Themes returns the awareness-token themes of a level
func Themes(locale string, level transformation.Level) []string {
	return append([]string(nil), catalogFor(locale).themes[level]...)
}
