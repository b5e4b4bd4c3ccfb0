package transformation

// Level is one of the four sequential life domains a player moves through
type Level string

// Levels in play order
const (
	LevelPhysical  Level = "PHYSICAL"
	LevelEmotional Level = "EMOTIONAL"
	LevelMental    Level = "MENTAL"
	LevelSpiritual Level = "SPIRITUAL"
)

// Levels lists every level in play order
var Levels = []Level{LevelPhysical, LevelEmotional, LevelMental, LevelSpiritual}

var levelInfo = map[Level]struct {
	name        string
	description string
}{
	LevelPhysical:  {"Physical", "Grounding, action, reality"},
	LevelEmotional: {"Emotional", "Feeling, relationship, flow"},
	LevelMental:    {"Mental", "Belief, thought, clarity"},
	LevelSpiritual: {"Spiritual", "Essence, purpose, oneness"},
}

// IsValid reports whether l is a known level
func (l Level) IsValid() bool {
	_, ok := levelInfo[l]
	return ok
}

// Index returns the zero-based play order of l, or -1 for unknown levels
func (l Level) Index() int {
	for i, lvl := range Levels {
		if lvl == l {
			return i
		}
	}
	return -1
}

// Next returns the level that follows l. The second result is false for
// Spiritual (and unknown levels): there is nothing after it.
func (l Level) Next() (Level, bool) {
	i := l.Index()
	if i < 0 || i == len(Levels)-1 {
		return "", false
	}
	return Levels[i+1], true
}

// DisplayName returns the human readable level name
func (l Level) DisplayName() string {
	if info, ok := levelInfo[l]; ok {
		return info.name
	}
	return string(l)
}

// Description returns the short theme line of the level
func (l Level) Description() string {
	return levelInfo[l].description
}

// String implements fmt.Stringer
func (l Level) String() string {
	return string(l)
}
