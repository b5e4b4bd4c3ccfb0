package transformation

// SquareType identifies what happens when a player lands on a board square
type SquareType string

// Square variants
const (
	SquareEmpty          SquareType = "EMPTY"
	SquareInspiration    SquareType = "INSPIRATION"
	SquareObstacle       SquareType = "OBSTACLE"
	SquareAngel          SquareType = "ANGEL"
	SquareService        SquareType = "SERVICE"
	SquareIntuition      SquareType = "INTUITION"
	SquareUniverse       SquareType = "UNIVERSE"
	SquareTransformation SquareType = "TRANSFORMATION"
	SquareMiracle        SquareType = "MIRACLE"
	SquareBlessing       SquareType = "BLESSING"
	SquareAppreciation   SquareType = "APPRECIATION"
	SquareTear           SquareType = "TEAR"
)

// SquareTypes lists all twelve variants
var SquareTypes = []SquareType{
	SquareEmpty,
	SquareInspiration,
	SquareObstacle,
	SquareAngel,
	SquareService,
	SquareIntuition,
	SquareUniverse,
	SquareTransformation,
	SquareMiracle,
	SquareBlessing,
	SquareAppreciation,
	SquareTear,
}

var squareNames = map[SquareType]string{
	SquareEmpty:          "Passage",
	SquareInspiration:    "Inspiration",
	SquareObstacle:       "Obstacle",
	SquareAngel:          "Angel",
	SquareService:        "Service",
	SquareIntuition:      "Intuition",
	SquareUniverse:       "Universal Feedback",
	SquareTransformation: "Transformation",
	SquareMiracle:        "Miracle",
	SquareBlessing:       "Blessing",
	SquareAppreciation:   "Appreciation",
	SquareTear:           "Tear",
}

// IsValid reports whether s is one of the twelve variants
func (s SquareType) IsValid() bool {
	_, ok := squareNames[s]
	return ok
}

// DisplayName returns the human readable square name
func (s SquareType) DisplayName() string {
	if name, ok := squareNames[s]; ok {
		return name
	}
	return string(s)
}

// String implements fmt.Stringer
func (s SquareType) String() string {
	return string(s)
}
