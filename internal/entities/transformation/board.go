package transformation

// TrackLength is the number of steps in one level. Reaching it exactly is a
// graduation attempt.
const TrackLength = 52

// BoardLayout is the printed board. Position p lands on BoardLayout[p-1], so
// the first step after the start lands on the leading empty square. The last
// entries are never landed on because reaching TrackLength is a graduation
// attempt.
var BoardLayout = [TrackLength + 1]SquareType{
	SquareEmpty,
	SquareInspiration, SquareAngel, SquareObstacle, SquareService, SquareIntuition,
	SquareInspiration, SquareTear, SquareBlessing, SquareObstacle, SquareMiracle,
	SquareInspiration, SquareAngel, SquareService, SquareUniverse, SquareObstacle,
	SquareInspiration, SquareIntuition, SquareAngel, SquareService, SquareMiracle,
	SquareInspiration, SquareObstacle, SquareBlessing, SquareTear, SquareAngel,
	SquareIntuition, SquareInspiration, SquareService, SquareObstacle, SquareUniverse,
	SquareMiracle, SquareAngel, SquareInspiration, SquareObstacle, SquareIntuition,
	SquareBlessing, SquareService, SquareAngel, SquareInspiration, SquareObstacle,
	SquareTear, SquareMiracle, SquareIntuition, SquareAngel, SquareInspiration,
	SquareService, SquareObstacle, SquareUniverse, SquareInspiration, SquareBlessing,
	SquareAngel, SquareTransformation,
}

// SquareAt returns the square at a track position. The second result is
// false for the start square (position 0 or below).
func SquareAt(position int) (SquareType, bool) {
	if position < 1 {
		return "", false
	}
	return BoardLayout[(position-1)%len(BoardLayout)], true
}
