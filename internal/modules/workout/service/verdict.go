package service

// Verdict classifies a new score against the personal best that stood
// before it. It is purely informational and never blocks persistence.
const (
	VerdictFirst = "first"
	VerdictWin   = "win"
	VerdictDraw  = "draw"
	VerdictLose  = "lose"
)

func Verdict(score float64, prevBest *float64) string {
	if prevBest == nil {
		return VerdictFirst
	}
	switch {
	case score > *prevBest:
		return VerdictWin
	case score == *prevBest:
		return VerdictDraw
	default:
		return VerdictLose
	}
}
