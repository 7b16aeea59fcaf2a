package faceshape

import (
	"fmt"
	"math"
)

const (
	scoreBandExcellent = 0.85
	scoreBandGood      = 0.70

	// A mean left/right offset of a quarter face width zeroes the score.
	asymmetrySensitivity = 4.0

	qualityFloor   = 0.40
	qualityCeiling = 0.95

	// Fraction of the frame a well-framed face tends to cover.
	idealFrameCoverage = 0.35
)

var spanPairs = [][2]Role{
	{RoleJawCornerLeft, RoleJawCornerRight},
	{RoleCheekboneLeft, RoleCheekboneRight},
	{RoleForeheadLeft, RoleForeheadRight},
	{RoleTempleLeft, RoleTempleRight},
}

// Symmetry scores how evenly the bilateral landmarks sit around the
// vertical midline through the chin and forehead center.
func Symmetry(ls LandmarkSet) (ScoreReport, error) {
	if missing := ls.MissingRoles(); len(missing) > 0 {
		return ScoreReport{}, fmt.Errorf("%w: %s", ErrIncompleteLandmarks, joinRoles(missing))
	}

	faceWidth := widestSpan(ls)
	if faceWidth <= 0 {
		return ScoreReport{}, fmt.Errorf("%w: face has no horizontal extent", ErrDegenerateGeometry)
	}

	axisX := (ls[RoleChinTip].X + ls[RoleForeheadCenter].X) / 2

	var total float64
	for _, pair := range bilateralPairs {
		left := math.Abs(ls[pair[0]].X - axisX)
		right := math.Abs(ls[pair[1]].X - axisX)
		total += math.Abs(left - right)
	}
	meanOffset := total / float64(len(bilateralPairs)) / faceWidth

	score := clamp01(1 - asymmetrySensitivity*meanOffset)

	return ScoreReport{Score: score, Label: symmetryLabel(score)}, nil
}

// Quality grades how much of the frame the face fills. Tiny faces in a
// large frame carry too little landmark detail to trust.
func Quality(ls LandmarkSet, frameWidth, frameHeight int) (ScoreReport, error) {
	if missing := ls.MissingRoles(); len(missing) > 0 {
		return ScoreReport{}, fmt.Errorf("%w: %s", ErrIncompleteLandmarks, joinRoles(missing))
	}
	if frameWidth <= 0 || frameHeight <= 0 {
		return ScoreReport{}, fmt.Errorf("%w: %dx%d", ErrInvalidFrame, frameWidth, frameHeight)
	}

	faceHeight := distance(ls[RoleChinTip], ls[RoleForeheadCenter])
	faceWidth := widestSpan(ls)
	if faceHeight <= 0 || faceWidth <= 0 {
		return ScoreReport{}, fmt.Errorf("%w: face has no extent", ErrDegenerateGeometry)
	}

	coverage := (faceWidth * faceHeight) / (float64(frameWidth) * float64(frameHeight))
	filled := clamp01(coverage / idealFrameCoverage)

	score := qualityFloor + filled*(qualityCeiling-qualityFloor)

	return ScoreReport{Score: score, Label: qualityLabel(score)}, nil
}

func widestSpan(ls LandmarkSet) float64 {
	widest := 0.0
	for _, pair := range spanPairs {
		if span := distance(ls[pair[0]], ls[pair[1]]); span > widest {
			widest = span
		}
	}
	return widest
}

func symmetryLabel(score float64) string {
	switch {
	case score >= scoreBandExcellent:
		return "excellent symmetry"
	case score >= scoreBandGood:
		return "well balanced"
	default:
		return "noticeable asymmetry"
	}
}

func qualityLabel(score float64) string {
	switch {
	case score >= scoreBandExcellent:
		return "very clear"
	case score >= scoreBandGood:
		return "bright enough"
	default:
		return "slightly dim"
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
