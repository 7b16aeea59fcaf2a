package faceshape

import (
	"math"
	"os"
	"strconv"
)

type Thresholds struct {
	NarrowJawRatio   float64
	NarrowCheekRatio float64
	WidthTolerance   float64
	OblongAspect     float64
	SquareJawAngle   float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		NarrowJawRatio:   0.32,
		NarrowCheekRatio: 0.36,
		WidthTolerance:   0.05,
		OblongAspect:     1.4,
		SquareJawAngle:   130,
	}
}

func ThresholdsFromEnv() Thresholds {
	t := DefaultThresholds()
	overrideFloat(&t.NarrowJawRatio, "CLASSIFIER_NARROW_JAW_RATIO")
	overrideFloat(&t.NarrowCheekRatio, "CLASSIFIER_NARROW_CHEEK_RATIO")
	overrideFloat(&t.WidthTolerance, "CLASSIFIER_WIDTH_TOLERANCE")
	overrideFloat(&t.OblongAspect, "CLASSIFIER_OBLONG_ASPECT")
	overrideFloat(&t.SquareJawAngle, "CLASSIFIER_SQUARE_JAW_ANGLE")
	return t
}

func overrideFloat(target *float64, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if value, err := strconv.ParseFloat(raw, 64); err == nil && value > 0 {
		*target = value
	}
}

// Classify maps a feature vector to exactly one shape. The branches are
// ordered, so every vector lands somewhere and equal inputs always land
// in the same place.
func Classify(f FeatureVector, t Thresholds) Shape {
	if f.JawWidth < t.NarrowJawRatio {
		if f.CheekWidth < t.NarrowCheekRatio {
			return ShapeRound
		}
		if widthsBalanced(f, t.WidthTolerance) {
			return ShapeOval
		}
		if f.FaceWidth > 0 && f.FaceHeight/f.FaceWidth > t.OblongAspect {
			return ShapeOblong
		}
		return ShapeDiamond
	}
	if f.JawAngle > t.SquareJawAngle {
		return ShapeSquare
	}
	return ShapeInvertedTriangle
}

// widthsBalanced reports whether the three normalized widths sit within
// tolerance of each other pairwise.
func widthsBalanced(f FeatureVector, tolerance float64) bool {
	return math.Abs(f.ForeheadWidth-f.CheekWidth) <= tolerance &&
		math.Abs(f.CheekWidth-f.JawWidth) <= tolerance &&
		math.Abs(f.ForeheadWidth-f.JawWidth) <= tolerance
}
