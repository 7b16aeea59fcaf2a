package faceshape

import (
	"fmt"
	"math"
	"strings"
)

// ComputeFeatures derives the normalized measurements used by Classify.
// Widths and the cheekbone protrusion are divided by the chin-to-forehead
// distance so the result does not depend on image resolution.
func ComputeFeatures(ls LandmarkSet) (FeatureVector, error) {
	if missing := ls.MissingRoles(); len(missing) > 0 {
		return FeatureVector{}, fmt.Errorf("%w: %s", ErrIncompleteLandmarks, joinRoles(missing))
	}

	faceHeight := distance(ls[RoleChinTip], ls[RoleForeheadCenter])
	if faceHeight <= 0 {
		return FeatureVector{}, fmt.Errorf("%w: chin and forehead center coincide", ErrDegenerateGeometry)
	}

	jawWidth := distance(ls[RoleJawCornerLeft], ls[RoleJawCornerRight])
	cheekWidth := distance(ls[RoleCheekboneLeft], ls[RoleCheekboneRight])
	foreheadWidth := distance(ls[RoleForeheadLeft], ls[RoleForeheadRight])
	templeWidth := distance(ls[RoleTempleLeft], ls[RoleTempleRight])

	faceWidth := math.Max(math.Max(jawWidth, cheekWidth), math.Max(foreheadWidth, templeWidth))

	protrusion := (math.Abs(ls[RoleCheekboneLeft].X-ls[RoleJawlineLeft].X) +
		math.Abs(ls[RoleCheekboneRight].X-ls[RoleJawlineRight].X)) / 2

	jawAngle, err := vertexAngle(ls[RoleChinTip], ls[RoleJawCornerLeft], ls[RoleJawCornerRight])
	if err != nil {
		return FeatureVector{}, err
	}

	return FeatureVector{
		JawWidth:            jawWidth / faceHeight,
		CheekWidth:          cheekWidth / faceHeight,
		ForeheadWidth:       foreheadWidth / faceHeight,
		FaceHeight:          faceHeight,
		FaceWidth:           faceWidth,
		CheekboneProtrusion: protrusion / faceHeight,
		JawAngle:            jawAngle,
	}, nil
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// vertexAngle returns the angle at vertex in degrees, formed by the rays
// toward a and b. The cosine is clamped before acos so floating point
// noise on collinear rays cannot produce NaN.
func vertexAngle(vertex, a, b Point) (float64, error) {
	ax, ay := a.X-vertex.X, a.Y-vertex.Y
	bx, by := b.X-vertex.X, b.Y-vertex.Y

	la := math.Hypot(ax, ay)
	lb := math.Hypot(bx, by)
	if la == 0 || lb == 0 {
		return 0, fmt.Errorf("%w: jaw corner coincides with chin", ErrDegenerateGeometry)
	}

	cos := (ax*bx + ay*by) / (la * lb)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi, nil
}

func joinRoles(roles []Role) string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return strings.Join(names, ", ")
}
