package faceshape

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleChinTip        Role = "chin_tip"
	RoleForeheadCenter Role = "forehead_center"
	RoleJawCornerLeft  Role = "jaw_corner_left"
	RoleJawCornerRight Role = "jaw_corner_right"
	RoleJawlineLeft    Role = "jawline_left"
	RoleJawlineRight   Role = "jawline_right"
	RoleCheekboneLeft  Role = "cheekbone_left"
	RoleCheekboneRight Role = "cheekbone_right"
	RoleTempleLeft     Role = "temple_left"
	RoleTempleRight    Role = "temple_right"
	RoleForeheadLeft   Role = "forehead_left"
	RoleForeheadRight  Role = "forehead_right"
	RoleEyeOuterLeft   Role = "eye_outer_left"
	RoleEyeOuterRight  Role = "eye_outer_right"
)

var requiredRoles = []Role{
	RoleChinTip,
	RoleForeheadCenter,
	RoleJawCornerLeft,
	RoleJawCornerRight,
	RoleJawlineLeft,
	RoleJawlineRight,
	RoleCheekboneLeft,
	RoleCheekboneRight,
	RoleTempleLeft,
	RoleTempleRight,
	RoleForeheadLeft,
	RoleForeheadRight,
	RoleEyeOuterLeft,
	RoleEyeOuterRight,
}

var bilateralPairs = [][2]Role{
	{RoleJawCornerLeft, RoleJawCornerRight},
	{RoleJawlineLeft, RoleJawlineRight},
	{RoleCheekboneLeft, RoleCheekboneRight},
	{RoleTempleLeft, RoleTempleRight},
	{RoleForeheadLeft, RoleForeheadRight},
	{RoleEyeOuterLeft, RoleEyeOuterRight},
}

func RequiredRoles() []Role {
	roles := make([]Role, len(requiredRoles))
	copy(roles, requiredRoles)
	return roles
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type LandmarkSet map[Role]Point

func (ls LandmarkSet) MissingRoles() []Role {
	var missing []Role
	for _, role := range requiredRoles {
		if _, ok := ls[role]; !ok {
			missing = append(missing, role)
		}
	}
	return missing
}

func (ls LandmarkSet) Clone() LandmarkSet {
	clone := make(LandmarkSet, len(ls))
	for role, point := range ls {
		clone[role] = point
	}
	return clone
}

type FeatureVector struct {
	JawWidth            float64 `json:"jaw_width"`
	CheekWidth          float64 `json:"cheek_width"`
	ForeheadWidth       float64 `json:"forehead_width"`
	FaceHeight          float64 `json:"face_height"`
	FaceWidth           float64 `json:"face_width"`
	CheekboneProtrusion float64 `json:"cheekbone_protrusion"`
	JawAngle            float64 `json:"jaw_angle"`
}

type Shape string

const (
	ShapeRound            Shape = "round"
	ShapeOval             Shape = "oval"
	ShapeOblong           Shape = "oblong"
	ShapeDiamond          Shape = "diamond"
	ShapeSquare           Shape = "square"
	ShapeInvertedTriangle Shape = "inverted-triangle"
)

var canonicalShapes = []Shape{
	ShapeRound,
	ShapeOval,
	ShapeOblong,
	ShapeDiamond,
	ShapeSquare,
	ShapeInvertedTriangle,
}

// Dataset sources label the same geometry under several names, so the
// aliases are accepted everywhere a label comes in from outside.
var shapeAliases = map[string]Shape{
	"egg":       ShapeOval,
	"base":      ShapeSquare,
	"heart":     ShapeInvertedTriangle,
	"triangle":  ShapeInvertedTriangle,
	"rectangle": ShapeOblong,
}

func Shapes() []Shape {
	shapes := make([]Shape, len(canonicalShapes))
	copy(shapes, canonicalShapes)
	return shapes
}

func ParseShape(label string) (Shape, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, shape := range canonicalShapes {
		if normalized == string(shape) {
			return shape, nil
		}
	}
	if shape, ok := shapeAliases[normalized]; ok {
		return shape, nil
	}
	return "", ErrUnknownShape
}

type ScoreReport struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

var (
	ErrIncompleteLandmarks = errors.New("landmark set is missing required roles")
	ErrDegenerateGeometry  = errors.New("landmark geometry is degenerate")
	ErrInvalidFrame        = errors.New("frame dimensions are invalid")
	ErrUnknownShape        = errors.New("unknown face shape label")
)
