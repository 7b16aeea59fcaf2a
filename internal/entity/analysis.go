package entity

import (
	"time"

	"FaceDiagnosisGolang/pkg/faceshape"
)

type AnalysisSession struct {
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Landmarks faceshape.LandmarkSet   `json:"landmarks"`
	FaceShape faceshape.Shape         `json:"face_shape"`
	Features  faceshape.FeatureVector `json:"features"`
	Quality   faceshape.ScoreReport   `json:"quality"`
	Symmetry  faceshape.ScoreReport   `json:"symmetry"`
}
