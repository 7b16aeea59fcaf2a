package entity

import "FaceDiagnosisGolang/pkg/faceshape"

type LandmarkExtraction struct {
	FaceDetected bool                  `json:"face_detected"`
	ImageWidth   int                   `json:"image_width"`
	ImageHeight  int                   `json:"image_height"`
	Landmarks    faceshape.LandmarkSet `json:"landmarks"`
}

type PreviewResult struct {
	FaceDetected bool                   `json:"face_detected"`
	FaceShape    faceshape.Shape        `json:"face_shape,omitempty"`
	Landmarks    faceshape.LandmarkSet  `json:"landmarks,omitempty"`
	Quality      *faceshape.ScoreReport `json:"quality,omitempty"`
	Instructions []string               `json:"instructions,omitempty"`
}
