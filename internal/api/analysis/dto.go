package analysis

import "FaceDiagnosisGolang/pkg/faceshape"

type AnalyzeRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
}

type FaceAnalyzeResponse struct {
	AnalysisID            string                  `json:"analysis_id"`
	FaceShape             faceshape.Shape         `json:"face_shape"`
	Landmarks             faceshape.LandmarkSet   `json:"landmarks"`
	Features              faceshape.FeatureVector `json:"features"`
	Quality               faceshape.ScoreReport   `json:"quality"`
	Symmetry              faceshape.ScoreReport   `json:"symmetry"`
	RecommendationPreview string                  `json:"recommendation_preview"`
}

type DiagnoseRequest struct {
	AnalysisID      string                `json:"analysis_id" validate:"required,min=10"`
	StylePreference string                `json:"style_preference"`
	Focus           string                `json:"focus"`
	Landmarks       faceshape.LandmarkSet `json:"landmarks,omitempty"`
}

type DiagnoseResult struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Palette     []string `json:"palette"`
	Celebrity   string   `json:"celebrity"`
	CareTips    []string `json:"care_tips"`
	NextSteps   []string `json:"next_steps"`
}

type DiagnoseResponse struct {
	AnalysisID string          `json:"analysis_id"`
	FaceShape  faceshape.Shape `json:"face_shape"`
	Result     DiagnoseResult  `json:"result"`
}
