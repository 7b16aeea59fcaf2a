package analysis

import (
	"net/http"

	"FaceDiagnosisGolang/pkg/response"
)

var (
	ErrNoFaceDetected      = response.NewError(http.StatusBadRequest, "no face detected in the image")
	ErrIncompleteLandmarks = response.NewError(http.StatusBadRequest, "landmark set is incomplete")
	ErrDegenerateGeometry  = response.NewError(http.StatusBadRequest, "landmark geometry is degenerate")
	ErrSessionNotFound     = response.NewError(http.StatusNotFound, "analysis session not found")
	ErrExtractionFailed    = response.NewError(http.StatusInternalServerError, "landmark extraction failed")
)
