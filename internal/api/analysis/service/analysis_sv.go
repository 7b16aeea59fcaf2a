package analysisService

import (
	"encoding/json"
	"errors"
	"strings"

	"FaceDiagnosisGolang/internal/api/analysis"
	"FaceDiagnosisGolang/internal/entity"
	contextPkg "FaceDiagnosisGolang/pkg/context"
	"FaceDiagnosisGolang/pkg/faceshape"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *analysisService) Analyze(ctx context.Context, image []byte) (*analysis.FaceAnalyzeResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	extraction, err := s.extractLandmarks(ctx, image)
	if err != nil {
		return nil, err
	}

	if !extraction.FaceDetected {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Debug("No face detected in uploaded image")
		return nil, analysis.ErrNoFaceDetected
	}

	features, err := faceshape.ComputeFeatures(extraction.Landmarks)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Debug("Landmark set rejected")
		return nil, translateGeometryError(err)
	}

	shape := faceshape.Classify(features, s.thresholds)

	symmetry, err := faceshape.Symmetry(extraction.Landmarks)
	if err != nil {
		return nil, translateGeometryError(err)
	}

	quality, err := faceshape.Quality(extraction.Landmarks, extraction.ImageWidth, extraction.ImageHeight)
	if err != nil {
		if errors.Is(err, faceshape.ErrInvalidFrame) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Landmark provider returned no frame dimensions")
			return nil, analysis.ErrExtractionFailed
		}
		return nil, translateGeometryError(err)
	}

	session, err := s.sessions.Create(ctx, entity.AnalysisSession{
		ID:        uuid.New().String(),
		Landmarks: extraction.Landmarks,
		FaceShape: shape,
		Features:  features,
		Quality:   quality,
		Symmetry:  symmetry,
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
		"face_shape": shape,
	}).Info("Face analysis completed")

	return &analysis.FaceAnalyzeResponse{
		AnalysisID:            session.ID,
		FaceShape:             shape,
		Landmarks:             extraction.Landmarks,
		Features:              features,
		Quality:               quality,
		Symmetry:              symmetry,
		RecommendationPreview: advicePreview(shape),
	}, nil
}

func (s *analysisService) Diagnose(ctx context.Context, req analysis.DiagnoseRequest) (*analysis.DiagnoseResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var session entity.AnalysisSession

	if len(req.Landmarks) > 0 {
		features, err := faceshape.ComputeFeatures(req.Landmarks)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": req.AnalysisID,
				"error":      err.Error(),
			}).Debug("Submitted landmark set rejected")
			return nil, translateGeometryError(err)
		}

		shape := faceshape.Classify(features, s.thresholds)

		symmetry, err := faceshape.Symmetry(req.Landmarks)
		if err != nil {
			return nil, translateGeometryError(err)
		}

		session, err = s.sessions.Update(ctx, req.AnalysisID, req.Landmarks, shape, features, symmetry)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		session, err = s.sessions.Get(ctx, req.AnalysisID)
		if err != nil {
			return nil, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
		"face_shape": session.FaceShape,
	}).Info("Diagnosis delivered")

	return &analysis.DiagnoseResponse{
		AnalysisID: session.ID,
		FaceShape:  session.FaceShape,
		Result:     buildDiagnosis(session.FaceShape, req.StylePreference, req.Focus),
	}, nil
}

func (s *analysisService) ProcessFrame(frame []byte) (*entity.PreviewResult, error) {
	extraction, err := s.extractLandmarks(context.Background(), frame)
	if err != nil {
		return nil, err
	}

	if !extraction.FaceDetected {
		return &entity.PreviewResult{
			FaceDetected: false,
			Instructions: []string{
				"Position your face inside the frame",
				"Look straight at the camera",
			},
		}, nil
	}

	features, err := faceshape.ComputeFeatures(extraction.Landmarks)
	if err != nil {
		// Preview stays lenient, a bad frame just asks for adjustment.
		return &entity.PreviewResult{
			FaceDetected: true,
			Landmarks:    extraction.Landmarks,
			Instructions: []string{
				"Hold still until the full outline is visible",
			},
		}, nil
	}

	preview := &entity.PreviewResult{
		FaceDetected: true,
		FaceShape:    faceshape.Classify(features, s.thresholds),
		Landmarks:    extraction.Landmarks,
	}

	if quality, err := faceshape.Quality(extraction.Landmarks, extraction.ImageWidth, extraction.ImageHeight); err == nil {
		preview.Quality = &quality
	}

	return preview, nil
}

func (s *analysisService) extractLandmarks(ctx context.Context, image []byte) (*entity.LandmarkExtraction, error) {
	switch s.provider {
	case ProviderGemini:
		raw, err := s.gemini.AnalyzeImage(ctx, image, landmarkPrompt)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Error("Gemini landmark extraction failed")
			return nil, analysis.ErrExtractionFailed
		}
		return parseLandmarkResponse(raw)
	case ProviderFingerprint:
		return fingerprintLandmarks(image), nil
	default:
		result, err := s.landmarker.ExtractLandmarks(image)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Error("Landmark service extraction failed")
			return nil, analysis.ErrExtractionFailed
		}
		return result, nil
	}
}

const landmarkPrompt = `
	Locate the single most prominent face in this image and return its landmark
	positions in pixel coordinates as JSON.
	Desired output format:
	{
		"face_detected": true,
		"image_width": 640,
		"image_height": 480,
		"landmarks": {
			"chin_tip": {"x": 312.0, "y": 410.5},
			"forehead_center": {"x": 310.0, "y": 120.0},
			"jaw_corner_left": {"x": 240.0, "y": 350.0},
			"jaw_corner_right": {"x": 384.0, "y": 350.0},
			"jawline_left": {"x": 262.0, "y": 385.0},
			"jawline_right": {"x": 362.0, "y": 385.0},
			"cheekbone_left": {"x": 225.0, "y": 265.0},
			"cheekbone_right": {"x": 400.0, "y": 265.0},
			"temple_left": {"x": 235.0, "y": 200.0},
			"temple_right": {"x": 390.0, "y": 200.0},
			"forehead_left": {"x": 248.0, "y": 150.0},
			"forehead_right": {"x": 376.0, "y": 150.0},
			"eye_outer_left": {"x": 255.0, "y": 230.0},
			"eye_outer_right": {"x": 370.0, "y": 230.0}
		}
	}
	Left and right are from the viewer's perspective. If no face is visible,
	return {"face_detected": false}.
	Return ONLY the JSON response, without any additional text.
	`

func parseLandmarkResponse(response string) (*entity.LandmarkExtraction, error) {
	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")

	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, errors.New("cannot find valid JSON in response")
	}

	jsonStr := response[jsonStart : jsonEnd+1]

	var extraction entity.LandmarkExtraction
	if err := json.Unmarshal([]byte(jsonStr), &extraction); err != nil {
		return nil, err
	}

	if extraction.FaceDetected && len(extraction.Landmarks) == 0 {
		return nil, errors.New("failed to extract landmark information")
	}

	return &extraction, nil
}

func translateGeometryError(err error) error {
	switch {
	case errors.Is(err, faceshape.ErrIncompleteLandmarks):
		return analysis.ErrIncompleteLandmarks
	case errors.Is(err, faceshape.ErrDegenerateGeometry):
		return analysis.ErrDegenerateGeometry
	default:
		return err
	}
}
