package analysisService

import (
	"FaceDiagnosisGolang/internal/api/analysis"
	analysisRepository "FaceDiagnosisGolang/internal/api/analysis/repository"
	"FaceDiagnosisGolang/internal/entity"
	"FaceDiagnosisGolang/pkg/faceshape"
	"FaceDiagnosisGolang/pkg/gemini"
	landmarkPkg "FaceDiagnosisGolang/pkg/landmark"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	ProviderWebsocket   = "websocket"
	ProviderGemini      = "gemini"
	ProviderFingerprint = "fingerprint"
)

type IAnalysisService interface {
	Analyze(ctx context.Context, image []byte) (*analysis.FaceAnalyzeResponse, error)
	Diagnose(ctx context.Context, req analysis.DiagnoseRequest) (*analysis.DiagnoseResponse, error)
	ProcessFrame(frame []byte) (*entity.PreviewResult, error)
}

type analysisService struct {
	log        *logrus.Logger
	sessions   analysisRepository.Repository
	landmarker landmarkPkg.ILandmarker
	gemini     gemini.IGemini
	provider   string
	thresholds faceshape.Thresholds
}

func NewAnalysisService(
	log *logrus.Logger,
	sessions analysisRepository.Repository,
	landmarker landmarkPkg.ILandmarker,
	gemini gemini.IGemini,
	provider string,
	thresholds faceshape.Thresholds,
) IAnalysisService {
	return &analysisService{
		log:        log,
		sessions:   sessions,
		landmarker: landmarker,
		gemini:     gemini,
		provider:   provider,
		thresholds: thresholds,
	}
}
