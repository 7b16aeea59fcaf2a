package analysisHandler

import (
	analysisService "FaceDiagnosisGolang/internal/api/analysis/service"
	"FaceDiagnosisGolang/internal/middleware"
	"FaceDiagnosisGolang/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
	utils           utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as analysisService.IAnalysisService,
	utils utils.IUtils,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: as,
		log:             log,
		validator:       validator,
		middleware:      middleware,
		utils:           utils,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	preview := srv.Group("/analysis")
	preview.Use("/ws", wsMiddleware)
	preview.Get("/ws", websocket.New(h.handlePreviewWebSocket))

	srv.Post("/analysis", h.Analyze)
	srv.Post("/diagnose", h.Diagnose)
}
