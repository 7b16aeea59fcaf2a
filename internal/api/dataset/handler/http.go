package datasetHandler

import (
	datasetService "FaceDiagnosisGolang/internal/api/dataset/service"
	"FaceDiagnosisGolang/internal/middleware"
	"FaceDiagnosisGolang/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DatasetHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	datasetService datasetService.IDatasetService
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ds datasetService.IDatasetService,
	utils utils.IUtils,
) *DatasetHandler {
	return &DatasetHandler{
		datasetService: ds,
		log:            log,
		validator:      validator,
		middleware:     middleware,
		utils:          utils,
	}
}

func (h *DatasetHandler) Start(srv fiber.Router) {
	samples := srv.Group("/dataset")
	samples.Post("/samples", h.SubmitSample)
	samples.Get("/samples/:label", h.ListSamples)
	samples.Get("/summary", h.Summary)
	samples.Delete("/samples/:label/:file", h.RemoveSample)
}
