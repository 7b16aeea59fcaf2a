package analysisHandler

import (
	"FaceDiagnosisGolang/internal/api/analysis"
	contextPkg "FaceDiagnosisGolang/pkg/context"
	"FaceDiagnosisGolang/pkg/handlerUtil"
	"FaceDiagnosisGolang/pkg/log"
	"FaceDiagnosisGolang/pkg/utils"
	"encoding/base64"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *AnalysisHandler) Analyze(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing face analysis request")

	var image []byte

	file, err := ctx.FormFile("image")
	if err == nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")

		image, err = h.utils.ReadImageFile(file)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_image_file")
		}
	} else {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
		}).Debug("Processing JSON request")

		var req analysis.AnalyzeRequest
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
		}

		if err := h.validator.Struct(req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}

		image, err = base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return errHandler.Handle(ctx, requestID, utils.ErrUndecodableImage, ctx.Path(), "decode_base64_image")
		}
	}

	if err := h.utils.ValidateImageBytes(image); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image")
	}

	result, err := h.analysisService.Analyze(c, image)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_face")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":  requestID,
			"path":        ctx.Path(),
			"analysis_id": result.AnalysisID,
			"face_shape":  result.FaceShape,
		}).Info("Face analysis successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AnalysisHandler) Diagnose(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing diagnosis request")

	var req analysis.DiagnoseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.analysisService.Diagnose(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "diagnose_face")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":  requestID,
			"path":        ctx.Path(),
			"analysis_id": result.AnalysisID,
			"face_shape":  result.FaceShape,
		}).Info("Diagnosis successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
