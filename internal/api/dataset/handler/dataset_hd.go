package datasetHandler

import (
	"FaceDiagnosisGolang/internal/api/dataset"
	contextPkg "FaceDiagnosisGolang/pkg/context"
	"FaceDiagnosisGolang/pkg/handlerUtil"
	"FaceDiagnosisGolang/pkg/log"
	"FaceDiagnosisGolang/pkg/utils"
	"errors"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *DatasetHandler) SubmitSample(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing dataset sample submission")

	req := dataset.SubmitSampleRequest{
		Label: ctx.FormValue("label"),
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, utils.ErrNoImageUploaded, ctx.Path(), "read_form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing file upload")

	image, err := h.utils.ReadImageFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_image_file")
	}

	sample, err := h.datasetService.SubmitSample(c, req.Label, image)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "submit_sample")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"key":        sample.Key,
		}).Info("Dataset sample submitted")
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, dataset.SampleResponse{
			Data: *sample,
		})
	}
}

func (h *DatasetHandler) ListSamples(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing dataset listing request")

	label := ctx.Params("label")
	if label == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("shape label is required"), ctx.Path())
	}

	result, err := h.datasetService.ListSamples(c, label)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_samples")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *DatasetHandler) Summary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing dataset summary request")

	summary, err := h.datasetService.Summary(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "dataset_summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, summary)
	}
}

func (h *DatasetHandler) RemoveSample(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing dataset sample removal")

	label := ctx.Params("label")
	file := ctx.Params("file")
	if label == "" || file == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("shape label and file name are required"), ctx.Path())
	}

	if err := h.datasetService.RemoveSample(c, label, file); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "remove_sample")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Sample deleted successfully",
		})
	}
}
