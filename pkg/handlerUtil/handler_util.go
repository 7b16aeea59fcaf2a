package handlerUtil

import (
	"FaceDiagnosisGolang/internal/api/analysis"
	"FaceDiagnosisGolang/internal/api/dataset"
	"FaceDiagnosisGolang/pkg/log"
	"FaceDiagnosisGolang/pkg/response"
	utilsPkg "FaceDiagnosisGolang/pkg/utils"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	// Analysis domain errors
	if errors.Is(err, analysis.ErrNoFaceDetected) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No face detected")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No face detected in the image",
			"code":    "NO_FACE_DETECTED",
		})
	}

	if errors.Is(err, analysis.ErrIncompleteLandmarks) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Landmark set is incomplete")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Face landmarks are incomplete",
			"code":    "INCOMPLETE_LANDMARKS",
		})
	}

	if errors.Is(err, analysis.ErrDegenerateGeometry) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Landmarks form a degenerate geometry")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Face landmarks do not form a valid face geometry",
			"code":    "DEGENERATE_GEOMETRY",
		})
	}

	if errors.Is(err, analysis.ErrSessionNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Analysis session not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Analysis session not found or expired",
			"code":    "SESSION_NOT_FOUND",
		})
	}

	if errors.Is(err, analysis.ErrExtractionFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Landmark extraction failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to extract face landmarks",
			"code":    "EXTRACTION_FAILED",
		})
	}

	// Dataset domain errors
	if errors.Is(err, dataset.ErrUnknownLabel) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Unknown face shape label")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown face shape label",
			"code":    "UNKNOWN_LABEL",
		})
	}

	if errors.Is(err, dataset.ErrClassFull) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Dataset class is full")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Dataset class already has the maximum number of samples",
			"code":    "CLASS_FULL",
		})
	}

	if errors.Is(err, dataset.ErrSampleNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Dataset sample not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Dataset sample not found",
			"code":    "SAMPLE_NOT_FOUND",
		})
	}

	if errors.Is(err, dataset.ErrUploadFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Failed to upload file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload file",
		})
	}

	// Image upload errors
	if errors.Is(err, utilsPkg.ErrNoImageUploaded) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No image uploaded")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image uploaded",
		})
	}

	if errors.Is(err, utilsPkg.ErrEmptyImage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Uploaded image is empty")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Uploaded image is empty",
		})
	}

	if errors.Is(err, utilsPkg.ErrUnsupportedImageType) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid file type")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Only images are allowed.",
		})
	}

	if errors.Is(err, utilsPkg.ErrImageTooLarge) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("File too large")
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File too large. Maximum size is 5MB.",
		})
	}

	if errors.Is(err, utilsPkg.ErrUndecodableImage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Image could not be decoded")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image could not be decoded",
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
