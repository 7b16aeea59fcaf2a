package dataset

import (
	"FaceDiagnosisGolang/pkg/response"
	"net/http"
)

var (
	ErrUnknownLabel   = response.NewError(http.StatusBadRequest, "unknown face shape label")
	ErrClassFull      = response.NewError(http.StatusConflict, "dataset class is full")
	ErrSampleNotFound = response.NewError(http.StatusNotFound, "dataset sample not found")
	ErrUploadFailed   = response.NewError(http.StatusInternalServerError, "failed to upload sample")
)
