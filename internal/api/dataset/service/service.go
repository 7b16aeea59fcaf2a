package datasetService

import (
	"FaceDiagnosisGolang/internal/api/dataset"
	"FaceDiagnosisGolang/pkg/s3"
	"FaceDiagnosisGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IDatasetService interface {
	SubmitSample(ctx context.Context, label string, image []byte) (*dataset.DatasetSample, error)
	ListSamples(ctx context.Context, label string) (*dataset.ListSamplesResponse, error)
	Summary(ctx context.Context) (*dataset.SummaryResponse, error)
	RemoveSample(ctx context.Context, label string, fileName string) error
}

type datasetService struct {
	log         *logrus.Logger
	s3          s3.ItfS3
	utils       utils.IUtils
	maxPerClass int
}

func NewDatasetService(log *logrus.Logger, s3Client s3.ItfS3, utils utils.IUtils, maxPerClass int) IDatasetService {
	return &datasetService{
		log:         log,
		s3:          s3Client,
		utils:       utils,
		maxPerClass: maxPerClass,
	}
}
