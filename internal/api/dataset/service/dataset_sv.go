package datasetService

import (
	"FaceDiagnosisGolang/internal/api/dataset"
	contextPkg "FaceDiagnosisGolang/pkg/context"
	"FaceDiagnosisGolang/pkg/faceshape"
	"FaceDiagnosisGolang/pkg/log"
	"fmt"
	"strings"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

// datasetClasses is the canonical class order used for storage prefixes and
// summary reports. "Heart" is the dataset name for the inverted-triangle shape.
var datasetClasses = []string{"Oval", "Round", "Square", "Heart", "Diamond", "Oblong"}

var shapeClasses = map[faceshape.Shape]string{
	faceshape.ShapeOval:             "Oval",
	faceshape.ShapeRound:            "Round",
	faceshape.ShapeSquare:           "Square",
	faceshape.ShapeInvertedTriangle: "Heart",
	faceshape.ShapeDiamond:          "Diamond",
	faceshape.ShapeOblong:           "Oblong",
}

func (s *datasetService) SubmitSample(ctx context.Context, label string, image []byte) (*dataset.DatasetSample, error) {
	requestID := contextPkg.GetRequestID(ctx)

	class, err := resolveClass(label)
	if err != nil {
		return nil, err
	}

	if err := s.utils.ValidateImageBytes(image); err != nil {
		return nil, err
	}

	normalized, err := s.utils.ReencodePNG(image)
	if err != nil {
		return nil, err
	}

	keys, err := s.s3.ListKeys(class + "/")
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"class":      class,
			"error":      err.Error(),
		}).Error("Failed to list dataset class")
		return nil, err
	}

	key, ok := nextSampleKey(class, keys, s.maxPerClass)
	if !ok {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"class":      class,
			"count":      len(keys),
		}).Warn("Dataset class is already full")
		return nil, dataset.ErrClassFull
	}

	location, err := s.s3.UploadBytes(key, normalized, "image/png")
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Error("Failed to upload dataset sample")
		return nil, dataset.ErrUploadFailed
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"class":      class,
		"key":        key,
	}).Info("Dataset sample stored")

	return &dataset.DatasetSample{
		Class: class,
		Key:   key,
		URL:   location,
	}, nil
}

func (s *datasetService) ListSamples(ctx context.Context, label string) (*dataset.ListSamplesResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	class, err := resolveClass(label)
	if err != nil {
		return nil, err
	}

	keys, err := s.s3.ListKeys(class + "/")
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"class":      class,
			"error":      err.Error(),
		}).Error("Failed to list dataset class")
		return nil, err
	}

	samples := make([]dataset.DatasetSample, 0, len(keys))
	for _, key := range keys {
		url, err := s.s3.PresignUrl(key)
		if err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"key":        key,
				"error":      err.Error(),
			}).Error("Failed to presign dataset sample")
			return nil, err
		}

		samples = append(samples, dataset.DatasetSample{
			Class: class,
			Key:   key,
			URL:   url,
		})
	}

	return &dataset.ListSamplesResponse{
		Class:   class,
		Count:   len(samples),
		Samples: samples,
	}, nil
}

func (s *datasetService) Summary(ctx context.Context) (*dataset.SummaryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	counts := make([]int, len(datasetClasses))

	var g errgroup.Group
	for i, class := range datasetClasses {
		g.Go(func() error {
			keys, err := s.s3.ListKeys(class + "/")
			if err != nil {
				return err
			}
			counts[i] = len(keys)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to summarize dataset")
		return nil, err
	}

	summary := &dataset.SummaryResponse{
		Classes: make([]dataset.ClassSummary, 0, len(datasetClasses)),
	}
	for i, class := range datasetClasses {
		summary.Classes = append(summary.Classes, dataset.ClassSummary{
			Class:    class,
			Count:    counts[i],
			Capacity: s.maxPerClass,
		})
		summary.Total += counts[i]

		if counts[i] == 0 {
			summary.Missing = append(summary.Missing, class)
		}
	}

	return summary, nil
}

func (s *datasetService) RemoveSample(ctx context.Context, label string, fileName string) error {
	requestID := contextPkg.GetRequestID(ctx)

	class, err := resolveClass(label)
	if err != nil {
		return err
	}

	if fileName == "" || strings.Contains(fileName, "/") {
		return dataset.ErrSampleNotFound
	}

	key := class + "/" + fileName

	keys, err := s.s3.ListKeys(class + "/")
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"class":      class,
			"error":      err.Error(),
		}).Error("Failed to list dataset class")
		return err
	}

	found := false
	for _, existing := range keys {
		if existing == key {
			found = true
			break
		}
	}
	if !found {
		return dataset.ErrSampleNotFound
	}

	if err := s.s3.DeleteFile(key); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Error("Failed to delete dataset sample")
		return err
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"key":        key,
	}).Info("Dataset sample removed")

	return nil
}

func resolveClass(label string) (string, error) {
	shape, err := faceshape.ParseShape(label)
	if err != nil {
		return "", dataset.ErrUnknownLabel
	}

	return shapeClasses[shape], nil
}

// nextSampleKey picks the lowest free slot so removed samples can be
// replaced without renaming the rest of the class.
func nextSampleKey(class string, existing []string, limit int) (string, bool) {
	if len(existing) >= limit {
		return "", false
	}

	taken := make(map[string]struct{}, len(existing))
	for _, key := range existing {
		taken[key] = struct{}{}
	}

	for n := 1; n <= limit; n++ {
		key := fmt.Sprintf("%s/%s%02d.png", class, class, n)
		if _, ok := taken[key]; !ok {
			return key, true
		}
	}

	return "", false
}
