package datasetService_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"FaceDiagnosisGolang/internal/api/dataset"
	datasetService "FaceDiagnosisGolang/internal/api/dataset/service"
	"FaceDiagnosisGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeS3 struct {
	mu          sync.Mutex
	objects     map[string][]byte
	contentType map[string]string
	listErr     error
	uploadErr   error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		objects:     make(map[string][]byte),
		contentType: make(map[string]string),
	}
}

func (f *fakeS3) UploadBytes(key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return "", f.uploadErr
	}

	f.objects[key] = append([]byte(nil), data...)
	f.contentType[key] = contentType
	return "https://dataset-bucket.s3.amazonaws.com/" + key, nil
}

func (f *fakeS3) ListKeys(prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	keys := make([]string, 0)
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeS3) PresignUrl(fileName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.objects[fileName]; !ok {
		return "", errors.New("file does not exist")
	}
	return "https://dataset-bucket.s3.amazonaws.com/" + fileName + "?signed=true", nil
}

func (f *fakeS3) DeleteFile(fileName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, fileName)
	delete(f.contentType, fileName)
	return nil
}

func (f *fakeS3) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.objects[key]
	return ok
}

func (f *fakeS3) object(key string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.objects[key]
}

func jpegSample(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newService(store *fakeS3, maxPerClass int) datasetService.IDatasetService {
	return datasetService.NewDatasetService(quietLogger(), store, utils.New(), maxPerClass)
}

func seedSamples(t *testing.T, store *fakeS3, keys ...string) {
	t.Helper()

	for _, key := range keys {
		_, err := store.UploadBytes(key, []byte("seeded"), "image/png")
		require.NoError(t, err)
	}
}

func TestSubmitSampleStoresPNG(t *testing.T) {
	store := newFakeS3()
	svc := newService(store, 5)

	sample, err := svc.SubmitSample(context.Background(), "oval", jpegSample(t))
	require.NoError(t, err)

	require.Equal(t, "Oval", sample.Class)
	require.Equal(t, "Oval/Oval01.png", sample.Key)
	require.Equal(t, "https://dataset-bucket.s3.amazonaws.com/Oval/Oval01.png", sample.URL)

	require.True(t, store.has("Oval/Oval01.png"))
	require.True(t, bytes.HasPrefix(store.object("Oval/Oval01.png"), pngSignature))
	require.Equal(t, "image/png", store.contentType["Oval/Oval01.png"])
}

func TestSubmitSampleLabelAliases(t *testing.T) {
	testCases := []struct {
		label string
		key   string
	}{
		{label: "egg", key: "Oval/Oval01.png"},
		{label: "base", key: "Square/Square01.png"},
		{label: "heart", key: "Heart/Heart01.png"},
		{label: "triangle", key: "Heart/Heart01.png"},
		{label: "rectangle", key: "Oblong/Oblong01.png"},
		{label: "  ROUND  ", key: "Round/Round01.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			store := newFakeS3()
			svc := newService(store, 5)

			sample, err := svc.SubmitSample(context.Background(), tc.label, jpegSample(t))
			require.NoError(t, err)
			require.Equal(t, tc.key, sample.Key)
		})
	}
}

func TestSubmitSampleUnknownLabel(t *testing.T) {
	store := newFakeS3()
	svc := newService(store, 5)

	_, err := svc.SubmitSample(context.Background(), "pentagon", jpegSample(t))
	require.ErrorIs(t, err, dataset.ErrUnknownLabel)
	require.Empty(t, store.objects)
}

func TestSubmitSampleRejectsBadImages(t *testing.T) {
	store := newFakeS3()
	svc := newService(store, 5)

	_, err := svc.SubmitSample(context.Background(), "oval", nil)
	require.ErrorIs(t, err, utils.ErrEmptyImage)

	_, err = svc.SubmitSample(context.Background(), "oval", []byte("not an image at all"))
	require.ErrorIs(t, err, utils.ErrUnsupportedImageType)

	require.Empty(t, store.objects)
}

func TestSubmitSampleClassFull(t *testing.T) {
	store := newFakeS3()
	svc := newService(store, 2)

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitSample(context.Background(), "round", jpegSample(t))
		require.NoError(t, err)
	}

	_, err := svc.SubmitSample(context.Background(), "round", jpegSample(t))
	require.ErrorIs(t, err, dataset.ErrClassFull)

	require.True(t, store.has("Round/Round01.png"))
	require.True(t, store.has("Round/Round02.png"))
	require.Len(t, store.objects, 2)
}

func TestSubmitSampleFillsLowestFreeSlot(t *testing.T) {
	store := newFakeS3()
	seedSamples(t, store, "Oval/Oval01.png", "Oval/Oval03.png")
	svc := newService(store, 5)

	sample, err := svc.SubmitSample(context.Background(), "oval", jpegSample(t))
	require.NoError(t, err)
	require.Equal(t, "Oval/Oval02.png", sample.Key)
}

func TestSubmitSampleUploadFailure(t *testing.T) {
	store := newFakeS3()
	store.uploadErr = errors.New("connection reset")
	svc := newService(store, 5)

	_, err := svc.SubmitSample(context.Background(), "oval", jpegSample(t))
	require.ErrorIs(t, err, dataset.ErrUploadFailed)
}

func TestListSamples(t *testing.T) {
	store := newFakeS3()
	seedSamples(t, store, "Square/Square01.png", "Square/Square02.png", "Oval/Oval01.png")
	svc := newService(store, 5)

	result, err := svc.ListSamples(context.Background(), "base")
	require.NoError(t, err)

	require.Equal(t, "Square", result.Class)
	require.Equal(t, 2, result.Count)
	require.Len(t, result.Samples, 2)
	require.Equal(t, "Square/Square01.png", result.Samples[0].Key)
	require.Equal(t, "Square/Square02.png", result.Samples[1].Key)
	for _, sample := range result.Samples {
		require.Equal(t, "Square", sample.Class)
		require.Contains(t, sample.URL, "?signed=true")
	}
}

func TestListSamplesEmptyClass(t *testing.T) {
	store := newFakeS3()
	svc := newService(store, 5)

	result, err := svc.ListSamples(context.Background(), "diamond")
	require.NoError(t, err)
	require.Equal(t, "Diamond", result.Class)
	require.Zero(t, result.Count)
	require.NotNil(t, result.Samples)
	require.Empty(t, result.Samples)
}

func TestSummary(t *testing.T) {
	store := newFakeS3()
	seedSamples(t, store,
		"Oval/Oval01.png", "Oval/Oval02.png",
		"Round/Round01.png",
		"Heart/Heart01.png",
	)
	svc := newService(store, 5)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Equal(t, 4, summary.Total)
	require.Equal(t, []string{"Square", "Diamond", "Oblong"}, summary.Missing)

	expectedOrder := []string{"Oval", "Round", "Square", "Heart", "Diamond", "Oblong"}
	expectedCounts := map[string]int{"Oval": 2, "Round": 1, "Heart": 1}

	require.Len(t, summary.Classes, len(expectedOrder))
	for i, class := range summary.Classes {
		require.Equal(t, expectedOrder[i], class.Class)
		require.Equal(t, expectedCounts[class.Class], class.Count)
		require.Equal(t, 5, class.Capacity)
	}
}

func TestSummaryListFailure(t *testing.T) {
	store := newFakeS3()
	store.listErr = errors.New("access denied")
	svc := newService(store, 5)

	_, err := svc.Summary(context.Background())
	require.Error(t, err)
}

func TestRemoveSample(t *testing.T) {
	store := newFakeS3()
	seedSamples(t, store, "Heart/Heart01.png")
	svc := newService(store, 5)

	require.NoError(t, svc.RemoveSample(context.Background(), "triangle", "Heart01.png"))
	require.False(t, store.has("Heart/Heart01.png"))

	err := svc.RemoveSample(context.Background(), "triangle", "Heart01.png")
	require.ErrorIs(t, err, dataset.ErrSampleNotFound)
}

func TestRemoveSampleRejectsBadNames(t *testing.T) {
	store := newFakeS3()
	seedSamples(t, store, "Oval/Oval01.png")
	svc := newService(store, 5)

	err := svc.RemoveSample(context.Background(), "pentagon", "Oval01.png")
	require.ErrorIs(t, err, dataset.ErrUnknownLabel)

	err = svc.RemoveSample(context.Background(), "oval", "")
	require.ErrorIs(t, err, dataset.ErrSampleNotFound)

	err = svc.RemoveSample(context.Background(), "oval", "nested/Oval01.png")
	require.ErrorIs(t, err, dataset.ErrSampleNotFound)

	require.True(t, store.has("Oval/Oval01.png"))
}
