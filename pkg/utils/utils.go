package utils

import (
	"bytes"
	"crypto/rand"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"FaceDiagnosisGolang/pkg/response"

	"github.com/oklog/ulid/v2"
)

var (
	ErrNoImageUploaded      = response.NewError(http.StatusBadRequest, "no image uploaded")
	ErrEmptyImage           = response.NewError(http.StatusBadRequest, "uploaded image is empty")
	ErrImageTooLarge        = response.NewError(http.StatusRequestEntityTooLarge, "image exceeds the size limit")
	ErrUnsupportedImageType = response.NewError(http.StatusBadRequest, "unsupported image type")
	ErrUndecodableImage     = response.NewError(http.StatusBadRequest, "image could not be decoded")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ReadImageFile(file *multipart.FileHeader) ([]byte, error)
	ValidateImageBytes(data []byte) error
	ReencodePNG(data []byte) ([]byte, error)
}

type utils struct {
	maxFileSize int
}

func New() IUtils {
	return &utils{
		maxFileSize: 5 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ReadImageFile(file *multipart.FileHeader) ([]byte, error) {
	if file == nil {
		return nil, ErrNoImageUploaded
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

func (u *utils) ValidateImageBytes(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyImage
	}

	if len(data) > u.maxFileSize {
		return ErrImageTooLarge
	}

	if !allowedImageTypes[http.DetectContentType(data)] {
		return ErrUnsupportedImageType
	}

	return nil
}

func (u *utils) ReencodePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUndecodableImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
