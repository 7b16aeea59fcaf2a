package middleware_test

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"FaceDiagnosisGolang/internal/middleware"
	"FaceDiagnosisGolang/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRequestIDMiddlewareGeneratesULID(t *testing.T) {
	m := middleware.New(quietLogger())

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	header := resp.Header.Get("X-Request-ID")
	require.NotEmpty(t, header)
	require.Equal(t, header, string(body))

	_, err = ulid.ParseStrict(header)
	require.NoError(t, err)
}

func TestRequestIDMiddlewareKeepsClientID(t *testing.T) {
	m := middleware.New(quietLogger())

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "client-supplied-id", resp.Header.Get("X-Request-ID"))
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	m := middleware.New(quietLogger())

	app := fiber.New()
	app.Get("/bare", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/bare", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "unknown", string(body))
}

func TestRateLimiterLimitsBursts(t *testing.T) {
	m := middleware.New(quietLogger())

	app := fiber.New()
	app.Use(m.NewRateLimiter)
	app.Get("/limited", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	limited := 0
	for i := 0; i < 300; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
		require.NoError(t, err)
		if resp.StatusCode == fiber.StatusTooManyRequests {
			limited++
		}
		resp.Body.Close()
	}

	require.Positive(t, limited)
}

func TestLoggerConfigSanitizesBodies(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	logger := log.NewLogger()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(middleware.LoggerConfig())
	app.Post("/echo", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/echo",
		strings.NewReader(`{"image_base64":"aGVsbG8=","password":"hunter2","focus":"eyes"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	logged := buf.String()
	require.Contains(t, logged, "[BASE64_IMAGE]")
	require.Contains(t, logged, "[SECRET]")
	require.Contains(t, logged, "eyes")
	require.NotContains(t, logged, "hunter2")
	require.NotContains(t, logged, "aGVsbG8=")
}

func TestLoggerConfigSkipsHugeBodies(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	logger := log.NewLogger()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(middleware.LoggerConfig())
	app.Post("/echo", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	payload := `{"image_base64":"` + strings.Repeat("A", 64*1024) + `"}`
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	logged := buf.String()
	require.Contains(t, logged, "[body omitted: too large]")
	require.NotContains(t, logged, strings.Repeat("A", 1024))
}

func TestLoggerConfigNonJSONBody(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	logger := log.NewLogger()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(middleware.LoggerConfig())
	app.Post("/echo", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/echo", strings.NewReader("plain text payload"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Contains(t, buf.String(), "[non-JSON body]")
}
