package config

import (
	analysisHandler "FaceDiagnosisGolang/internal/api/analysis/handler"
	analysisRepository "FaceDiagnosisGolang/internal/api/analysis/repository"
	analysisService "FaceDiagnosisGolang/internal/api/analysis/service"
	datasetHandler "FaceDiagnosisGolang/internal/api/dataset/handler"
	datasetService "FaceDiagnosisGolang/internal/api/dataset/service"
	"FaceDiagnosisGolang/internal/middleware"
	"FaceDiagnosisGolang/pkg/faceshape"
	"FaceDiagnosisGolang/pkg/gemini"
	landmarkPkg "FaceDiagnosisGolang/pkg/landmark"
	"FaceDiagnosisGolang/pkg/redis"
	"FaceDiagnosisGolang/pkg/s3"
	"FaceDiagnosisGolang/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

const (
	defaultSessionRetention   = 30 * time.Minute
	defaultDatasetMaxPerClass = 5
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	sessionStore   analysisRepository.Repository
	landmarkClient landmarkPkg.ILandmarker
	redisServer    redis.IRedis
	geminiClient   gemini.IGemini
	s3Client       s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSessionStore() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before session store")
		}

		retention := sessionRetentionFromEnv()

		if os.Getenv("SESSION_STORE") == "redis" {
			if s.redisServer == nil {
				return fmt.Errorf("redis server must be initialized before a redis session store")
			}
			s.sessionStore = analysisRepository.NewRedis(s.log, s.redisServer, retention)
			return nil
		}

		s.sessionStore = analysisRepository.New(s.log, retention)
		return nil
	}
}

func WithLandmarkClient(client landmarkPkg.ILandmarker) ServerOption {
	return func(s *Server) error {
		s.landmarkClient = client
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Analysis Domain
	analysisServices := analysisService.NewAnalysisService(
		s.log,
		s.sessionStore,
		s.landmarkClient,
		s.geminiClient,
		landmarkProviderFromEnv(),
		faceshape.ThresholdsFromEnv(),
	)
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices, s.utils)

	// Dataset Domain
	datasetServices := datasetService.NewDatasetService(s.log, s.s3Client, s.utils, datasetLimitFromEnv())
	datasetHandlers := datasetHandler.New(s.log, s.validator, s.middleware, datasetServices, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, analysisHandlers, datasetHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	router.Use(s.middleware.NewRateLimiter)

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.landmarkClient != nil {
			s.landmarkClient.CloseConnection()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func landmarkProviderFromEnv() string {
	provider := os.Getenv("LANDMARK_PROVIDER")
	switch provider {
	case analysisService.ProviderGemini, analysisService.ProviderFingerprint:
		return provider
	default:
		return analysisService.ProviderWebsocket
	}
}

func sessionRetentionFromEnv() time.Duration {
	raw := os.Getenv("ANALYSIS_SESSION_TTL")
	if raw == "" {
		return defaultSessionRetention
	}

	retention, err := time.ParseDuration(raw)
	if err != nil || retention <= 0 {
		return defaultSessionRetention
	}

	return retention
}

func datasetLimitFromEnv() int {
	raw := os.Getenv("DATASET_MAX_PER_CLASS")
	if raw == "" {
		return defaultDatasetMaxPerClass
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultDatasetMaxPerClass
	}

	return limit
}
