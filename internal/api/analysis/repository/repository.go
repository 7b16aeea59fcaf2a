package analysisRepository

import (
	"sync"
	"time"

	"FaceDiagnosisGolang/internal/entity"
	"FaceDiagnosisGolang/pkg/faceshape"
	"FaceDiagnosisGolang/pkg/redis"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type Repository interface {
	Create(ctx context.Context, session entity.AnalysisSession) (entity.AnalysisSession, error)
	Get(ctx context.Context, id string) (entity.AnalysisSession, error)
	Update(ctx context.Context, id string, landmarks faceshape.LandmarkSet, shape faceshape.Shape,
		features faceshape.FeatureVector, symmetry faceshape.ScoreReport) (entity.AnalysisSession, error)
}

const janitorInterval = 10 * time.Minute

func New(log *logrus.Logger, retention time.Duration) Repository {
	return NewWithClock(log, retention, time.Now)
}

// NewWithClock lets callers pin the clock the store checks expiry against.
func NewWithClock(log *logrus.Logger, retention time.Duration, now func() time.Time) Repository {
	return &sessionRepository{
		log:       log,
		cache:     cache.New(retention, janitorInterval),
		retention: retention,
		now:       now,
	}
}

func NewRedis(log *logrus.Logger, client redis.IRedis, retention time.Duration) Repository {
	return NewRedisWithClock(log, client, retention, time.Now)
}

func NewRedisWithClock(log *logrus.Logger, client redis.IRedis, retention time.Duration, now func() time.Time) Repository {
	return &redisSessionRepository{
		log:       log,
		client:    client,
		retention: retention,
		now:       now,
	}
}

type sessionRepository struct {
	log       *logrus.Logger
	cache     *cache.Cache
	retention time.Duration
	now       func() time.Time

	// Serializes create and read-modify-write cycles on the cache so
	// concurrent updates to the same session cannot interleave.
	mu sync.Mutex
}

type redisSessionRepository struct {
	log       *logrus.Logger
	client    redis.IRedis
	retention time.Duration
	now       func() time.Time

	mu sync.Mutex
}
