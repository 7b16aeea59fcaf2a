package analysisRepository_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"FaceDiagnosisGolang/internal/api/analysis"
	analysisRepository "FaceDiagnosisGolang/internal/api/analysis/repository"
	"FaceDiagnosisGolang/internal/entity"
	"FaceDiagnosisGolang/pkg/faceshape"
	"FaceDiagnosisGolang/pkg/redis"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testRetention = 30 * time.Minute

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeClock has no monotonic reading so stored times survive a JSON
// round trip unchanged.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeRedisItem struct {
	payload   string
	expiresAt time.Time
}

type fakeRedis struct {
	mu    sync.Mutex
	now   func() time.Time
	items map[string]fakeRedisItem
}

func newFakeRedis(now func() time.Time) *fakeRedis {
	return &fakeRedis{now: now, items: make(map[string]fakeRedisItem)}
}

func (f *fakeRedis) SetValue(_ context.Context, key string, payload string, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = fakeRedisItem{payload: payload, expiresAt: f.now().Add(expiration)}
	return nil
}

func (f *fakeRedis) GetValue(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[key]
	if !ok || f.now().After(item.expiresAt) {
		return "", redis.ErrKeyNotFound
	}
	return item.payload, nil
}

func (f *fakeRedis) DeleteValue(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	return nil
}

func testSession(id string) entity.AnalysisSession {
	return entity.AnalysisSession{
		ID: id,
		Landmarks: faceshape.LandmarkSet{
			faceshape.RoleChinTip:        {X: 200, Y: 400},
			faceshape.RoleForeheadCenter: {X: 200, Y: 100},
		},
		FaceShape: faceshape.ShapeRound,
		Features:  faceshape.FeatureVector{JawWidth: 0.25, CheekWidth: 0.30, FaceHeight: 300},
		Quality:   faceshape.ScoreReport{Score: 0.9, Label: "very clear"},
		Symmetry:  faceshape.ScoreReport{Score: 0.95, Label: "excellent symmetry"},
	}
}

func storeVariants(clock *fakeClock) map[string]analysisRepository.Repository {
	return map[string]analysisRepository.Repository{
		"memory": analysisRepository.NewWithClock(quietLogger(), testRetention, clock.Now),
		"redis":  analysisRepository.NewRedisWithClock(quietLogger(), newFakeRedis(clock.Now), testRetention, clock.Now),
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	for name, repo := range storeVariants(clock) {
		t.Run(name, func(t *testing.T) {
			created, err := repo.Create(context.Background(), testSession("session-lifecycle"))
			require.NoError(t, err)
			require.Equal(t, clock.Now(), created.CreatedAt)

			fetched, err := repo.Get(context.Background(), "session-lifecycle")
			require.NoError(t, err)
			require.Equal(t, created, fetched)
		})
	}
}

func TestSessionMissing(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	for name, repo := range storeVariants(clock) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Get(context.Background(), "never-created")
			require.ErrorIs(t, err, analysis.ErrSessionNotFound)
		})
	}
}

func TestSessionExpiryBoundary(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"memory", "redis"} {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock()
			repo := storeVariants(clock)[name]

			_, err := repo.Create(context.Background(), testSession("session-expiry"))
			require.NoError(t, err)

			clock.Advance(testRetention - time.Second)
			_, err = repo.Get(context.Background(), "session-expiry")
			require.NoError(t, err)

			clock.Advance(2 * time.Second)
			_, err = repo.Get(context.Background(), "session-expiry")
			require.ErrorIs(t, err, analysis.ErrSessionNotFound)

			_, err = repo.Get(context.Background(), "session-expiry")
			require.ErrorIs(t, err, analysis.ErrSessionNotFound)
		})
	}
}

func TestUpdateReplacesAnalysis(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	for name, repo := range storeVariants(clock) {
		t.Run(name, func(t *testing.T) {
			id := "session-update-" + name
			created, err := repo.Create(context.Background(), testSession(id))
			require.NoError(t, err)

			landmarks := faceshape.LandmarkSet{
				faceshape.RoleChinTip:        {X: 210, Y: 390},
				faceshape.RoleForeheadCenter: {X: 210, Y: 110},
			}
			features := faceshape.FeatureVector{JawWidth: 0.40, CheekWidth: 0.42, FaceHeight: 280, JawAngle: 150}
			symmetry := faceshape.ScoreReport{Score: 0.75, Label: "well balanced"}

			updated, err := repo.Update(context.Background(), id, landmarks, faceshape.ShapeSquare, features, symmetry)
			require.NoError(t, err)

			fetched, err := repo.Get(context.Background(), id)
			require.NoError(t, err)
			require.Equal(t, updated, fetched)

			require.Equal(t, landmarks, fetched.Landmarks)
			require.Equal(t, faceshape.ShapeSquare, fetched.FaceShape)
			require.Equal(t, features, fetched.Features)
			require.Equal(t, symmetry, fetched.Symmetry)

			require.Equal(t, created.Quality, fetched.Quality)
			require.Equal(t, created.CreatedAt, fetched.CreatedAt)
		})
	}
}

func TestUpdateKeepsExpiryAnchored(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"memory", "redis"} {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock()
			repo := storeVariants(clock)[name]

			session := testSession("session-anchor")
			_, err := repo.Create(context.Background(), session)
			require.NoError(t, err)

			clock.Advance(20 * time.Minute)
			_, err = repo.Update(context.Background(), "session-anchor", session.Landmarks,
				faceshape.ShapeOval, session.Features, session.Symmetry)
			require.NoError(t, err)

			clock.Advance(9 * time.Minute)
			_, err = repo.Get(context.Background(), "session-anchor")
			require.NoError(t, err)

			clock.Advance(2 * time.Minute)
			_, err = repo.Get(context.Background(), "session-anchor")
			require.ErrorIs(t, err, analysis.ErrSessionNotFound)
		})
	}
}

func TestUpdateMissingOrExpired(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"memory", "redis"} {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock()
			repo := storeVariants(clock)[name]

			session := testSession("session-gone")
			_, err := repo.Update(context.Background(), "session-gone", session.Landmarks,
				session.FaceShape, session.Features, session.Symmetry)
			require.ErrorIs(t, err, analysis.ErrSessionNotFound)

			_, err = repo.Create(context.Background(), session)
			require.NoError(t, err)

			clock.Advance(testRetention + time.Second)
			_, err = repo.Update(context.Background(), "session-gone", session.Landmarks,
				session.FaceShape, session.Features, session.Symmetry)
			require.ErrorIs(t, err, analysis.ErrSessionNotFound)
		})
	}
}

func TestConcurrentUpdatesStayConsistent(t *testing.T) {
	t.Parallel()

	repo := analysisRepository.New(quietLogger(), testRetention)

	_, err := repo.Create(context.Background(), testSession("session-race"))
	require.NoError(t, err)

	// Each writer submits an internally consistent revision; serialized
	// updates mean the stored session must match one writer exactly.
	shapeFor := func(i int) faceshape.Shape {
		if i%2 == 0 {
			return faceshape.ShapeRound
		}
		return faceshape.ShapeSquare
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			landmarks := faceshape.LandmarkSet{
				faceshape.RoleChinTip: {X: float64(i), Y: 400},
			}
			features := faceshape.FeatureVector{FaceHeight: float64(i)}
			symmetry := faceshape.ScoreReport{Score: float64(i) / 32, Label: fmt.Sprintf("writer-%d", i)}

			_, err := repo.Update(context.Background(), "session-race", landmarks, shapeFor(i), features, symmetry)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	fetched, err := repo.Get(context.Background(), "session-race")
	require.NoError(t, err)

	winner := int(fetched.Features.FaceHeight)
	require.Equal(t, shapeFor(winner), fetched.FaceShape)
	require.Equal(t, float64(winner), fetched.Landmarks[faceshape.RoleChinTip].X)
	require.Equal(t, fmt.Sprintf("writer-%d", winner), fetched.Symmetry.Label)
}
