package analysisRepository

import (
	"context"

	"FaceDiagnosisGolang/internal/api/analysis"
	"FaceDiagnosisGolang/internal/entity"
	contextPkg "FaceDiagnosisGolang/pkg/context"
	"FaceDiagnosisGolang/pkg/faceshape"

	"github.com/sirupsen/logrus"
)

func (r *sessionRepository) Create(ctx context.Context, session entity.AnalysisSession) (entity.AnalysisSession, error) {
	requestID := contextPkg.GetRequestID(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	session.CreatedAt = r.now()
	r.cache.Set(session.ID, session, r.retention)

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
		"face_shape": session.FaceShape,
	}).Debug("Analysis session created")

	return session, nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (entity.AnalysisSession, error) {
	requestID := contextPkg.GetRequestID(ctx)

	item, found := r.cache.Get(id)
	if !found {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
		}).Debug("Analysis session not found")
		return entity.AnalysisSession{}, analysis.ErrSessionNotFound
	}

	session, ok := item.(entity.AnalysisSession)
	if !ok {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
		}).Error("Unexpected cache entry type for analysis session")
		return entity.AnalysisSession{}, analysis.ErrSessionNotFound
	}

	if r.expired(session) {
		r.cache.Delete(id)
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
		}).Debug("Analysis session expired")
		return entity.AnalysisSession{}, analysis.ErrSessionNotFound
	}

	return session, nil
}

func (r *sessionRepository) Update(ctx context.Context, id string, landmarks faceshape.LandmarkSet, shape faceshape.Shape,
	features faceshape.FeatureVector, symmetry faceshape.ScoreReport) (entity.AnalysisSession, error) {
	requestID := contextPkg.GetRequestID(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	item, found := r.cache.Get(id)
	if !found {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
		}).Debug("Analysis session not found for update")
		return entity.AnalysisSession{}, analysis.ErrSessionNotFound
	}

	session, ok := item.(entity.AnalysisSession)
	if !ok {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
		}).Error("Unexpected cache entry type for analysis session")
		return entity.AnalysisSession{}, analysis.ErrSessionNotFound
	}

	if r.expired(session) {
		r.cache.Delete(id)
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
		}).Debug("Analysis session expired before update")
		return entity.AnalysisSession{}, analysis.ErrSessionNotFound
	}

	session.Landmarks = landmarks
	session.FaceShape = shape
	session.Features = features
	session.Symmetry = symmetry

	// Remaining lifetime stays anchored to the original creation time.
	remaining := r.retention - r.now().Sub(session.CreatedAt)
	r.cache.Set(id, session, remaining)

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": id,
		"face_shape": shape,
	}).Debug("Analysis session updated")

	return session, nil
}

// The cache janitor also evicts on retention, but the authoritative
// check is against the stored CreatedAt so tests can pin the clock.
func (r *sessionRepository) expired(session entity.AnalysisSession) bool {
	return r.now().Sub(session.CreatedAt) > r.retention
}
