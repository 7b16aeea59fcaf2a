package analysisRepository

import (
	"context"
	"encoding/json"
	"errors"

	"FaceDiagnosisGolang/internal/api/analysis"
	"FaceDiagnosisGolang/internal/entity"
	contextPkg "FaceDiagnosisGolang/pkg/context"
	"FaceDiagnosisGolang/pkg/faceshape"
	"FaceDiagnosisGolang/pkg/redis"

	"github.com/sirupsen/logrus"
)

const redisSessionKeyPrefix = "analysis_session:"

func (r *redisSessionRepository) Create(ctx context.Context, session entity.AnalysisSession) (entity.AnalysisSession, error) {
	requestID := contextPkg.GetRequestID(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	session.CreatedAt = r.now()

	payload, err := json.Marshal(session)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to marshal analysis session")
		return entity.AnalysisSession{}, err
	}

	if err := r.client.SetValue(ctx, redisSessionKeyPrefix+session.ID, string(payload), r.retention); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to store analysis session")
		return entity.AnalysisSession{}, err
	}

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
		"face_shape": session.FaceShape,
	}).Debug("Analysis session created")

	return session, nil
}

func (r *redisSessionRepository) Get(ctx context.Context, id string) (entity.AnalysisSession, error) {
	requestID := contextPkg.GetRequestID(ctx)

	return r.fetch(ctx, requestID, id)
}

func (r *redisSessionRepository) Update(ctx context.Context, id string, landmarks faceshape.LandmarkSet, shape faceshape.Shape,
	features faceshape.FeatureVector, symmetry faceshape.ScoreReport) (entity.AnalysisSession, error) {
	requestID := contextPkg.GetRequestID(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.fetch(ctx, requestID, id)
	if err != nil {
		return entity.AnalysisSession{}, err
	}

	session.Landmarks = landmarks
	session.FaceShape = shape
	session.Features = features
	session.Symmetry = symmetry

	payload, err := json.Marshal(session)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to marshal analysis session")
		return entity.AnalysisSession{}, err
	}

	// Remaining lifetime stays anchored to the original creation time.
	remaining := r.retention - r.now().Sub(session.CreatedAt)
	if err := r.client.SetValue(ctx, redisSessionKeyPrefix+id, string(payload), remaining); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to store analysis session")
		return entity.AnalysisSession{}, err
	}

	r.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": id,
		"face_shape": shape,
	}).Debug("Analysis session updated")

	return session, nil
}

func (r *redisSessionRepository) fetch(ctx context.Context, requestID, id string) (entity.AnalysisSession, error) {
	payload, err := r.client.GetValue(ctx, redisSessionKeyPrefix+id)
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": id,
			}).Debug("Analysis session not found")
			return entity.AnalysisSession{}, analysis.ErrSessionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to load analysis session")
		return entity.AnalysisSession{}, err
	}

	var session entity.AnalysisSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to unmarshal analysis session")
		return entity.AnalysisSession{}, err
	}

	// Redis expires the key on its own, but the authoritative check is
	// against the stored CreatedAt so store behavior stays uniform.
	if r.now().Sub(session.CreatedAt) > r.retention {
		if err := r.client.DeleteValue(ctx, redisSessionKeyPrefix+id); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": id,
				"error":      err.Error(),
			}).Error("Failed to delete expired analysis session")
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
		}).Debug("Analysis session expired")
		return entity.AnalysisSession{}, analysis.ErrSessionNotFound
	}

	return session, nil
}
