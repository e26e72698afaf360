package forms

import (
	"context"
	"errors"
	"time"

	"github.com/blueexport/blueexport/backend/go-services/internal/store"
	"github.com/blueexport/blueexport/backend/go-services/pkg/logger"
	"github.com/blueexport/blueexport/backend/go-services/pkg/metrics"
)

// Service writes validated forms to the document store.
type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(s store.Store) *Service {
	return &Service{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// Submit stores f as a new document and returns its id. There is no dedup:
// submitting the same form twice yields two records.
func (s *Service) Submit(ctx context.Context, f Form) (string, error) {
	collection := f.Kind().Collection()
	doc := f.Document()
	now := s.now()
	doc["created_at"] = now
	doc["updated_at"] = now

	id, err := s.store.Create(ctx, collection, doc)
	if err != nil {
		metrics.Submissions.WithLabelValues(collection, metrics.OutcomeError).Inc()
		logger.With("collection", collection).Errorf("store %s failed: %v", f.Kind(), err)
		var pe *store.PersistenceError
		if !errors.As(err, &pe) {
			err = &store.PersistenceError{Op: "create", Collection: collection, Err: err}
		}
		return "", err
	}
	metrics.Submissions.WithLabelValues(collection, metrics.OutcomeOK).Inc()
	logger.With("collection", collection, "id", id).Infof("stored %s", f.Kind())
	return id, nil
}

// Rejected records a submission that failed validation.
func (s *Service) Rejected(kind Kind, verr *ValidationError) {
	metrics.Submissions.WithLabelValues(kind.Collection(), metrics.OutcomeInvalid).Inc()
	logger.With("collection", kind.Collection()).Infof("rejected %s: %v", kind, verr)
}
