package profiles

import (
	"context"
	"errors"

	apperrors "numerology-workers/internal/common/errors"
	"numerology-workers/internal/common/metrics"
	"numerology-workers/internal/numerology"
)

// Getter is the read side of Store.
type Getter interface {
	Get(ctx context.Context, userID string) (*numerology.Profile, error)
}

// Resolve picks the profile for a job. An inline profile wins; otherwise userID is
// looked up in store. The result is validated, so callers can hand it straight to
// the engine. Errors are StandardErrors ready for the job error handler.
func Resolve(ctx context.Context, store Getter, inline *numerology.Profile, userID string) (*numerology.Profile, error) {
	profile := inline
	if profile != nil {
		metrics.ProfileLookups.WithLabelValues(SourceInline).Inc()
	} else {
		if userID == "" || store == nil {
			return nil, apperrors.NewProfileMissingError(userID)
		}
		p, err := store.Get(ctx, userID)
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperrors.NewProfileMissingError(userID)
		case err != nil:
			return nil, apperrors.NewProfileLookupFailedError(userID, err)
		}
		profile = p
	}

	if err := profile.Validate(); err != nil {
		return nil, apperrors.NewProfileIncompleteError(err).WithMetadata("userId", userID)
	}
	return profile, nil
}
