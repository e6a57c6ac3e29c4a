package profiles

import (
	"context"
	"errors"
	"testing"

	apperrors "numerology-workers/internal/common/errors"
	"numerology-workers/internal/numerology"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) Get(ctx context.Context, userID string) (*numerology.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*numerology.Profile), args.Error(1)
}

func TestResolve(t *testing.T) {
	stored := &numerology.Profile{Expression: 5, Destiny: 5, Path: 5}

	tests := []struct {
		name     string
		inline   *numerology.Profile
		userID   string
		setup    func(m *mockGetter)
		want     *numerology.Profile
		wantCode apperrors.ErrorCode
	}{
		{
			name:   "inline profile wins without a lookup",
			inline: &numerology.Profile{Expression: 1, Destiny: 2, Path: 3},
			userID: "user-1",
			want:   &numerology.Profile{Expression: 1, Destiny: 2, Path: 3},
		},
		{
			name:   "stored profile",
			userID: "user-1",
			setup: func(m *mockGetter) {
				m.On("Get", mock.Anything, "user-1").Return(stored, nil)
			},
			want: stored,
		},
		{
			name:     "no profile and no user",
			wantCode: apperrors.ErrCodeProfileMissing,
		},
		{
			name:   "user without stored profile",
			userID: "ghost",
			setup: func(m *mockGetter) {
				m.On("Get", mock.Anything, "ghost").Return(nil, ErrNotFound)
			},
			wantCode: apperrors.ErrCodeProfileMissing,
		},
		{
			name:   "store failure is retryable",
			userID: "user-1",
			setup: func(m *mockGetter) {
				m.On("Get", mock.Anything, "user-1").Return(nil, errors.New("connection refused"))
			},
			wantCode: apperrors.ErrCodeProfileLookupFailed,
		},
		{
			name:     "inline profile with an empty dimension",
			inline:   &numerology.Profile{Expression: 5, Destiny: 0, Path: 3},
			wantCode: apperrors.ErrCodeProfileIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := &mockGetter{}
			if tt.setup != nil {
				tt.setup(getter)
			}

			got, err := Resolve(context.Background(), getter, tt.inline, tt.userID)
			if tt.wantCode != "" {
				require.Error(t, err)
				stdErr, ok := apperrors.AsStandardError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, stdErr.Code)
				assert.Equal(t, apperrors.IsRetryableErrorCode(tt.wantCode), stdErr.Retryable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			getter.AssertExpectations(t)
		})
	}
}

func TestResolve_NilStore(t *testing.T) {
	_, err := Resolve(context.Background(), nil, nil, "user-1")
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeProfileMissing, stdErr.Code)
	assert.Equal(t, "user-1", stdErr.Metadata["userId"])
}
