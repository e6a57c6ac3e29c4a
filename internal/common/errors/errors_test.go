package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_Retryability(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"input parsing", NewInputParsingError(cause), ErrCodeInputParsingFailed, false},
		{"validation", NewValidationError("userProfile.expression: must be >= 1"), ErrCodeValidationFailed, false},
		{"profile missing", NewProfileMissingError("u-1"), ErrCodeProfileMissing, false},
		{"profile incomplete", NewProfileIncompleteError(cause), ErrCodeProfileIncomplete, false},
		{"profile lookup", NewProfileLookupFailedError("u-1", cause), ErrCodeProfileLookupFailed, true},
		{"search failed", NewProfessionSearchFailedError(cause), ErrCodeProfessionSearchFailed, true},
		{"search timeout", NewProfessionSearchTimeoutError(cause), ErrCodeProfessionSearchTimeout, true},
		{"index missing", NewIndexNotFoundError("professions"), ErrCodeIndexNotFound, false},
		{"recipient missing", NewReportRecipientMissingError(), ErrCodeReportRecipientMissing, false},
		{"notification", NewNotificationSendFailedError("email", cause), ErrCodeNotificationSendFailed, true},
		{"external", NewExternalServiceError("ses", cause), ErrCodeExternalService, true},
		{"internal", NewInternalError(cause), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.retryable, IsRetryableErrorCode(tt.code))
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: timeout")
	err := fmt.Errorf("lookup: %w", NewProfileLookupFailedError("u-7", cause))

	stdErr, ok := AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeProfileLookupFailed, stdErr.Code)
	assert.ErrorIs(t, err, cause)
}

func TestConvertToBPMNError(t *testing.T) {
	bpmn := ConvertToBPMNError(NewProfileMissingError("u-42"))

	assert.Equal(t, "PROFILE_MISSING", bpmn.Code)
	assert.Equal(t, 0, bpmn.Retries)
	assert.False(t, bpmn.Retryable)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "PROFILE_MISSING", vars["errorCode"])
	assert.Equal(t, "PROFILE", vars["errorCategory"])
	assert.Equal(t, "u-42", vars["userId"])
	assert.Contains(t, vars["errorDetails"], "u-42")
}

func TestConvertToBPMNError_NonRetryableOverride(t *testing.T) {
	stdErr := NewProfessionSearchFailedError(stderrors.New("bad request"))
	stdErr.Retryable = false
	assert.Equal(t, 0, ConvertToBPMNError(stdErr).Retries)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		jobRetries  int32
		wantAction  Action
		wantRetries int32
	}{
		{"business error is thrown", NewValidationError("bad"), 3, ActionThrow, 0},
		{"retryable with retries left", NewProfileLookupFailedError("u", stderrors.New("x")), 3, ActionFail, 2},
		{"budget caps retries", NewProfileLookupFailedError("u", stderrors.New("x")), 10, ActionFail, 3},
		{"timeout budget", NewProfessionSearchTimeoutError(stderrors.New("x")), 10, ActionFail, 2},
		{"last attempt is thrown", NewNotificationSendFailedError("sms", stderrors.New("x")), 1, ActionThrow, 0},
		{"no retries left", NewNotificationSendFailedError("sms", stderrors.New("x")), 0, ActionThrow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, retries := Decide(tt.err, tt.jobRetries)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantRetries, retries)
		})
	}
}

func TestNormalize(t *testing.T) {
	plain := Normalize(stderrors.New("nil pointer"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "nil pointer", plain.Details)

	std := NewValidationError("x")
	assert.Same(t, std, Normalize(std))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "PROFILE", GetErrorCategory(ErrCodeProfileIncomplete))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeProfessionSearchTimeout))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeReportRecipientMissing))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputParsingFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseConnectionFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
