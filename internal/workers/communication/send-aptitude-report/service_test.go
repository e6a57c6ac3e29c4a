package sendaptitudereport

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"numerology-workers/internal/common/errors"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/numerology"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mocks
// ==========================

type mockEmail struct {
	mock.Mock
}

func (m *mockEmail) SendEmail(ctx context.Context, to, subject, text, html string) (string, error) {
	args := m.Called(ctx, to, subject, text, html)
	return args.String(0), args.Error(1)
}

type mockSMS struct {
	mock.Mock
}

func (m *mockSMS) SendSMS(ctx context.Context, phone, message string) (string, error) {
	args := m.Called(ctx, phone, message)
	return args.String(0), args.Error(1)
}

// ==========================
// Helpers
// ==========================

func bothChannels() *Config {
	cfg := DefaultConfig()
	cfg.EmailEnabled = true
	cfg.SMSEnabled = true
	return cfg
}

func newTestService(t *testing.T, cfg *Config, email EmailSender, sms SMSSender) *Service {
	s := NewService(ServiceDependencies{Email: email, SMS: sms, Logger: logger.NewTestLogger(t)}, cfg)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func createValidInput() *Input {
	return &Input{
		UserID:              "user-1",
		Name:                "Ada",
		Email:               "ada@example.com",
		Phone:               "+44 20 7946 0958",
		Profession:          "Nurse",
		ProfessionVibration: 6,
		CalculatedScore:     70,
		Reasons:             []string{"Vibration 6 is favorable to your expression number 3"},
		Suggestions:         &numerology.Suggestions{Needed: true, IdealVibration: 3, MaxPossibleScore: 100},
	}
}

// ==========================
// Tests
// ==========================

func TestService_SendsBothChannels(t *testing.T) {
	email := &mockEmail{}
	email.On("SendEmail", mock.Anything, "ada@example.com", "Your aptitude score for Nurse: 70/100",
		mock.MatchedBy(func(text string) bool { return strings.Contains(text, "**70/100**") }),
		mock.MatchedBy(func(html string) bool { return strings.Contains(html, "<strong>70/100</strong>") }),
	).Return("ses-1", nil)

	sms := &mockSMS{}
	sms.On("SendSMS", mock.Anything, "+44 20 7946 0958", "Nurse: aptitude score 70/100. Try vibration 3 (up to 100).").
		Return("sns-1", nil)

	output, err := newTestService(t, bothChannels(), email, sms).Execute(context.Background(), createValidInput())
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	_, parseErr := uuid.Parse(output.ReportID)
	assert.NoError(t, parseErr)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), output.SentAt)
	assert.Equal(t, []ChannelResult{
		{Channel: ChannelEmail, Status: StatusSent, MessageID: "ses-1"},
		{Channel: ChannelSMS, Status: StatusSent, MessageID: "sns-1"},
	}, output.Channels)

	email.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestService_EmailOnlyWhenNoPhone(t *testing.T) {
	email := &mockEmail{}
	email.On("SendEmail", mock.Anything, "ada@example.com", mock.Anything, mock.Anything, mock.Anything).Return("ses-1", nil)
	sms := &mockSMS{}

	input := createValidInput()
	input.Phone = ""

	output, err := newTestService(t, bothChannels(), email, sms).Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Channels, 1)
	assert.Equal(t, ChannelEmail, output.Channels[0].Channel)
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_PartialFailureIsSent(t *testing.T) {
	email := &mockEmail{}
	email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", stderrors.New("MessageRejected"))
	sms := &mockSMS{}
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return("sns-1", nil)

	output, err := newTestService(t, bothChannels(), email, sms).Execute(context.Background(), createValidInput())
	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, StatusFailed, output.Channels[0].Status)
	assert.Equal(t, "MessageRejected", output.Channels[0].Error)
	assert.Equal(t, StatusSent, output.Channels[1].Status)
}

func TestService_AllChannelsFail(t *testing.T) {
	newMocks := func() (*mockEmail, *mockSMS) {
		email := &mockEmail{}
		email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", stderrors.New("throttled"))
		sms := &mockSMS{}
		sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return("", stderrors.New("opted out"))
		return email, sms
	}

	t.Run("retryable error by default", func(t *testing.T) {
		email, sms := newMocks()
		_, err := newTestService(t, bothChannels(), email, sms).Execute(context.Background(), createValidInput())

		stdErr, ok := errors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
		assert.True(t, stdErr.Retryable)
		assert.Equal(t, ChannelEmail, stdErr.Metadata["channel"])
	})

	t.Run("failed status when errors are tolerated", func(t *testing.T) {
		email, sms := newMocks()
		cfg := bothChannels()
		cfg.FailOnError = false

		output, err := newTestService(t, cfg, email, sms).Execute(context.Background(), createValidInput())
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, output.Status)
		assert.Len(t, output.Channels, 2)
	})
}

func TestService_ChannelsDisabled(t *testing.T) {
	email := &mockEmail{}
	sms := &mockSMS{}

	output, err := newTestService(t, DefaultConfig(), email, sms).Execute(context.Background(), createValidInput())
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Empty(t, output.Channels)
	assert.NotEmpty(t, output.ReportID)
	email.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_InputErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Input)
		wantCode errors.ErrorCode
	}{
		{
			name:     "no recipient",
			mutate:   func(in *Input) { in.Email, in.Phone = "", "  " },
			wantCode: errors.ErrCodeReportRecipientMissing,
		},
		{
			name:     "bad email",
			mutate:   func(in *Input) { in.Email = "not-an-email" },
			wantCode: errors.ErrCodeValidationFailed,
		},
		{
			name:     "bad phone",
			mutate:   func(in *Input) { in.Phone = "12" },
			wantCode: errors.ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createValidInput()
			tt.mutate(input)

			_, err := newTestService(t, bothChannels(), &mockEmail{}, &mockSMS{}).Execute(context.Background(), input)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

func TestRenderReport(t *testing.T) {
	t.Run("with suggestion", func(t *testing.T) {
		rep, err := renderReport(createValidInput())
		require.NoError(t, err)
		assert.Contains(t, rep.Text, "Hello Ada,")
		assert.Contains(t, rep.Text, "- Vibration 6 is favorable")
		assert.Contains(t, rep.Text, "vibration **3**")
		assert.Contains(t, rep.HTML, "<h1>Your aptitude report for Nurse</h1>")
		assert.Contains(t, rep.HTML, "<li>")
	})

	t.Run("anonymous without suggestion", func(t *testing.T) {
		rep, err := renderReport(&Input{CalculatedScore: 95, ProfessionVibration: 5})
		require.NoError(t, err)
		assert.Equal(t, "Your aptitude score: 95/100", rep.Subject)
		assert.Contains(t, rep.Text, "Hello there,")
		assert.NotContains(t, rep.Text, "would suit you better")
		assert.Equal(t, "aptitude score 95/100.", rep.SMS)
	})

	t.Run("escapes markup in names", func(t *testing.T) {
		rep, err := renderReport(&Input{Name: "<script>x</script>", CalculatedScore: 50})
		require.NoError(t, err)
		assert.NotContains(t, rep.HTML, "<script>")
	})
}
