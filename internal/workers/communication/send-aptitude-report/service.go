package sendaptitudereport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"numerology-workers/internal/common/errors"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/validation"

	"github.com/google/uuid"
)

// EmailSender delivers the HTML report. *aws.SESClient satisfies it.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, text, html string) (string, error)
}

// SMSSender delivers the short report. *aws.SNSClient satisfies it.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type ServiceDependencies struct {
	Email  EmailSender
	SMS    SMSSender
	Logger logger.Logger
}

type Service struct {
	config *Config
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		email:  deps.Email,
		sms:    deps.SMS,
		logger: deps.Logger,
		now:    time.Now,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Email == "" && input.Phone == "" {
		return nil, errors.NewReportRecipientMissingError().WithMetadata("userId", input.UserID)
	}
	if input.Email != "" && !validation.ValidateEmail(input.Email) {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid email address: %s", input.Email))
	}
	if input.Phone != "" && !validation.ValidatePhone(input.Phone) {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid phone number: %s", input.Phone))
	}

	output := &Output{
		ReportID: uuid.New().String(),
		Status:   StatusDisabled,
		Channels: []ChannelResult{},
		SentAt:   s.now().UTC(),
	}

	sendEmail := s.config.EmailEnabled && s.email != nil && input.Email != ""
	sendSMS := s.config.SMSEnabled && s.sms != nil && input.Phone != ""
	if !sendEmail && !sendSMS {
		s.logger.Info("no enabled channel for report recipient", map[string]interface{}{
			"userId":   input.UserID,
			"reportId": output.ReportID,
		})
		return output, nil
	}

	rep, err := renderReport(input)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	var firstErr error
	var firstChannel string
	record := func(channel, messageID string, err error) {
		result := ChannelResult{Channel: channel, Status: StatusSent, MessageID: messageID}
		if err != nil {
			result.Status = StatusFailed
			result.Error = err.Error()
			if firstErr == nil {
				firstErr, firstChannel = err, channel
			}
			s.logger.Warn("report delivery failed", map[string]interface{}{
				"channel":  channel,
				"reportId": output.ReportID,
				"error":    err.Error(),
			})
		}
		output.Channels = append(output.Channels, result)
	}

	if sendEmail {
		id, err := s.email.SendEmail(ctx, input.Email, rep.Subject, rep.Text, rep.HTML)
		record(ChannelEmail, id, err)
	}
	if sendSMS {
		id, err := s.sms.SendSMS(ctx, input.Phone, rep.SMS)
		record(ChannelSMS, id, err)
	}

	output.Status = StatusFailed
	for _, c := range output.Channels {
		if c.Status == StatusSent {
			output.Status = StatusSent
			break
		}
	}

	if output.Status == StatusFailed && s.config.FailOnError {
		return nil, errors.NewNotificationSendFailedError(firstChannel, firstErr).
			WithMetadata("reportId", output.ReportID)
	}

	s.logger.Info("aptitude report processed", map[string]interface{}{
		"userId":   input.UserID,
		"reportId": output.ReportID,
		"status":   output.Status,
		"channels": len(output.Channels),
	})
	return output, nil
}
