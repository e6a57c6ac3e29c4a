package sendaptitudereport

import (
	"time"

	"numerology-workers/internal/numerology"
)

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Input struct {
	UserID              string                  `json:"userId,omitempty"`
	Name                string                  `json:"name,omitempty"`
	Email               string                  `json:"email,omitempty"`
	Phone               string                  `json:"phone,omitempty"`
	Profession          string                  `json:"profession,omitempty"`
	ProfessionVibration int                     `json:"profession_vibration"`
	CalculatedScore     int                     `json:"calculated_score"`
	Reasons             []string                `json:"reasons,omitempty"`
	Suggestions         *numerology.Suggestions `json:"suggestions,omitempty"`
}

// ChannelResult is the outcome of one delivery attempt.
type ChannelResult struct {
	Channel   string `json:"channel"`
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Output struct {
	ReportID string          `json:"reportId"`
	Status   string          `json:"status"`
	Channels []ChannelResult `json:"channels"`
	SentAt   time.Time       `json:"sentAt"`
}
