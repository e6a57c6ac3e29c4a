package aws

import (
	"context"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSES struct{ mock.Mock }

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*ses.SendEmailOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSNS struct{ mock.Mock }

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*sns.PublishOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSESClient_SendEmail(t *testing.T) {
	api := new(mockSES)
	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return in.Destination.ToAddresses[0] == "seeker@example.com" &&
			sdkaws.ToString(in.Source) == "reports@example.com" &&
			sdkaws.ToString(in.Message.Subject.Data) == "Your aptitude report"
	})).Return(&ses.SendEmailOutput{MessageId: sdkaws.String("msg-1")}, nil)

	id, err := NewSESClientWithAPI(api, "reports@example.com").
		SendEmail(context.Background(), "seeker@example.com", "Your aptitude report", "text", "<p>html</p>")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	api.AssertExpectations(t)
}

func TestSESClient_SendEmailError(t *testing.T) {
	api := new(mockSES)
	api.On("SendEmail", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := NewSESClientWithAPI(api, "reports@example.com").
		SendEmail(context.Background(), "x@example.com", "s", "t", "h")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSNSClient_SendSMS(t *testing.T) {
	api := new(mockSNS)
	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		sender, ok := in.MessageAttributes["AWS.SNS.SMS.SenderID"]
		return sdkaws.ToString(in.PhoneNumber) == "+15550109999" &&
			ok && sdkaws.ToString(sender.StringValue) == "NUMEROLOGY"
	})).Return(&sns.PublishOutput{MessageId: sdkaws.String("sms-1")}, nil)

	id, err := NewSNSClientWithAPI(api, "NUMEROLOGY").SendSMS(context.Background(), "+15550109999", "Score 75")
	require.NoError(t, err)
	assert.Equal(t, "sms-1", id)
	api.AssertExpectations(t)
}
