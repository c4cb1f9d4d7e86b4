package services

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type SMSSender interface {
	SendSMS(to, message string) error
}

type TwilioSMSSender struct {
	client     *twilio.RestClient
	fromNumber string
	log        *zap.Logger
}

func NewTwilioSMSSender(accountSID, authToken, fromNumber string, log *zap.Logger) SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSSender{client: client, fromNumber: fromNumber, log: log}
}

func (t *TwilioSMSSender) SendSMS(to, message string) error {
	// without a sender number the message is only logged
	if t.fromNumber == "" {
		t.log.Info("sms not sent, twilio is not configured", zap.String("to", to), zap.String("message", message))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	return nil
}
