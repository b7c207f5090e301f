package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/mileagehawk/mileagehawk-data/internal/catalog"
)

// TwilioSender delivers alert texts through the Twilio messaging API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender creates an SMS sender. Returns nil when any credential is
// missing (SMS channel disabled).
func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: fromNumber}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}

// buildSMSBody keeps texts within a single segment where possible.
func buildSMSBody(n Notification) string {
	body := fmt.Sprintf("MileageHawk: %s-%s %s on %s dropped to %s pts (%s miles on %s), travel %s.",
		n.Origin, n.Destination, n.CabinClass.Label(), n.AirlineName,
		catalog.FormatPointsShort(n.AmexPointsEquivalent),
		catalog.FormatPointsShort(n.MileageCost), n.LoyaltyProgram,
		n.TravelDate)
	if n.BookingURL != nil && *n.BookingURL != "" {
		body += " Book: " + *n.BookingURL
	}
	return body
}
