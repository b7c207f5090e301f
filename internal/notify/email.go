package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/mileagehawk/mileagehawk-data/internal/catalog"
)

// ResendSender delivers alert emails through the Resend API. The client is
// constructed once and reused across calls.
type ResendSender struct {
	client *resend.Client
	from   string
	appURL string
}

// NewResendSender creates an email sender. Returns nil when apiKey is empty
// (email channel disabled), which the dispatcher treats as unconfigured.
func NewResendSender(apiKey, fromEmail, appURL string) *ResendSender {
	if apiKey == "" {
		return nil
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   fromEmail,
		appURL: appURL,
	}
}

// Send builds and submits the price-drop email.
func (s *ResendSender) Send(ctx context.Context, n Notification) error {
	subject := fmt.Sprintf("Price Drop: %s-%s %s — %s pts",
		n.Origin, n.Destination, n.CabinClass.Label(),
		catalog.FormatPointsShort(n.AmexPointsEquivalent))

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("MileageHawk <%s>", s.from),
		To:      []string{n.UserEmail},
		Subject: subject,
		Html:    s.buildHTML(n),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

func (s *ResendSender) buildHTML(n Notification) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:600px;margin:0 auto;padding:24px;">`)
	b.WriteString(`<div style="text-align:center;margin-bottom:24px;"><h1 style="font-size:24px;margin:0;color:#0f172a;">MileageHawk Alert</h1></div>`)

	fmt.Fprintf(&b,
		`<div style="background:#f8fafc;border:1px solid #e2e8f0;border-radius:12px;padding:24px;margin-bottom:16px;">`+
			`<div style="font-size:14px;color:#64748b;margin-bottom:4px;">%s</div>`+
			`<div style="font-size:28px;font-weight:700;color:#0f172a;margin-bottom:8px;">%s (%s) → %s (%s)</div>`+
			`<div style="font-size:16px;color:#475569;">via %s (%s)</div></div>`,
		n.CabinClass.Label(),
		n.OriginCity, n.Origin, n.DestinationCity, n.Destination,
		n.AirlineName, n.LoyaltyProgram)

	fmt.Fprintf(&b,
		`<div style="display:flex;gap:16px;margin-bottom:16px;">`+
			`<div style="flex:1;background:#ecfdf5;border-radius:8px;padding:16px;text-align:center;">`+
			`<div style="font-size:12px;color:#059669;font-weight:600;">CURRENT PRICE</div>`+
			`<div style="font-size:24px;font-weight:700;color:#047857;">%s pts</div>`+
			`<div style="font-size:12px;color:#6b7280;">%s %s miles</div></div>`+
			`<div style="flex:1;background:#fef3c7;border-radius:8px;padding:16px;text-align:center;">`+
			`<div style="font-size:12px;color:#d97706;font-weight:600;">YOUR THRESHOLD</div>`+
			`<div style="font-size:24px;font-weight:700;color:#b45309;">%s pts</div></div></div>`,
		catalog.FormatPoints(n.AmexPointsEquivalent),
		catalog.FormatPoints(n.MileageCost), n.LoyaltyProgram,
		catalog.FormatPoints(n.ThresholdPoints))

	fmt.Fprintf(&b, `<div style="font-size:14px;color:#64748b;margin-bottom:8px;">Travel date: %s</div>`, n.TravelDate)

	if n.BookingURL != nil && *n.BookingURL != "" {
		fmt.Fprintf(&b,
			`<div style="text-align:center;"><a href="%s" style="display:inline-block;background:#2563eb;color:#fff;padding:12px 24px;text-decoration:none;border-radius:6px;font-weight:600;margin-top:16px;">Book Now</a></div>`,
			*n.BookingURL)
	}

	fmt.Fprintf(&b,
		`<div style="margin-top:32px;padding-top:16px;border-top:1px solid #e2e8f0;font-size:12px;color:#94a3b8;text-align:center;">`+
			`<a href="%s/alerts" style="color:#64748b;">Manage Alerts</a> &middot; `+
			`Prices are estimates — always verify on the airline site before booking.</div>`,
		s.appURL)

	b.WriteString(`</div>`)
	return b.String()
}
