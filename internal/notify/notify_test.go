package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

type fakeEmail struct {
	sent []Notification
	err  error
}

func (f *fakeEmail) Send(ctx context.Context, n Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

type fakeSMS struct {
	to   []string
	body []string
	err  error
}

func (f *fakeSMS) Send(ctx context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.body = append(f.body, body)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// daytimeQuiet returns a QuietHours pinned outside any configured window.
func daytimeQuiet() *QuietHours {
	return &QuietHours{Now: func() time.Time {
		return time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	}}
}

// nighttimeQuiet returns a QuietHours pinned at 23:00 UTC.
func nighttimeQuiet() *QuietHours {
	return &QuietHours{Now: func() time.Time {
		return time.Date(2026, 7, 15, 23, 0, 0, 0, time.UTC)
	}}
}

func baseNotification(channel model.Channel) Notification {
	return Notification{
		AlertID:              "alert-1",
		UserID:               "user-1",
		UserEmail:            "kestrel@example.com",
		UserPhone:            strPtr("+15125550100"),
		Channel:              channel,
		Origin:               "AUS",
		OriginCity:           "Austin",
		Destination:          "LHR",
		DestinationCity:      "London",
		CabinClass:           model.CabinBusiness,
		AirlineName:          "British Airways",
		LoyaltyProgram:       "Executive Club",
		MileageCost:          50000,
		AmexPointsEquivalent: 50000,
		ThresholdPoints:      55000,
		TravelDate:           "2026-09-01",
	}
}

func TestDispatchEmailIgnoresQuietHours(t *testing.T) {
	email := &fakeEmail{}
	d := &Dispatcher{Email: email, Quiet: nighttimeQuiet()}

	n := baseNotification(model.ChannelEmail)
	n.Timezone = strPtr("UTC")
	n.QuietHoursStart = intPtr(22)
	n.QuietHoursEnd = intPtr(7)

	assert.True(t, d.Send(context.Background(), n))
	assert.Len(t, email.sent, 1)
}

func TestDispatchEmailUnconfigured(t *testing.T) {
	d := &Dispatcher{Quiet: daytimeQuiet()}
	assert.False(t, d.Send(context.Background(), baseNotification(model.ChannelEmail)))
}

func TestDispatchEmailProviderError(t *testing.T) {
	d := &Dispatcher{Email: &fakeEmail{err: errors.New("resend down")}, Quiet: daytimeQuiet()}
	assert.False(t, d.Send(context.Background(), baseNotification(model.ChannelEmail)))
}

func TestDispatchSMSSuppressedIsSuccessfulNoop(t *testing.T) {
	sms := &fakeSMS{}
	d := &Dispatcher{SMS: sms, Quiet: nighttimeQuiet()}

	n := baseNotification(model.ChannelSMS)
	n.Timezone = strPtr("UTC")
	n.QuietHoursStart = intPtr(22)
	n.QuietHoursEnd = intPtr(7)

	assert.True(t, d.Send(context.Background(), n))
	assert.Empty(t, sms.to)
}

func TestDispatchSMSSends(t *testing.T) {
	sms := &fakeSMS{}
	d := &Dispatcher{SMS: sms, Quiet: daytimeQuiet()}

	assert.True(t, d.Send(context.Background(), baseNotification(model.ChannelSMS)))
	assert.Equal(t, []string{"+15125550100"}, sms.to)
	assert.Contains(t, sms.body[0], "AUS-LHR")
	assert.Contains(t, sms.body[0], "Business")
	assert.Contains(t, sms.body[0], "50K")
}

func TestDispatchSMSMissingPhone(t *testing.T) {
	sms := &fakeSMS{}
	d := &Dispatcher{SMS: sms, Quiet: daytimeQuiet()}

	n := baseNotification(model.ChannelSMS)
	n.UserPhone = nil
	assert.False(t, d.Send(context.Background(), n))

	n.UserPhone = strPtr("")
	assert.False(t, d.Send(context.Background(), n))
	assert.Empty(t, sms.to)
}

func TestDispatchSMSUnconfigured(t *testing.T) {
	d := &Dispatcher{Quiet: daytimeQuiet()}
	assert.False(t, d.Send(context.Background(), baseNotification(model.ChannelSMS)))
}

func TestDispatchPush(t *testing.T) {
	d := &Dispatcher{Quiet: daytimeQuiet()}
	// Push is a stub: unsuppressed attempts report failure.
	assert.False(t, d.Send(context.Background(), baseNotification(model.ChannelPush)))

	d = &Dispatcher{Quiet: nighttimeQuiet()}
	n := baseNotification(model.ChannelPush)
	n.Timezone = strPtr("UTC")
	n.QuietHoursStart = intPtr(22)
	n.QuietHoursEnd = intPtr(7)
	assert.True(t, d.Send(context.Background(), n))
}

func TestDispatchUnknownChannel(t *testing.T) {
	d := &Dispatcher{Quiet: daytimeQuiet()}
	assert.False(t, d.Send(context.Background(), baseNotification(model.Channel("CARRIER_PIGEON"))))
}

type panickyEmail struct{}

func (panickyEmail) Send(ctx context.Context, n Notification) error {
	panic("provider SDK blew up")
}

func TestDispatchRecoversSenderPanic(t *testing.T) {
	d := &Dispatcher{Email: panickyEmail{}, Quiet: daytimeQuiet()}
	assert.False(t, d.Send(context.Background(), baseNotification(model.ChannelEmail)))
}
