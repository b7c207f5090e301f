package seatsaero

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

func newTestClient() *Client {
	c := NewClient("https://seats.aero/partnerapi", "test-key", 6000)
	httpmock.ActivateNonDefault(c.httpClient)
	return c
}

func TestGetBulkAvailability(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://seats.aero/partnerapi/availability",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "test-key", req.Header.Get("Partner-Authorization"))
			assert.Equal(t, "delta", req.URL.Query().Get("source"))

			resp, err := httpmock.NewJsonResponse(200, map[string]any{
				"data": []map[string]any{{
					"ID":           "av-1",
					"Date":         "2026-09-01",
					"JAvailable":   true,
					"JMileageCost": "50000",
					"Route": map[string]any{
						"OriginAirport":      "AUS",
						"DestinationAirport": "LHR",
					},
				}},
				"count":   1,
				"hasMore": true,
				"cursor":  1700000,
			})
			resp.Header.Set("X-Ratelimit-Remaining", "987")
			return resp, err
		})

	page, err := c.GetBulkAvailability(context.Background(), "delta", "")
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "av-1", page.Data[0].ID)
	assert.Equal(t, "1700000", page.NextCursor())
	assert.Equal(t, 987, c.RemainingCalls())
}

func TestGetBulkAvailabilityPassesCursor(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://seats.aero/partnerapi/availability",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "1700000", req.URL.Query().Get("cursor"))
			return httpmock.NewJsonResponse(200, map[string]any{
				"data": []map[string]any{}, "count": 0, "hasMore": false, "cursor": 0,
			})
		})

	page, err := c.GetBulkAvailability(context.Background(), "delta", "1700000")
	require.NoError(t, err)
	assert.Empty(t, page.NextCursor())
}

func TestGetBulkAvailabilitySourceError(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://seats.aero/partnerapi/availability",
		httpmock.NewStringResponder(429, "quota exhausted"))

	_, err := c.GetBulkAvailability(context.Background(), "delta", "")
	require.Error(t, err)

	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, 429, srcErr.StatusCode)
	assert.Contains(t, srcErr.Error(), "429")
}

func TestRemainingCallsStartsAtDailyLimit(t *testing.T) {
	c := NewClient(BaseURL, "k", 60)
	assert.Equal(t, DailyLimit, c.RemainingCalls())
}

func TestParseAvailabilityCabins(t *testing.T) {
	avail := Availability{
		WAvailable:      true,
		WMileageCost:    json.RawMessage(`"25000"`),
		WRemainingSeats: 2,
		JAvailable:      true,
		JMileageCost:    json.RawMessage(`57500`),
		JDirect:         true,
		FAvailable:      false,
		FMileageCost:    json.RawMessage(`90000`),
	}

	cabins := ParseAvailability(avail)
	require.Len(t, cabins, 2)

	assert.Equal(t, model.CabinEconomyPlus, cabins[0].CabinClass)
	assert.Equal(t, 25000, cabins[0].MileageCost)
	require.NotNil(t, cabins[0].RemainingSeats)
	assert.Equal(t, 2, *cabins[0].RemainingSeats)

	assert.Equal(t, model.CabinBusiness, cabins[1].CabinClass)
	assert.Equal(t, 57500, cabins[1].MileageCost)
	assert.True(t, cabins[1].IsDirect)
	assert.Nil(t, cabins[1].RemainingSeats)
}

func TestParseAvailabilitySkipsBadCosts(t *testing.T) {
	avail := Availability{
		WAvailable:   true,
		WMileageCost: json.RawMessage(`null`),
		JAvailable:   true,
		JMileageCost: json.RawMessage(`"not a number"`),
		FAvailable:   true,
		FMileageCost: json.RawMessage(`0`),
	}
	assert.Empty(t, ParseAvailability(avail))
}

func TestParseCost(t *testing.T) {
	assert.Equal(t, 50000, parseCost(json.RawMessage(`50000`)))
	assert.Equal(t, 50000, parseCost(json.RawMessage(`"50000"`)))
	assert.Equal(t, 57500, parseCost(json.RawMessage(`57500.0`)))
	assert.Equal(t, 0, parseCost(json.RawMessage(`null`)))
	assert.Equal(t, 0, parseCost(json.RawMessage(`""`)))
	assert.Equal(t, 0, parseCost(nil))
}
