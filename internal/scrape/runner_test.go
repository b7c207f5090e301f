package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mileagehawk/mileagehawk-data/internal/model"
	"github.com/mileagehawk/mileagehawk-data/internal/provider/seatsaero"
)

type fakeSource struct {
	pages     map[string][]*seatsaero.BulkPage // source → pages in cursor order
	pageIdx   map[string]int
	failFor   map[string]error
	callCount int
}

func (f *fakeSource) GetBulkAvailability(ctx context.Context, source, cursor string) (*seatsaero.BulkPage, error) {
	f.callCount++
	if err := f.failFor[source]; err != nil {
		return nil, err
	}
	if f.pageIdx == nil {
		f.pageIdx = map[string]int{}
	}
	pages := f.pages[source]
	idx := f.pageIdx[source]
	if idx >= len(pages) {
		return &seatsaero.BulkPage{}, nil
	}
	f.pageIdx[source]++
	return pages[idx], nil
}

func (f *fakeSource) RemainingCalls() int { return 999 }

type fakeScrapeStore struct {
	routes   []model.Route
	airlines []model.Airline

	upserted    []model.DailyPrice
	logStarted  string
	logStatus   model.ScrapeStatus
	logErrorMsg *string
	startErr    error
	upsertErr   error
}

func (f *fakeScrapeStore) ActiveRoutes(ctx context.Context) ([]model.Route, error) {
	return f.routes, nil
}

func (f *fakeScrapeStore) SourceAirlines(ctx context.Context) ([]model.Airline, error) {
	return f.airlines, nil
}

func (f *fakeScrapeStore) UpsertDailyPrice(ctx context.Context, price model.DailyPrice) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, price)
	return nil
}

func (f *fakeScrapeStore) StartScrapeLog(ctx context.Context, source string) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	f.logStarted = source
	return "log-1", nil
}

func (f *fakeScrapeStore) FinishScrapeLog(ctx context.Context, id string, status model.ScrapeStatus, result Result, errorMessage *string) error {
	f.logStatus = status
	f.logErrorMsg = errorMessage
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func rawNumber(n int) json.RawMessage {
	b, _ := json.Marshal(n)
	return b
}

func availability(id, origin, dest, date string) seatsaero.Availability {
	return seatsaero.Availability{
		ID: id,
		Route: seatsaero.RouteInfo{
			OriginAirport:      origin,
			DestinationAirport: dest,
		},
		Date: date,
	}
}

// monitoredSetup returns a store with one monitored route and every active
// source airline resolvable.
func monitoredSetup() *fakeScrapeStore {
	var airlines []model.Airline
	for _, code := range []string{
		"aeromexico", "aeroplan", "flyingblue", "lifemiles", "delta",
		"emirates", "etihad", "jetblue", "qantas", "qatar", "singapore", "virginatlantic",
	} {
		c := code
		airlines = append(airlines, model.Airline{
			ID:                c,
			Code:              c,
			AmexTransferRatio: 1.0,
			SeatsAeroCode:     &c,
			IsActive:          true,
		})
	}
	return &fakeScrapeStore{
		routes: []model.Route{
			{ID: "AUS-LHR", OriginCode: "AUS", DestinationCode: "LHR", IsActive: true},
		},
		airlines: airlines,
	}
}

func TestRunnerIngestsMatchingRoutes(t *testing.T) {
	avail := availability("av-1", "AUS", "LHR", "2026-09-01")
	avail.JAvailable = true
	avail.JMileageCost = rawNumber(50000)
	avail.JRemainingSeats = 4
	avail.JDirect = true

	offRoute := availability("av-2", "JFK", "NRT", "2026-09-01")
	offRoute.JAvailable = true
	offRoute.JMileageCost = rawNumber(60000)

	src := &fakeSource{pages: map[string][]*seatsaero.BulkPage{
		"delta": {{Data: []seatsaero.Availability{avail, offRoute}, Count: 2}},
	}}
	st := monitoredSetup()
	runner := &Runner{Client: src, Store: st, Logger: testLogger(), Pause: 1}

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, st.upserted, 1)
	p := st.upserted[0]
	assert.Equal(t, "AUS-LHR", p.RouteID)
	assert.Equal(t, "delta", p.AirlineID)
	assert.Equal(t, model.CabinBusiness, p.CabinClass)
	assert.Equal(t, 50000, p.MileageCost)
	assert.Equal(t, 50000, p.AmexPointsEquivalent)
	assert.True(t, p.IsDirect)
	require.NotNil(t, p.AvailabilityCount)
	assert.Equal(t, 4, *p.AvailabilityCount)
	assert.Equal(t, SourceName, p.Source)
	assert.Equal(t, "av-1", p.SourceID)
	assert.Equal(t, "2026-09-01", p.TravelDate.Format("2006-01-02"))

	assert.Equal(t, 1, result.PricesFound)
	assert.Equal(t, model.ScrapeCompleted, st.logStatus)
	assert.Nil(t, st.logErrorMsg)
}

func TestRunnerSkipsBadTravelDates(t *testing.T) {
	avail := availability("av-1", "AUS", "LHR", "not-a-date")
	avail.JAvailable = true
	avail.JMileageCost = rawNumber(50000)

	src := &fakeSource{pages: map[string][]*seatsaero.BulkPage{
		"delta": {{Data: []seatsaero.Availability{avail}, Count: 1}},
	}}
	st := monitoredSetup()
	runner := &Runner{Client: src, Store: st, Logger: testLogger(), Pause: 1}

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, st.upserted)
}

func TestRunnerPartialOnSourceFailure(t *testing.T) {
	avail := availability("av-1", "AUS", "LHR", "2026-09-01")
	avail.FAvailable = true
	avail.FMileageCost = rawNumber(90000)

	src := &fakeSource{
		pages: map[string][]*seatsaero.BulkPage{
			"delta": {{Data: []seatsaero.Availability{avail}, Count: 1}},
		},
		failFor: map[string]error{"qatar": errors.New("upstream 500")},
	}
	st := monitoredSetup()
	runner := &Runner{Client: src, Store: st, Logger: testLogger(), Pause: 1}

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ScrapePartial, st.logStatus)
	assert.Equal(t, result.RoutesTotal-1, result.RoutesSuccess)
	assert.Equal(t, 1, result.RoutesFailed)
	require.NotNil(t, st.logErrorMsg)
	assert.Contains(t, *st.logErrorMsg, "qatar")
	assert.Len(t, st.upserted, 1)
}

func TestRunnerUnresolvedAirlineIsFailure(t *testing.T) {
	st := monitoredSetup()
	st.airlines = st.airlines[:1] // only aeromexico resolvable
	src := &fakeSource{}
	runner := &Runner{Client: src, Store: st, Logger: testLogger(), Pause: 1}

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ScrapePartial, st.logStatus)
	assert.Equal(t, result.RoutesTotal-1, result.RoutesFailed)
}

func TestRunnerFailsWhenLogCannotStart(t *testing.T) {
	st := monitoredSetup()
	st.startErr = errors.New("db down")
	runner := &Runner{Client: &fakeSource{}, Store: st, Logger: testLogger(), Pause: 1}

	_, err := runner.Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, st.upserted)
}

func TestRunnerPaginationCeiling(t *testing.T) {
	// A source whose cursor never terminates stops at the page cap.
	page := &seatsaero.BulkPage{HasMore: true, Cursor: 42}
	pages := make([]*seatsaero.BulkPage, 100)
	for i := range pages {
		pages[i] = page
	}
	src := &fakeSource{pages: map[string][]*seatsaero.BulkPage{"delta": pages}}
	st := monitoredSetup()
	st.airlines = nil
	delta := "delta"
	st.airlines = []model.Airline{{ID: delta, Code: "DL", AmexTransferRatio: 1.0, SeatsAeroCode: &delta, IsActive: true}}

	runner := &Runner{Client: src, Store: st, Logger: testLogger(), Pause: 1}
	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	// Only delta resolves; its pagination is capped at maxPagesPerSource.
	assert.Equal(t, maxPagesPerSource, src.callCount)
}

func TestRunnerPointConversionPerAirline(t *testing.T) {
	avail := availability("av-1", "AUS", "MEX", "2026-09-01")
	avail.JAvailable = true
	avail.JMileageCost = rawNumber(70000)

	am := "aeromexico"
	c1 := 1.0
	st := &fakeScrapeStore{
		routes: []model.Route{{ID: "AUS-MEX", OriginCode: "AUS", DestinationCode: "MEX", IsActive: true}},
		airlines: []model.Airline{{
			ID:                      am,
			Code:                    "AM",
			AmexTransferRatio:       1.6,
			CapitalOneTransferRatio: &c1,
			SeatsAeroCode:           &am,
			IsActive:                true,
		}},
	}
	src := &fakeSource{pages: map[string][]*seatsaero.BulkPage{
		am: {{Data: []seatsaero.Availability{avail}, Count: 1}},
	}}
	runner := &Runner{Client: src, Store: st, Logger: testLogger(), Pause: 1}

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, st.upserted, 1)
	assert.Equal(t, 43750, st.upserted[0].AmexPointsEquivalent)
	require.NotNil(t, st.upserted[0].CapitalOnePointsEquivalent)
	assert.Equal(t, 70000, *st.upserted[0].CapitalOnePointsEquivalent)
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := monitoredSetup()
	runner := &Runner{Client: &fakeSource{}, Store: st, Logger: testLogger(), Pause: 1}

	_, err := runner.Run(ctx)
	assert.Error(t, err)
	assert.Equal(t, model.ScrapeFailed, st.logStatus)
}
