package seatsaero

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mileagehawk/mileagehawk-data/internal/model"
)

// RouteInfo is the nested route object on an availability record.
type RouteInfo struct {
	ID                 string `json:"ID"`
	OriginAirport      string `json:"OriginAirport"`
	OriginRegion       string `json:"OriginRegion"`
	DestinationAirport string `json:"DestinationAirport"`
	DestinationRegion  string `json:"DestinationRegion"`
	Distance           int    `json:"Distance"`
	Source             string `json:"Source"`
}

// Availability is one raw bulk-availability record. Mileage costs come back
// as either a JSON string or number depending on the source, and direct flags
// are per-cabin (WDirect/JDirect/FDirect).
type Availability struct {
	ID      string    `json:"ID"`
	RouteID string    `json:"RouteID"`
	Route   RouteInfo `json:"Route"`
	Date    string    `json:"Date"` // "2026-03-15"

	YAvailable bool `json:"YAvailable"`
	WAvailable bool `json:"WAvailable"`
	JAvailable bool `json:"JAvailable"`
	FAvailable bool `json:"FAvailable"`

	YMileageCost json.RawMessage `json:"YMileageCost"`
	WMileageCost json.RawMessage `json:"WMileageCost"`
	JMileageCost json.RawMessage `json:"JMileageCost"`
	FMileageCost json.RawMessage `json:"FMileageCost"`

	YRemainingSeats int `json:"YRemainingSeats"`
	WRemainingSeats int `json:"WRemainingSeats"`
	JRemainingSeats int `json:"JRemainingSeats"`
	FRemainingSeats int `json:"FRemainingSeats"`

	YDirect bool `json:"YDirect"`
	WDirect bool `json:"WDirect"`
	JDirect bool `json:"JDirect"`
	FDirect bool `json:"FDirect"`

	Source string `json:"Source"`
}

// CabinAvailability is one normalized per-cabin sub-record.
type CabinAvailability struct {
	CabinClass     model.CabinClass
	MileageCost    int
	RemainingSeats *int
	IsDirect       bool
}

// ParseAvailability expands a raw record into up to three cabin sub-records:
// premium economy (W), business (J) and first (F). A cabin is skipped when
// its availability flag is false or its cost does not parse to a positive
// integer; unparseable costs are rejected, never coerced.
func ParseAvailability(avail Availability) []CabinAvailability {
	var results []CabinAvailability

	type cabin struct {
		class     model.CabinClass
		available bool
		cost      json.RawMessage
		seats     int
		direct    bool
	}

	cabins := []cabin{
		{model.CabinEconomyPlus, avail.WAvailable, avail.WMileageCost, avail.WRemainingSeats, avail.WDirect},
		{model.CabinBusiness, avail.JAvailable, avail.JMileageCost, avail.JRemainingSeats, avail.JDirect},
		{model.CabinFirst, avail.FAvailable, avail.FMileageCost, avail.FRemainingSeats, avail.FDirect},
	}

	for _, cab := range cabins {
		if !cab.available {
			continue
		}
		cost := parseCost(cab.cost)
		if cost <= 0 {
			continue
		}
		sub := CabinAvailability{
			CabinClass:  cab.class,
			MileageCost: cost,
			IsDirect:    cab.direct,
		}
		if cab.seats > 0 {
			seats := cab.seats
			sub.RemainingSeats = &seats
		}
		results = append(results, sub)
	}
	return results
}

// parseCost accepts the string-or-number cost representations the API emits.
// Returns 0 for null, empty, or malformed values.
func parseCost(raw json.RawMessage) int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Some sources send float-formatted costs.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// RouteCodes extracts the origin and destination airport codes.
func RouteCodes(avail Availability) (origin, destination string) {
	return avail.Route.OriginAirport, avail.Route.DestinationAirport
}
