// Package model holds the canonical types shared across the pipeline:
// closed enums for cabin class, region, alert channel and deal tier, and the
// row structs the store and pipeline packages exchange.
package model

import "time"

// --------------------------------------------------------------------------
// Enums
// --------------------------------------------------------------------------

// CabinClass is a monitored award cabin.
type CabinClass string

const (
	CabinEconomyPlus CabinClass = "ECONOMY_PLUS"
	CabinBusiness    CabinClass = "BUSINESS"
	CabinFirst       CabinClass = "FIRST"
)

// CabinClasses lists all cabin classes in display order.
var CabinClasses = []CabinClass{CabinEconomyPlus, CabinBusiness, CabinFirst}

// Valid reports whether c is one of the closed cabin values.
func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomyPlus, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

// Label returns the display label for a cabin class.
func (c CabinClass) Label() string {
	switch c {
	case CabinEconomyPlus:
		return "Economy Plus"
	case CabinBusiness:
		return "Business"
	case CabinFirst:
		return "First"
	}
	return string(c)
}

// Region is a destination region grouping used by routes and thresholds.
type Region string

const (
	RegionEurope             Region = "EUROPE"
	RegionAsia               Region = "ASIA"
	RegionMiddleEast         Region = "MIDDLE_EAST"
	RegionOceania            Region = "OCEANIA"
	RegionLatinAmericaMexico Region = "LATIN_AMERICA_MEXICO"
	RegionLatinAmericaSouth  Region = "LATIN_AMERICA_SOUTH"
	RegionCaribbean          Region = "CARIBBEAN"
)

// Valid reports whether r is one of the closed region values.
func (r Region) Valid() bool {
	switch r {
	case RegionEurope, RegionAsia, RegionMiddleEast, RegionOceania,
		RegionLatinAmericaMexico, RegionLatinAmericaSouth, RegionCaribbean:
		return true
	}
	return false
}

// Channel is an alert delivery channel.
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelPush  Channel = "PUSH"
)

// DealTier classifies a deal score.
type DealTier string

const (
	TierUnicorn DealTier = "unicorn"
	TierAmazing DealTier = "amazing"
	TierGreat   DealTier = "great"
	TierGood    DealTier = "good"
	TierFair    DealTier = "fair"
)

// ScrapeStatus is the lifecycle state of a scrape-log row.
type ScrapeStatus string

const (
	ScrapeRunning   ScrapeStatus = "RUNNING"
	ScrapeCompleted ScrapeStatus = "COMPLETED"
	ScrapePartial   ScrapeStatus = "PARTIAL"
	ScrapeFailed    ScrapeStatus = "FAILED"
)

// --------------------------------------------------------------------------
// Reference rows
// --------------------------------------------------------------------------

// Airport is a monitored origin or destination airport.
type Airport struct {
	Code      string
	Name      string
	City      string
	Country   string
	Region    Region
	Latitude  float64
	Longitude float64
	IsOrigin  bool
}

// Airline is an AMEX transfer partner. SeatsAeroCode is nil for chart-only
// partners with no live ingestion source; CapitalOneTransferRatio is nil for
// airlines that are not Capital One partners.
type Airline struct {
	ID                      string
	Name                    string
	Code                    string
	LoyaltyProgram          string
	LoyaltyCurrency         string
	AmexTransferRatio       float64
	CapitalOneTransferRatio *float64
	Alliance                *string
	SeatsAeroCode           *string
	IsActive                bool
}

// Route is a monitored origin→destination pair.
type Route struct {
	ID                string
	OriginCode        string
	OriginCity        string
	DestinationCode   string
	DestinationCity   string
	DestinationRegion Region
	IsActive          bool
}

// --------------------------------------------------------------------------
// Pipeline rows
// --------------------------------------------------------------------------

// DailyPrice is one normalized mileage price. The natural key is
// (RouteID, AirlineID, CabinClass, TravelDate, Source); re-ingesting the same
// key overwrites the row.
type DailyPrice struct {
	ID                         string
	RouteID                    string
	AirlineID                  string
	CabinClass                 CabinClass
	MileageCost                int
	AmexPointsEquivalent       int
	CapitalOnePointsEquivalent *int
	AvailabilityCount          *int
	IsDirect                   bool
	TravelDate                 time.Time
	Source                     string
	SourceID                   string
	BookingURL                 *string
	ScrapedAt                  time.Time

	// Joined airline fields, populated by batch loads that need them.
	AirlineName    string
	LoyaltyProgram string
}

// HistoryDay is one day's aggregate for a (route, airline, cabin) group.
// Invariant: MinPrice <= AvgPrice <= MaxPrice.
type HistoryDay struct {
	RouteID    string
	AirlineID  string
	CabinClass CabinClass
	Date       time.Time
	MinPrice   int
	AvgPrice   int
	MaxPrice   int
	SampleSize int
}

// AlertUser is the subscriber profile an alert belongs to.
type AlertUser struct {
	ID              string
	Email           string
	Name            *string
	Phone           *string
	Timezone        *string
	QuietHoursStart *int
	QuietHoursEnd   *int
}

// Alert is a user price subscription. AirlineID nil means any airline.
type Alert struct {
	ID              string
	UserID          string
	RouteID         string
	CabinClass      CabinClass
	AirlineID       *string
	ThresholdPoints int
	Channels        []Channel
	IsActive        bool
	LastTriggeredAt *time.Time
}

// ActiveAlert is an alert joined with its user and route, as loaded by the
// evaluator's batch query.
type ActiveAlert struct {
	Alert
	User  AlertUser
	Route Route
}

// TriggerRecord is one alert-history row: a single (alert, channel) trigger
// event. Created with NotificationSent=false before dispatch, then updated
// with the outcome.
type TriggerRecord struct {
	ID               string
	AlertID          string
	PriceID          string
	Channel          Channel
	NotificationSent bool
	TriggeredAt      time.Time
}

// ScrapeLog is the per-run ingestion log row.
type ScrapeLog struct {
	ID            string
	Source        string
	Status        ScrapeStatus
	RoutesTotal   int
	RoutesSuccess int
	RoutesFailed  int
	PricesFound   int
	DurationMs    int64
	ErrorMessage  *string
	StartedAt     time.Time
	CompletedAt   *time.Time
}
