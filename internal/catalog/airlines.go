package catalog

import "github.com/mileagehawk/mileagehawk-data/internal/model"

func strPtr(s string) *string { return &s }
func f64Ptr(f float64) *float64 { return &f }

// Airlines is the AMEX Membership Rewards transfer-partner registry.
// Transfer ratios last verified February 2026. SeatsAeroCode nil means the
// partner has no live availability source and is chart-based only.
var Airlines = []model.Airline{
	{
		Name:              "Aer Lingus",
		Code:              "EI",
		LoyaltyProgram:    "AerClub",
		LoyaltyCurrency:   "Avios",
		AmexTransferRatio: 1.0,
		IsActive:          true,
	},
	{
		Name:                    "Aeromexico",
		Code:                    "AM",
		LoyaltyProgram:          "Aeromexico Rewards",
		LoyaltyCurrency:         "Points",
		AmexTransferRatio:       1.6, // 1:1.6 bonus (program uses kilometers)
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("SkyTeam"),
		SeatsAeroCode:           strPtr("aeromexico"),
		IsActive:                true,
	},
	{
		Name:                    "Air Canada",
		Code:                    "AC",
		LoyaltyProgram:          "Aeroplan",
		LoyaltyCurrency:         "Aeroplan Points",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("Star Alliance"),
		SeatsAeroCode:           strPtr("aeroplan"),
		IsActive:                true,
	},
	{
		Name:                    "Air France / KLM",
		Code:                    "AF",
		LoyaltyProgram:          "Flying Blue",
		LoyaltyCurrency:         "Miles",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("SkyTeam"),
		SeatsAeroCode:           strPtr("flyingblue"),
		IsActive:                true,
	},
	{
		Name:              "ANA",
		Code:              "NH",
		LoyaltyProgram:    "ANA Mileage Club",
		LoyaltyCurrency:   "Miles",
		AmexTransferRatio: 1.0,
		Alliance:          strPtr("Star Alliance"),
		IsActive:          true,
	},
	{
		Name:                    "Avianca",
		Code:                    "AV",
		LoyaltyProgram:          "LifeMiles",
		LoyaltyCurrency:         "Miles",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("Star Alliance"),
		SeatsAeroCode:           strPtr("lifemiles"),
		IsActive:                true,
	},
	{
		Name:                    "British Airways",
		Code:                    "BA",
		LoyaltyProgram:          "Executive Club",
		LoyaltyCurrency:         "Avios",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("Oneworld"),
		IsActive:                true,
	},
	{
		Name:                    "Cathay Pacific",
		Code:                    "CX",
		LoyaltyProgram:          "Asia Miles",
		LoyaltyCurrency:         "Asia Miles",
		AmexTransferRatio:       0.8, // 5:4 effective March 1, 2026
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("Oneworld"),
		IsActive:                true,
	},
	{
		Name:              "Delta Air Lines",
		Code:              "DL",
		LoyaltyProgram:    "SkyMiles",
		LoyaltyCurrency:   "Miles",
		AmexTransferRatio: 1.0,
		Alliance:          strPtr("SkyTeam"),
		SeatsAeroCode:     strPtr("delta"),
		IsActive:          true,
	},
	{
		Name:                    "Emirates",
		Code:                    "EK",
		LoyaltyProgram:          "Skywards",
		LoyaltyCurrency:         "Skywards Miles",
		AmexTransferRatio:       0.8, // 5:4 since Sept 2025
		CapitalOneTransferRatio: f64Ptr(1.0),
		SeatsAeroCode:           strPtr("emirates"),
		IsActive:                true,
	},
	{
		Name:                    "Etihad Airways",
		Code:                    "EY",
		LoyaltyProgram:          "Etihad Guest",
		LoyaltyCurrency:         "Miles",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		SeatsAeroCode:           strPtr("etihad"),
		IsActive:                true,
	},
	{
		Name:              "Iberia",
		Code:              "IB",
		LoyaltyProgram:    "Iberia Plus",
		LoyaltyCurrency:   "Avios",
		AmexTransferRatio: 1.0,
		Alliance:          strPtr("Oneworld"),
		IsActive:          true,
	},
	{
		Name:                    "JetBlue",
		Code:                    "B6",
		LoyaltyProgram:          "TrueBlue",
		LoyaltyCurrency:         "Points",
		AmexTransferRatio:       0.8, // 5:4
		CapitalOneTransferRatio: f64Ptr(0.6), // 5:3
		SeatsAeroCode:           strPtr("jetblue"),
		IsActive:                true,
	},
	{
		Name:                    "Qantas",
		Code:                    "QF",
		LoyaltyProgram:          "Frequent Flyer",
		LoyaltyCurrency:         "Qantas Points",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("Oneworld"),
		SeatsAeroCode:           strPtr("qantas"),
		IsActive:                true,
	},
	{
		Name:                    "Qatar Airways",
		Code:                    "QR",
		LoyaltyProgram:          "Privilege Club",
		LoyaltyCurrency:         "Avios",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("Oneworld"),
		SeatsAeroCode:           strPtr("qatar"),
		IsActive:                true,
	},
	{
		Name:                    "Singapore Airlines",
		Code:                    "SQ",
		LoyaltyProgram:          "KrisFlyer",
		LoyaltyCurrency:         "Miles",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("Star Alliance"),
		SeatsAeroCode:           strPtr("singapore"),
		IsActive:                true,
	},
	{
		Name:                    "Virgin Atlantic",
		Code:                    "VS",
		LoyaltyProgram:          "Flying Club",
		LoyaltyCurrency:         "Virgin Points",
		AmexTransferRatio:       1.0,
		CapitalOneTransferRatio: f64Ptr(1.0),
		Alliance:                strPtr("SkyTeam"),
		SeatsAeroCode:           strPtr("virginatlantic"),
		IsActive:                true,
	},
}

// SourceMap maps seats.aero source names to airline codes.
var SourceMap = map[string]string{
	"aeromexico":     "AM",
	"aeroplan":       "AC",
	"flyingblue":     "AF",
	"lifemiles":      "AV",
	"delta":          "DL",
	"emirates":       "EK",
	"etihad":         "EY",
	"jetblue":        "B6",
	"qantas":         "QF",
	"qatar":          "QR",
	"singapore":      "SQ",
	"virginatlantic": "VS",
}

// Sources returns all seats.aero source names in a stable order.
func Sources() []string {
	sources := make([]string, 0, len(Airlines))
	for _, a := range Airlines {
		if a.SeatsAeroCode != nil {
			sources = append(sources, *a.SeatsAeroCode)
		}
	}
	return sources
}

// AirlineByCode returns the registry entry for an airline code.
func AirlineByCode(code string) (model.Airline, bool) {
	for _, a := range Airlines {
		if a.Code == code {
			return a, true
		}
	}
	return model.Airline{}, false
}

// AirlineBySource returns the registry entry owning a seats.aero source.
func AirlineBySource(source string) (model.Airline, bool) {
	code, ok := SourceMap[source]
	if !ok {
		return model.Airline{}, false
	}
	return AirlineByCode(code)
}
