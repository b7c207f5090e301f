// Package catalog holds the reference data the pipeline runs against:
// AMEX transfer partners, monitored airports and routes, and the static
// deal-threshold tables, plus the point-conversion arithmetic.
package catalog

import (
	"fmt"
	"math"
)

// AmexPoints converts a program-mile cost to AMEX Membership Rewards points:
// ceil(miles / ratio). Panics are avoided by validating ratio at the caller
// (ingestion enforces ratio > 0); a non-positive ratio here returns an error.
func AmexPoints(miles int, transferRatio float64) (int, error) {
	if transferRatio <= 0 {
		return 0, fmt.Errorf("transfer ratio must be positive, got %v", transferRatio)
	}
	return int(math.Ceil(float64(miles) / transferRatio)), nil
}

// CapitalOnePoints converts a program-mile cost to Capital One miles, or nil
// when the airline is not a Capital One partner (nil ratio).
func CapitalOnePoints(miles int, transferRatio *float64) (*int, error) {
	if transferRatio == nil {
		return nil, nil
	}
	pts, err := AmexPoints(miles, *transferRatio)
	if err != nil {
		return nil, err
	}
	return &pts, nil
}

// AirlineMiles is the inverse conversion: floor(points * ratio).
func AirlineMiles(amexPoints int, transferRatio float64) (int, error) {
	if transferRatio <= 0 {
		return 0, fmt.Errorf("transfer ratio must be positive, got %v", transferRatio)
	}
	return int(math.Floor(float64(amexPoints) * transferRatio)), nil
}

// BestDeal is the cheapest option across airlines in AMEX-point terms.
type BestDeal struct {
	AirlineCode   string
	MileageCost   int
	AmexPoints    int
	TransferRatio float64
}

// ProgramPrice is one airline's mileage price for a route.
type ProgramPrice struct {
	AirlineCode string
	MileageCost int
}

// FindBestDeal picks the price with the lowest AMEX-point equivalent.
// Unknown airline codes are skipped. Returns nil when nothing qualifies.
func FindBestDeal(prices []ProgramPrice) *BestDeal {
	var best *BestDeal
	for _, p := range prices {
		airline, ok := AirlineByCode(p.AirlineCode)
		if !ok {
			continue
		}
		pts, err := AmexPoints(p.MileageCost, airline.AmexTransferRatio)
		if err != nil {
			continue
		}
		if best == nil || pts < best.AmexPoints {
			best = &BestDeal{
				AirlineCode:   p.AirlineCode,
				MileageCost:   p.MileageCost,
				AmexPoints:    pts,
				TransferRatio: airline.AmexTransferRatio,
			}
		}
	}
	return best
}

// FormatTransferRatio renders a ratio the way the product displays it.
func FormatTransferRatio(ratio float64) string {
	switch ratio {
	case 1.0:
		return "1:1"
	case 0.8:
		return "5:4"
	case 0.6:
		return "5:3"
	case 1.6:
		return "1:1.6"
	}
	return fmt.Sprintf("1:%g", ratio)
}

// FormatPoints renders a point count with comma separators (55000 → "55,000").
func FormatPoints(points int) string {
	s := fmt.Sprintf("%d", points)
	if points < 0 {
		return "-" + FormatPoints(-points)
	}
	n := len(s)
	if n <= 3 {
		return s
	}
	out := make([]byte, 0, n+n/3)
	lead := n % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// FormatPointsShort renders a point count with K shorthand (72500 → "72.5K").
func FormatPointsShort(points int) string {
	if points < 1000 {
		return fmt.Sprintf("%d", points)
	}
	k := float64(points) / 1000
	if k == math.Trunc(k) {
		return fmt.Sprintf("%.0fK", k)
	}
	return fmt.Sprintf("%.1fK", k)
}

// RouteSlug is the canonical "AUS-LHR" form of a route.
func RouteSlug(origin, destination string) string {
	return origin + "-" + destination
}
