package catalog

import "github.com/mileagehawk/mileagehawk-data/internal/model"

// CabinThreshold is the static price expectation for one region+cabin pair,
// in AMEX points one-way.
type CabinThreshold struct {
	TypicalRange    [2]int
	GoodDeal        int
	ExceptionalDeal int
}

// RegionThresholds groups the per-cabin thresholds for a destination region.
type RegionThresholds struct {
	Region      model.Region
	EconomyPlus CabinThreshold
	Business    CabinThreshold
	First       CabinThreshold
}

// DefaultThresholds are the fallback scoring tables used when no price
// history exists for a group.
var DefaultThresholds = []RegionThresholds{
	{
		Region:      model.RegionEurope,
		EconomyPlus: CabinThreshold{TypicalRange: [2]int{35000, 50000}, GoodDeal: 30000, ExceptionalDeal: 20000},
		Business:    CabinThreshold{TypicalRange: [2]int{55000, 80000}, GoodDeal: 50000, ExceptionalDeal: 35000},
		First:       CabinThreshold{TypicalRange: [2]int{90000, 130000}, GoodDeal: 85000, ExceptionalDeal: 70000},
	},
	{
		Region:      model.RegionAsia,
		EconomyPlus: CabinThreshold{TypicalRange: [2]int{40000, 55000}, GoodDeal: 35000, ExceptionalDeal: 25000},
		Business:    CabinThreshold{TypicalRange: [2]int{60000, 90000}, GoodDeal: 55000, ExceptionalDeal: 43000},
		First:       CabinThreshold{TypicalRange: [2]int{85000, 120000}, GoodDeal: 75000, ExceptionalDeal: 55000},
	},
	{
		Region:      model.RegionMiddleEast,
		EconomyPlus: CabinThreshold{TypicalRange: [2]int{45000, 60000}, GoodDeal: 40000, ExceptionalDeal: 30000},
		Business:    CabinThreshold{TypicalRange: [2]int{80000, 120000}, GoodDeal: 70000, ExceptionalDeal: 55000},
		First:       CabinThreshold{TypicalRange: [2]int{130000, 180000}, GoodDeal: 115000, ExceptionalDeal: 90000},
	},
	{
		Region:      model.RegionOceania,
		EconomyPlus: CabinThreshold{TypicalRange: [2]int{50000, 65000}, GoodDeal: 45000, ExceptionalDeal: 35000},
		Business:    CabinThreshold{TypicalRange: [2]int{75000, 100000}, GoodDeal: 72500, ExceptionalDeal: 60000},
		First:       CabinThreshold{TypicalRange: [2]int{110000, 160000}, GoodDeal: 100000, ExceptionalDeal: 80000},
	},
	{
		Region:      model.RegionLatinAmericaMexico,
		EconomyPlus: CabinThreshold{TypicalRange: [2]int{12000, 20000}, GoodDeal: 10000, ExceptionalDeal: 7500},
		Business:    CabinThreshold{TypicalRange: [2]int{20000, 35000}, GoodDeal: 17500, ExceptionalDeal: 12500},
		First:       CabinThreshold{TypicalRange: [2]int{35000, 50000}, GoodDeal: 30000, ExceptionalDeal: 22500},
	},
	{
		Region:      model.RegionLatinAmericaSouth,
		EconomyPlus: CabinThreshold{TypicalRange: [2]int{25000, 35000}, GoodDeal: 20000, ExceptionalDeal: 15000},
		Business:    CabinThreshold{TypicalRange: [2]int{40000, 60000}, GoodDeal: 35000, ExceptionalDeal: 25000},
		First:       CabinThreshold{TypicalRange: [2]int{60000, 85000}, GoodDeal: 55000, ExceptionalDeal: 45000},
	},
	{
		Region:      model.RegionCaribbean,
		EconomyPlus: CabinThreshold{TypicalRange: [2]int{15000, 25000}, GoodDeal: 12500, ExceptionalDeal: 9000},
		Business:    CabinThreshold{TypicalRange: [2]int{25000, 45000}, GoodDeal: 22000, ExceptionalDeal: 16000},
		First:       CabinThreshold{TypicalRange: [2]int{45000, 65000}, GoodDeal: 40000, ExceptionalDeal: 30000},
	},
}

// ThresholdFor resolves the static threshold config for a region and cabin.
// The second return is false for regions with no table.
func ThresholdFor(region model.Region, cabin model.CabinClass) (CabinThreshold, bool) {
	for _, rt := range DefaultThresholds {
		if rt.Region != region {
			continue
		}
		switch cabin {
		case model.CabinEconomyPlus:
			return rt.EconomyPlus, true
		case model.CabinFirst:
			return rt.First, true
		default:
			return rt.Business, true
		}
	}
	return CabinThreshold{}, false
}
