package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmexPoints(t *testing.T) {
	tests := []struct {
		name  string
		miles int
		ratio float64
		want  int
	}{
		{"one to one", 50000, 1.0, 50000},
		{"aeromexico premium ratio", 70000, 1.6, 43750},
		{"five to four rounds up", 70001, 0.8, 87502},
		{"five to four exact", 80000, 0.8, 100000},
		{"jetblue capital one", 50000, 0.6, 83334},
		{"zero miles", 0, 1.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AmexPoints(tt.miles, tt.ratio)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmexPointsRejectsNonPositiveRatio(t *testing.T) {
	_, err := AmexPoints(50000, 0)
	assert.Error(t, err)
	_, err = AmexPoints(50000, -1.0)
	assert.Error(t, err)
}

func TestCapitalOnePoints(t *testing.T) {
	ratio := 1.0
	pts, err := CapitalOnePoints(60000, &ratio)
	require.NoError(t, err)
	require.NotNil(t, pts)
	assert.Equal(t, 60000, *pts)

	// Non-partner airlines carry a nil ratio and convert to nil, not zero.
	pts, err = CapitalOnePoints(60000, nil)
	require.NoError(t, err)
	assert.Nil(t, pts)
}

func TestAirlineMilesFloors(t *testing.T) {
	miles, err := AirlineMiles(43750, 1.6)
	require.NoError(t, err)
	assert.Equal(t, 70000, miles)

	miles, err = AirlineMiles(83334, 0.6)
	require.NoError(t, err)
	assert.Equal(t, 50000, miles)
}

func TestFindBestDeal(t *testing.T) {
	// Aeromexico's 1:1.6 bonus ratio makes its nominally pricier award the
	// cheaper one in AMEX-point terms: 70000/1.6 = 43750 < 50000.
	best := FindBestDeal([]ProgramPrice{
		{AirlineCode: "DL", MileageCost: 50000},
		{AirlineCode: "AM", MileageCost: 70000},
	})
	require.NotNil(t, best)
	assert.Equal(t, "AM", best.AirlineCode)
	assert.Equal(t, 43750, best.AmexPoints)
	assert.Equal(t, 1.6, best.TransferRatio)
}

func TestFindBestDealSkipsUnknownAirlines(t *testing.T) {
	best := FindBestDeal([]ProgramPrice{
		{AirlineCode: "ZZ", MileageCost: 10000},
		{AirlineCode: "BA", MileageCost: 50000},
	})
	require.NotNil(t, best)
	assert.Equal(t, "BA", best.AirlineCode)

	assert.Nil(t, FindBestDeal(nil))
	assert.Nil(t, FindBestDeal([]ProgramPrice{{AirlineCode: "ZZ", MileageCost: 1}}))
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "55,000", FormatPoints(55000))
	assert.Equal(t, "1,250,000", FormatPoints(1250000))
	assert.Equal(t, "999", FormatPoints(999))
	assert.Equal(t, "0", FormatPoints(0))
}

func TestFormatPointsShort(t *testing.T) {
	assert.Equal(t, "72.5K", FormatPointsShort(72500))
	assert.Equal(t, "55K", FormatPointsShort(55000))
	assert.Equal(t, "500", FormatPointsShort(500))
}

func TestFormatTransferRatio(t *testing.T) {
	assert.Equal(t, "1:1", FormatTransferRatio(1.0))
	assert.Equal(t, "5:4", FormatTransferRatio(0.8))
	assert.Equal(t, "5:3", FormatTransferRatio(0.6))
	assert.Equal(t, "1:1.6", FormatTransferRatio(1.6))
}

func TestRouteSlug(t *testing.T) {
	assert.Equal(t, "AUS-LHR", RouteSlug("AUS", "LHR"))
}
