package catalog

import "github.com/mileagehawk/mileagehawk-data/internal/model"

// OriginCodes are the departure airports every monitored route starts from.
var OriginCodes = []string{"AUS", "DFW", "DAL"}

// Airports is the monitored airport registry. Routes are the cross product
// of origins and destinations at seed time.
var Airports = []model.Airport{
	// Origins
	{Code: "AUS", Name: "Austin-Bergstrom International", City: "Austin", Country: "United States", Region: model.RegionLatinAmericaMexico, Latitude: 30.1975, Longitude: -97.6664, IsOrigin: true},
	{Code: "DFW", Name: "Dallas/Fort Worth International", City: "Dallas", Country: "United States", Region: model.RegionLatinAmericaMexico, Latitude: 32.8968, Longitude: -97.038, IsOrigin: true},
	{Code: "DAL", Name: "Dallas Love Field", City: "Dallas", Country: "United States", Region: model.RegionLatinAmericaMexico, Latitude: 32.8471, Longitude: -96.8518, IsOrigin: true},

	// Europe
	{Code: "LHR", Name: "London Heathrow", City: "London", Country: "United Kingdom", Region: model.RegionEurope, Latitude: 51.47, Longitude: -0.4543},
	{Code: "LGW", Name: "London Gatwick", City: "London", Country: "United Kingdom", Region: model.RegionEurope, Latitude: 51.1537, Longitude: -0.1821},
	{Code: "STN", Name: "London Stansted", City: "London", Country: "United Kingdom", Region: model.RegionEurope, Latitude: 51.886, Longitude: 0.2389},
	{Code: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France", Region: model.RegionEurope, Latitude: 49.0097, Longitude: 2.5479},
	{Code: "ORY", Name: "Paris Orly", City: "Paris", Country: "France", Region: model.RegionEurope, Latitude: 48.7262, Longitude: 2.3652},
	{Code: "BER", Name: "Berlin Brandenburg", City: "Berlin", Country: "Germany", Region: model.RegionEurope, Latitude: 52.3667, Longitude: 13.5033},
	{Code: "FCO", Name: "Leonardo da Vinci-Fiumicino", City: "Rome", Country: "Italy", Region: model.RegionEurope, Latitude: 41.8003, Longitude: 12.2389},
	{Code: "BCN", Name: "Barcelona-El Prat", City: "Barcelona", Country: "Spain", Region: model.RegionEurope, Latitude: 41.2971, Longitude: 2.0785},
	{Code: "MAD", Name: "Adolfo Suarez Madrid-Barajas", City: "Madrid", Country: "Spain", Region: model.RegionEurope, Latitude: 40.4936, Longitude: -3.5668},
	{Code: "ATH", Name: "Athens International", City: "Athens", Country: "Greece", Region: model.RegionEurope, Latitude: 37.9364, Longitude: 23.9445},
	{Code: "PMI", Name: "Palma de Mallorca", City: "Mallorca", Country: "Spain", Region: model.RegionEurope, Latitude: 39.5517, Longitude: 2.7388},
	{Code: "LIS", Name: "Humberto Delgado", City: "Lisbon", Country: "Portugal", Region: model.RegionEurope, Latitude: 38.7756, Longitude: -9.1354},
	{Code: "DUB", Name: "Dublin Airport", City: "Dublin", Country: "Ireland", Region: model.RegionEurope, Latitude: 53.4264, Longitude: -6.2499},
	{Code: "ARN", Name: "Stockholm Arlanda", City: "Stockholm", Country: "Sweden", Region: model.RegionEurope, Latitude: 59.6519, Longitude: 17.9186},
	{Code: "VIE", Name: "Vienna International", City: "Vienna", Country: "Austria", Region: model.RegionEurope, Latitude: 48.1103, Longitude: 16.5697},
	{Code: "PRG", Name: "Vaclav Havel Prague", City: "Prague", Country: "Czech Republic", Region: model.RegionEurope, Latitude: 50.1008, Longitude: 14.26},
	{Code: "AMS", Name: "Amsterdam Schiphol", City: "Amsterdam", Country: "Netherlands", Region: model.RegionEurope, Latitude: 52.3105, Longitude: 4.7683},

	// Asia
	{Code: "NRT", Name: "Narita International", City: "Tokyo", Country: "Japan", Region: model.RegionAsia, Latitude: 35.7647, Longitude: 140.3864},
	{Code: "HND", Name: "Tokyo Haneda", City: "Tokyo", Country: "Japan", Region: model.RegionAsia, Latitude: 35.5494, Longitude: 139.7798},
	{Code: "BKK", Name: "Suvarnabhumi", City: "Bangkok", Country: "Thailand", Region: model.RegionAsia, Latitude: 13.69, Longitude: 100.7501},
	{Code: "PVG", Name: "Shanghai Pudong", City: "Shanghai", Country: "China", Region: model.RegionAsia, Latitude: 31.1443, Longitude: 121.8083},
	{Code: "ICN", Name: "Incheon International", City: "Seoul", Country: "South Korea", Region: model.RegionAsia, Latitude: 37.4602, Longitude: 126.4407},
	{Code: "PEK", Name: "Beijing Capital", City: "Beijing", Country: "China", Region: model.RegionAsia, Latitude: 40.0799, Longitude: 116.6031},

	// Middle East
	{Code: "DXB", Name: "Dubai International", City: "Dubai", Country: "United Arab Emirates", Region: model.RegionMiddleEast, Latitude: 25.2532, Longitude: 55.3657},

	// Oceania
	{Code: "SYD", Name: "Sydney Kingsford Smith", City: "Sydney", Country: "Australia", Region: model.RegionOceania, Latitude: -33.9399, Longitude: 151.1753},
	{Code: "MEL", Name: "Melbourne Tullamarine", City: "Melbourne", Country: "Australia", Region: model.RegionOceania, Latitude: -37.669, Longitude: 144.841},

	// Latin America
	{Code: "BOG", Name: "El Dorado International", City: "Bogota", Country: "Colombia", Region: model.RegionLatinAmericaSouth, Latitude: 4.7016, Longitude: -74.1469},
	{Code: "MEX", Name: "Mexico City International", City: "Mexico City", Country: "Mexico", Region: model.RegionLatinAmericaMexico, Latitude: 19.4361, Longitude: -99.0719},
	{Code: "CUN", Name: "Cancun International", City: "Cancun", Country: "Mexico", Region: model.RegionLatinAmericaMexico, Latitude: 21.0365, Longitude: -86.8771},
	{Code: "CZM", Name: "Cozumel International", City: "Cozumel", Country: "Mexico", Region: model.RegionLatinAmericaMexico, Latitude: 20.5224, Longitude: -86.9256},
	{Code: "PVR", Name: "Gustavo Diaz Ordaz", City: "Puerto Vallarta", Country: "Mexico", Region: model.RegionLatinAmericaMexico, Latitude: 20.6801, Longitude: -105.2544},
	{Code: "MDE", Name: "Jose Maria Cordova", City: "Medellin", Country: "Colombia", Region: model.RegionLatinAmericaSouth, Latitude: 6.1645, Longitude: -75.4231},
	{Code: "GIG", Name: "Rio de Janeiro Galeao", City: "Rio de Janeiro", Country: "Brazil", Region: model.RegionLatinAmericaSouth, Latitude: -22.81, Longitude: -43.2506},
	{Code: "GRU", Name: "Sao Paulo-Guarulhos", City: "Sao Paulo", Country: "Brazil", Region: model.RegionLatinAmericaSouth, Latitude: -23.4356, Longitude: -46.4731},
	{Code: "PTY", Name: "Tocumen International", City: "Panama City", Country: "Panama", Region: model.RegionLatinAmericaSouth, Latitude: 9.0714, Longitude: -79.3835},
	{Code: "GUA", Name: "La Aurora International", City: "Guatemala City", Country: "Guatemala", Region: model.RegionLatinAmericaSouth, Latitude: 14.5833, Longitude: -90.5275},
	{Code: "SJO", Name: "Juan Santamaria International", City: "San Jose", Country: "Costa Rica", Region: model.RegionLatinAmericaSouth, Latitude: 9.9939, Longitude: -84.2088},
	{Code: "SJD", Name: "Los Cabos International", City: "San Jose del Cabo", Country: "Mexico", Region: model.RegionLatinAmericaMexico, Latitude: 23.1518, Longitude: -109.7215},
	{Code: "GDL", Name: "Miguel Hidalgo y Costilla International", City: "Guadalajara", Country: "Mexico", Region: model.RegionLatinAmericaMexico, Latitude: 20.5218, Longitude: -103.3111},

	// Caribbean
	{Code: "MBJ", Name: "Sangster International", City: "Montego Bay", Country: "Jamaica", Region: model.RegionCaribbean, Latitude: 18.5037, Longitude: -77.9134},
	{Code: "SJU", Name: "Luis Munoz Marin International", City: "San Juan", Country: "Puerto Rico", Region: model.RegionCaribbean, Latitude: 18.4394, Longitude: -66.0018},
	{Code: "NAS", Name: "Lynden Pindling International", City: "Nassau", Country: "Bahamas", Region: model.RegionCaribbean, Latitude: 25.039, Longitude: -77.4661},
	{Code: "AUA", Name: "Queen Beatrix International", City: "Oranjestad", Country: "Aruba", Region: model.RegionCaribbean, Latitude: 12.5014, Longitude: -70.0152},
}

// AirportByCode returns the registry entry for an IATA code.
func AirportByCode(code string) (model.Airport, bool) {
	for _, a := range Airports {
		if a.Code == code {
			return a, true
		}
	}
	return model.Airport{}, false
}

// DestinationAirports returns all non-origin airports.
func DestinationAirports() []model.Airport {
	dests := make([]model.Airport, 0, len(Airports))
	for _, a := range Airports {
		if !a.IsOrigin {
			dests = append(dests, a)
		}
	}
	return dests
}
