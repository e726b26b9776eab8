package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var flightQuery = FlightQuery{
	Origin:        "JFK",
	Destination:   "LAX",
	DepartureDate: "2024-06-01",
	ReturnDate:    "2024-06-08",
	Passengers:    2,
	CabinClass:    "economy",
}

var hotelQuery = HotelQuery{
	Location:     "Paris",
	CheckInDate:  "2024-06-01",
	CheckOutDate: "2024-06-05",
	Guests:       2,
	RoomType:     "standard",
}

func TestNormalizeFlights_KeyPriority(t *testing.T) {
	record := `{"airline": "Delta", "price": 450}`

	payloads := []string{
		`{"flights": [` + record + `]}`,
		`{"best_flights": [` + record + `]}`,
		`{"other_flights": [` + record + `]}`,
		`[` + record + `]`,
	}

	for _, payload := range payloads {
		flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
		require.Len(t, flights, 1, "payload: %s", payload)
		assert.Equal(t, "Delta", flights[0].Airline)
		assert.Equal(t, "$450.00", flights[0].Price)
	}
}

func TestNormalizeFlights_FirstNonEmptyKeyWins(t *testing.T) {
	payload := `{
		"flights": [],
		"best_flights": [{"airline": "United", "price": "300 USD"}]
	}`

	flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
	require.Len(t, flights, 1)
	assert.Equal(t, "United", flights[0].Airline)
	assert.Equal(t, "300 USD", flights[0].Price)
}

func TestNormalizeFlights_DurationMinutes(t *testing.T) {
	payload := `{"flights": [{"airline": "Delta", "price": null, "duration": 125}]}`

	flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
	require.Len(t, flights, 1, "record with an airline is retained even without a price")
	assert.Equal(t, "2h 5m", flights[0].Duration)
	assert.Equal(t, "", flights[0].Price)
}

func TestNormalizeFlights_AdmissionPolicy(t *testing.T) {
	payload := `{"flights": [
		{"airline": null, "price": null, "duration": 90, "stops": 1},
		{"airline": "KLM"}
	]}`

	flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
	require.Len(t, flights, 1, "record without airline and price is dropped")
	assert.Equal(t, "KLM", flights[0].Airline)
}

func TestNormalizeFlights_Stops(t *testing.T) {
	payload := `{"flights": [
		{"airline": "A", "stops": 0},
		{"airline": "B", "stops": 2},
		{"airline": "C", "stops": "nonstop"}
	]}`

	flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
	require.Len(t, flights, 3)
	assert.Equal(t, "Direct", flights[0].Stops)
	assert.Equal(t, "2", flights[1].Stops)
	assert.Equal(t, "nonstop", flights[2].Stops)
}

func TestNormalizeFlights_NestedAndAlternativeFields(t *testing.T) {
	payload := `{"flights": [{
		"airlines": [{"name": "Lufthansa"}],
		"total_price": {"total": 612.5},
		"departure_airport": {"time": "2024-06-01 08:15"},
		"arrival": "2024-06-01 14:40",
		"logo": "https://example.com/lh.png",
		"booking_link": "https://example.com/book"
	}]}`

	flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
	require.Len(t, flights, 1)
	f := flights[0]
	assert.Equal(t, "Lufthansa", f.Airline)
	assert.Equal(t, "$612.50", f.Price)
	assert.Equal(t, "2024-06-01 08:15", f.Departure)
	assert.Equal(t, "2024-06-01 14:40", f.Arrival)
	assert.Equal(t, "https://example.com/lh.png", f.AirlineLogo)
	assert.Equal(t, "https://example.com/book", f.BookingLink)
}

func TestNormalizeFlights_QueryFieldsCopied(t *testing.T) {
	payload := `{"flights": [{"airline": "Delta"}]}`

	flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
	require.Len(t, flights, 1)
	assert.Equal(t, "economy", flights[0].TravelClass)
	assert.Equal(t, "2024-06-08", flights[0].ReturnDate)
}

func TestNormalizeFlights_OrderPreserved(t *testing.T) {
	payload := `{"flights": [
		{"airline": "Zeta"},
		{"airline": "Alpha"},
		{"airline": "Mid"}
	]}`

	flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
	require.Len(t, flights, 3)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"},
		[]string{flights[0].Airline, flights[1].Airline, flights[2].Airline})
}

func TestNormalizeFlights_MalformedInputs(t *testing.T) {
	cases := []string{
		`{}`,
		`{"unknown_key": [{"airline": "Delta"}]}`,
		`"just a string"`,
		`42`,
		``,
	}
	for _, payload := range cases {
		assert.Empty(t, NormalizeFlights(gjson.Parse(payload), flightQuery), "payload: %q", payload)
	}
}

func TestNormalizeFlights_NonObjectRecordSkipped(t *testing.T) {
	payload := `{"flights": ["oops", {"airline": "Delta"}]}`

	flights := NormalizeFlights(gjson.Parse(payload), flightQuery)
	require.Len(t, flights, 1)
	assert.Equal(t, "Delta", flights[0].Airline)
}

func TestNormalizeHotels_NameRequired(t *testing.T) {
	payload := `{"properties": [
		{"price": 120, "rating": 4.5},
		{"title": "Grand Hotel", "price": 150}
	]}`

	hotels := NormalizeHotels(gjson.Parse(payload), hotelQuery)
	require.Len(t, hotels, 1, "hotel without title/name is dropped even with price and rating")
	assert.Equal(t, "Grand Hotel", hotels[0].Name)
	assert.Equal(t, "$150.00", hotels[0].PricePerNight)
}

func TestNormalizeHotels_KeyPriority(t *testing.T) {
	record := `{"name": "Ibis"}`
	payloads := []string{
		`{"properties": [` + record + `]}`,
		`{"hotels": [` + record + `]}`,
		`{"results": [` + record + `]}`,
		`{"data": [` + record + `]}`,
		`[` + record + `]`,
	}
	for _, payload := range payloads {
		hotels := NormalizeHotels(gjson.Parse(payload), hotelQuery)
		require.Len(t, hotels, 1, "payload: %s", payload)
		assert.Equal(t, "Ibis", hotels[0].Name)
	}
}

func TestNormalizeHotels_AmenitiesCap(t *testing.T) {
	payload := `{"properties": [{
		"title": "Big Hotel",
		"amenities": ["a1","a2","a3","a4","a5","a6","a7","a8","a9","a10","a11","a12"]
	}]}`

	hotels := NormalizeHotels(gjson.Parse(payload), hotelQuery)
	require.Len(t, hotels, 1)
	require.Len(t, hotels[0].Amenities, 10)
	assert.Equal(t, "a1", hotels[0].Amenities[0])
	assert.Equal(t, "a10", hotels[0].Amenities[9])
}

func TestNormalizeHotels_AmenityObjectsAndString(t *testing.T) {
	payload := `{"properties": [
		{"title": "A", "features": [{"name": "Pool"}, {"name": "Wi-Fi"}, {}]},
		{"title": "B", "amenities": "Breakfast included"}
	]}`

	hotels := NormalizeHotels(gjson.Parse(payload), hotelQuery)
	require.Len(t, hotels, 2)
	assert.Equal(t, []string{"Pool", "Wi-Fi"}, hotels[0].Amenities)
	assert.Equal(t, []string{"Breakfast included"}, hotels[1].Amenities)
}

func TestNormalizeHotels_LocationFallback(t *testing.T) {
	payload := `{"properties": [
		{"title": "A"},
		{"title": "B", "address": "5 Rue Cler"},
		{"title": "C", "location": {"city": "Lyon"}},
		{"title": "D", "location": {}}
	]}`

	hotels := NormalizeHotels(gjson.Parse(payload), hotelQuery)
	require.Len(t, hotels, 4)
	assert.Equal(t, "Paris", hotels[0].Location, "missing location falls back to query location")
	assert.Equal(t, "5 Rue Cler", hotels[1].Location)
	assert.Equal(t, "Lyon", hotels[2].Location)
	assert.Equal(t, "Paris", hotels[3].Location)
}

func TestNormalizeHotels_DefaultsAndDates(t *testing.T) {
	payload := `{"properties": [{"title": "Minimal", "overall_rating": 4.2}]}`

	hotels := NormalizeHotels(gjson.Parse(payload), hotelQuery)
	require.Len(t, hotels, 1)
	h := hotels[0]
	assert.Equal(t, "4.2", h.Rating)
	assert.Equal(t, "", h.PricePerNight)
	assert.NotNil(t, h.Amenities)
	assert.Empty(t, h.Amenities)
	assert.Equal(t, "2024-06-01", h.CheckIn)
	assert.Equal(t, "2024-06-05", h.CheckOut)
}

func TestCoercePrice_Shapes(t *testing.T) {
	cases := map[string]string{
		`{"v": 99}`:               "$99.00",
		`{"v": 99.5}`:             "$99.50",
		`{"v": "from $120"}`:      "from $120",
		`{"v": {"total": 210}}`:   "$210.00",
		`{"v": {"price": "$88"}}`: "$88",
		`{"v": {"other": 1}}`:     "",
		`{"v": [1,2]}`:            "",
		`{"v": null}`:             "",
	}
	for payload, want := range cases {
		got := coercePrice(gjson.Parse(payload).Get("v"))
		assert.Equal(t, want, got, "payload: %s", payload)
	}
}
