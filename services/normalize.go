package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kataras/golog"
	"github.com/tidwall/gjson"
)

// Normalization maps the provider's inconsistent response shapes into the
// fixed Flight/Hotel schemas. Every output field is resolved by probing a
// small ordered list of alternative source keys and coercing whatever type
// shows up; anything missing degrades to "" rather than failing the record.
// A record is only dropped when it misses the admission minimum (flight:
// airline or price, hotel: name) or is not an object at all.

const maxAmenities = 10

// ─── Flights ──────────────────────────────────────────────────────────────────

// NormalizeFlights converts a raw flight payload (bare sequence, or a mapping
// holding the sequence under a known key) into Flight records. Output order
// matches input order; an unrecognized payload yields an empty list, never an
// error.
func NormalizeFlights(raw gjson.Result, q FlightQuery) []Flight {
	flights := []Flight{}

	records := pickResults(raw, flightResultKeys)
	if !records.Exists() {
		return flights
	}

	for i, rec := range records.Array() {
		if !rec.IsObject() {
			golog.Warnf("skipping flight record %d: not an object (%s)", i, rec.Type)
			continue
		}

		airline := coerceText(probe(rec, "airline", "airlines.0.name"))
		price := coercePrice(probe(rec, "price", "total_price"))

		// Admission policy: keep only records with at least an airline or a price.
		if airline == "" && price == "" {
			continue
		}

		flights = append(flights, Flight{
			Airline:     airline,
			Price:       price,
			Duration:    coerceDuration(probe(rec, "duration", "flight_duration")),
			Stops:       coerceStops(probe(rec, "stops", "number_of_stops")),
			Departure:   coerceEndpointTime(probe(rec, "departure_airport", "departure")),
			Arrival:     coerceEndpointTime(probe(rec, "arrival_airport", "arrival")),
			TravelClass: q.CabinClass,
			ReturnDate:  q.ReturnDate,
			AirlineLogo: coerceText(probe(rec, "airline_logo", "logo")),
			BookingLink: coerceText(probe(rec, "link", "booking_link")),
		})
	}

	return flights
}

// ─── Hotels ───────────────────────────────────────────────────────────────────

// NormalizeHotels converts a raw hotel payload into Hotel records. Records
// without a name are dropped; location falls back to the queried location and
// the stay dates are copied from the query.
func NormalizeHotels(raw gjson.Result, q HotelQuery) []Hotel {
	hotels := []Hotel{}

	records := pickResults(raw, hotelResultKeys)
	if !records.Exists() {
		return hotels
	}

	for i, rec := range records.Array() {
		if !rec.IsObject() {
			golog.Warnf("skipping hotel record %d: not an object (%s)", i, rec.Type)
			continue
		}

		name := coerceText(probe(rec, "title", "name"))
		if name == "" {
			continue
		}

		hotels = append(hotels, Hotel{
			Name:          name,
			PricePerNight: coercePrice(probe(rec, "price", "total_price", "rate")),
			Rating:        coerceText(probe(rec, "rating", "overall_rating")),
			Amenities:     coerceAmenities(probe(rec, "amenities", "features")),
			Location:      coerceLocation(probe(rec, "address", "location"), q.Location),
			CheckIn:       q.CheckInDate,
			CheckOut:      q.CheckOutDate,
			HotelImage:    coerceText(probe(rec, "thumbnail", "image")),
			BookingLink:   coerceText(probe(rec, "link", "booking_link", "url")),
		})
	}

	return hotels
}

// ─── Field Resolution ─────────────────────────────────────────────────────────

// probe returns the first candidate path carrying a usable value: present,
// non-null, and not a blank string.
func probe(rec gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		v := rec.Get(p)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if v.Type == gjson.String && strings.TrimSpace(v.String()) == "" {
			continue
		}
		return v
	}
	return gjson.Result{}
}

// coerceText renders a scalar as a trimmed display string. Numbers keep their
// natural decimal form ("4.5", "8"); containers yield "".
func coerceText(v gjson.Result) string {
	switch v.Type {
	case gjson.String, gjson.Number:
		return strings.TrimSpace(v.String())
	}
	return ""
}

// coercePrice handles the three shapes prices arrive in: a {total: x} style
// sub-object (unwrapped one level), a bare number (currency-formatted), or an
// already-formatted string.
func coercePrice(v gjson.Result) string {
	if v.IsObject() {
		v = probe(v, "total", "price")
	}
	switch v.Type {
	case gjson.Number:
		return fmt.Sprintf("$%.2f", v.Float())
	case gjson.String:
		return strings.TrimSpace(v.String())
	}
	return ""
}

// coerceDuration renders a numeric duration in minutes as "Xh Ym"; string
// durations pass through.
func coerceDuration(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		minutes := int(v.Int())
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	case gjson.String:
		return strings.TrimSpace(v.String())
	}
	return ""
}

// coerceStops: 0 is the literal "Direct", positive counts become their string
// form, and descriptive strings ("nonstop") pass through unchanged.
func coerceStops(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		if n := v.Int(); n > 0 {
			return strconv.FormatInt(n, 10)
		}
		return "Direct"
	case gjson.String:
		return strings.TrimSpace(v.String())
	}
	return ""
}

// coerceEndpointTime resolves a departure/arrival value that may be a plain
// string or an airport sub-object carrying the timestamp.
func coerceEndpointTime(v gjson.Result) string {
	if v.IsObject() {
		v = probe(v, "time", "datetime")
	}
	return coerceText(v)
}

// coerceAmenities reduces an amenity list (strings, or objects with a display
// name) to at most maxAmenities name strings. A lone string becomes a
// single-entry list.
func coerceAmenities(v gjson.Result) []string {
	amenities := []string{}

	if v.IsArray() {
		for _, item := range v.Array() {
			if len(amenities) >= maxAmenities {
				break
			}
			var name string
			if item.IsObject() {
				name = coerceText(item.Get("name"))
			} else {
				name = coerceText(item)
			}
			if name != "" {
				amenities = append(amenities, name)
			}
		}
		return amenities
	}

	if s := coerceText(v); s != "" {
		amenities = append(amenities, s)
	}
	return amenities
}

// coerceLocation resolves a location that may be a string or an address
// sub-object, falling back to the queried location.
func coerceLocation(v gjson.Result, fallback string) string {
	if v.IsObject() {
		v = probe(v, "address", "city")
	}
	if s := coerceText(v); s != "" {
		return s
	}
	return fallback
}
