package services

// ─── Query Types ──────────────────────────────────────────────────────────────

type FlightQuery struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date"`
	Passengers    int      `json:"passengers"`
	CabinClass    string   `json:"cabin_class"`
	Preferences   []string `json:"preferences"`
}

type HotelQuery struct {
	Location     string   `json:"location"`
	CheckInDate  string   `json:"check_in_date"`
	CheckOutDate string   `json:"check_out_date"`
	Guests       int      `json:"guests"`
	RoomType     string   `json:"room_type"`
	Preferences  []string `json:"preferences"`
}

// ─── Normalized Records ───────────────────────────────────────────────────────

// Flight is the fixed output schema for one flight option. Every field is a
// display string; absent upstream data becomes "" so the payload shape never
// varies from record to record.
type Flight struct {
	Airline     string `json:"airline"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	Stops       string `json:"stops"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	TravelClass string `json:"travel_class"`
	ReturnDate  string `json:"return_date"`
	AirlineLogo string `json:"airline_logo"`
	BookingLink string `json:"booking_link"`
}

// Hotel is the fixed output schema for one hotel option.
type Hotel struct {
	Name          string   `json:"name"`
	PricePerNight string   `json:"price_per_night"`
	Rating        string   `json:"rating"`
	Amenities     []string `json:"amenities"`
	Location      string   `json:"location"`
	CheckIn       string   `json:"check_in"`
	CheckOut      string   `json:"check_out"`
	HotelImage    string   `json:"hotel_image"`
	BookingLink   string   `json:"booking_link"`
}
