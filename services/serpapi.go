package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/kataras/golog"
	"github.com/tidwall/gjson"
)

// ─── SerpAPI Client ───────────────────────────────────────────────────────────

type SerpClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var serpClient *SerpClient

func InitSerp() {
	baseURL := os.Getenv("SERP_API_URL")
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}

	serpClient = &SerpClient{
		apiKey:  os.Getenv("SERP_API_KEY"),
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if serpClient.apiKey == "" {
		golog.Warn("SERP_API_KEY not set — flight/hotel search will fail until configured")
		return
	}
	golog.Infof("SerpAPI client initialized (key ending ...%s)", tail(serpClient.apiKey, 4))
}

func GetSerpClient() *SerpClient {
	return serpClient
}

// Candidate top-level keys the provider is known to nest results under,
// in priority order.
var (
	flightResultKeys = []string{"flights", "best_flights", "other_flights", "results"}
	hotelResultKeys  = []string{"properties", "hotels", "results", "data"}
)

// ─── Flight Search ────────────────────────────────────────────────────────────

// SearchFlights issues one Google Flights query and returns the raw,
// schema-variable results sequence. A missing sequence is not an error; any
// transport or provider failure is.
func (c *SerpClient) SearchFlights(q FlightQuery) (gjson.Result, error) {
	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("departure_id", q.Origin)
	params.Set("arrival_id", q.Destination)
	params.Set("outbound_date", q.DepartureDate)
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	}
	params.Set("currency", "USD")
	if q.Passengers > 1 {
		params.Set("adults", strconv.Itoa(q.Passengers))
	}

	raw, err := c.doSearch(params)
	if err != nil {
		return gjson.Result{}, err
	}

	results := pickResults(raw, flightResultKeys)
	if !results.Exists() {
		golog.Warnf("no flight data in provider response for %s-%s", q.Origin, q.Destination)
	}
	return results, nil
}

// ─── Hotel Search ─────────────────────────────────────────────────────────────

// SearchHotels issues one Google Hotels query and returns the raw results
// sequence.
func (c *SerpClient) SearchHotels(q HotelQuery) (gjson.Result, error) {
	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", q.Location)
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("check_in_date", q.CheckInDate)
	params.Set("check_out_date", q.CheckOutDate)
	params.Set("currency", "USD")
	params.Set("adults", strconv.Itoa(q.Guests))
	params.Set("sort_by", "3")
	params.Set("rating", "8")

	raw, err := c.doSearch(params)
	if err != nil {
		return gjson.Result{}, err
	}

	results := pickResults(raw, hotelResultKeys)
	if !results.Exists() {
		golog.Warnf("no hotel data in provider response for %q", q.Location)
	}
	return results, nil
}

// ─── Transport ────────────────────────────────────────────────────────────────

// doSearch performs a single blocking provider call. One attempt only — the
// contract is fail closed, never a partial result.
func (c *SerpClient) doSearch(params url.Values) (gjson.Result, error) {
	if c == nil || c.apiKey == "" {
		return gjson.Result{}, fmt.Errorf("search failed: SERP_API_KEY not configured")
	}

	params.Set("api_key", c.apiKey)

	resp, err := c.httpClient.Get(c.baseURL + "/search.json?" + params.Encode())
	if err != nil {
		return gjson.Result{}, fmt.Errorf("search failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = string(body)
		}
		return gjson.Result{}, fmt.Errorf("search failed (%d): %s", resp.StatusCode, msg)
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("search failed: invalid provider payload")
	}

	raw := gjson.ParseBytes(body)
	if msg := raw.Get("error"); msg.Exists() {
		return gjson.Result{}, fmt.Errorf("search failed: %s", msg.String())
	}
	return raw, nil
}

// pickResults resolves the results sequence out of a raw provider payload:
// a bare sequence is taken as-is, otherwise the known keys are probed in
// priority order and the first non-empty sequence wins.
func pickResults(raw gjson.Result, keys []string) gjson.Result {
	if raw.IsArray() {
		return raw
	}
	for _, k := range keys {
		if v := raw.Get(k); v.IsArray() && len(v.Array()) > 0 {
			return v
		}
	}
	return gjson.Result{}
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
