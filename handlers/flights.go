package handlers

import (
	"net/http"
	"strings"
	"time"

	"tripscout/database"
	"tripscout/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kataras/golog"
)

type FlightSearchResponse struct {
	Flights                []services.Flight `json:"flights"`
	AIFlightRecommendation string            `json:"ai_flight_recommendation"`
}

// SearchFlightsHandler serves POST /search_flights/: one provider search,
// normalization, text formatting, and one optional agent delegation.
func SearchFlightsHandler(c *gin.Context) {
	var q services.FlightQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))

	if len(q.Origin) != 3 || len(q.Destination) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Airport codes must be exactly 3 characters (e.g. LHR, JFK)"})
		return
	}

	depDate, err := time.Parse("2006-01-02", q.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid departure date format. Use YYYY-MM-DD"})
		return
	}
	if q.ReturnDate != "" {
		retDate, err := time.Parse("2006-01-02", q.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return date format. Use YYYY-MM-DD"})
			return
		}
		if !retDate.After(depDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Return date must be after departure date"})
			return
		}
	}

	if q.Passengers <= 0 {
		q.Passengers = 1
	}
	switch q.CabinClass {
	case "":
		q.CabinClass = "economy"
	case "economy", "business":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cabin class must be 'economy' or 'business'"})
		return
	}

	golog.Infof("flight search: %s -> %s on %s (%d passenger(s))",
		q.Origin, q.Destination, q.DepartureDate, q.Passengers)

	// ── Provider search ────────────────────────────────────────────────────────
	raw, err := services.GetSerpClient().SearchFlights(q)
	if err != nil {
		golog.Errorf("flight search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	flights := services.NormalizeFlights(raw, q)
	flightsText := services.FormatFlights(flights)

	// ── Recommendation ─────────────────────────────────────────────────────────
	recommendation := services.NoFlightsFound
	if len(flights) > 0 {
		rec, err := services.GetAgentClient().RecommendFlights(c.Request.Context(), flightsText, q)
		if err != nil {
			golog.Warnf("flight recommendation failed: %v — using fallback text", err)
			rec = services.RecommendationUnavailable
		}
		recommendation = rec
	}

	archiveSearch(&database.Search{
		ID:          uuid.New().String(),
		Kind:        "flight",
		Origin:      q.Origin,
		Destination: q.Destination,
		StartDate:   q.DepartureDate,
		EndDate:     q.ReturnDate,
		Travelers:   q.Passengers,
		Results:     len(flights),
	})

	c.JSON(http.StatusOK, FlightSearchResponse{
		Flights:                flights,
		AIFlightRecommendation: recommendation,
	})
}

// archiveSearch records the query when the archive store is configured.
// Best-effort: failures are logged and never surfaced.
func archiveSearch(s *database.Search) {
	if !database.Enabled() {
		return
	}
	if err := database.SaveSearch(s); err != nil {
		golog.Warnf("failed to archive %s search: %v", s.Kind, err)
	}
}
