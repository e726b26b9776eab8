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

type HotelSearchResponse struct {
	Hotels                []services.Hotel `json:"hotels"`
	AIHotelRecommendation string           `json:"ai_hotel_recommendation"`
}

// SearchHotelsHandler serves POST /search_hotels/.
func SearchHotelsHandler(c *gin.Context) {
	var q services.HotelQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	q.Location = strings.TrimSpace(q.Location)
	if q.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location is required"})
		return
	}

	checkIn, err := time.Parse("2006-01-02", q.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check-in date format. Use YYYY-MM-DD"})
		return
	}
	checkOut, err := time.Parse("2006-01-02", q.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check-out date format. Use YYYY-MM-DD"})
		return
	}
	if !checkOut.After(checkIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Check-out date must be after check-in date"})
		return
	}

	if q.Guests <= 0 {
		q.Guests = 1
	}
	switch q.RoomType {
	case "":
		q.RoomType = "standard"
	case "standard", "deluxe":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room type must be 'standard' or 'deluxe'"})
		return
	}
	if q.RoomType != "standard" {
		// The provider has no room-type parameter; noted, not forwarded.
		golog.Infof("room type requested: %s", q.RoomType)
	}

	golog.Infof("hotel search: %q %s to %s (%d guest(s))",
		q.Location, q.CheckInDate, q.CheckOutDate, q.Guests)

	// ── Provider search ────────────────────────────────────────────────────────
	raw, err := services.GetSerpClient().SearchHotels(q)
	if err != nil {
		golog.Errorf("hotel search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hotels := services.NormalizeHotels(raw, q)
	hotelsText := services.FormatHotels(hotels)

	// ── Recommendation ─────────────────────────────────────────────────────────
	recommendation := services.NoHotelsFound
	if len(hotels) > 0 {
		rec, err := services.GetAgentClient().RecommendHotels(c.Request.Context(), hotelsText, q)
		if err != nil {
			golog.Warnf("hotel recommendation failed: %v — using fallback text", err)
			rec = services.RecommendationUnavailable
		}
		recommendation = rec
	}

	archiveSearch(&database.Search{
		ID:        uuid.New().String(),
		Kind:      "hotel",
		Location:  q.Location,
		StartDate: q.CheckInDate,
		EndDate:   q.CheckOutDate,
		Travelers: q.Guests,
		Results:   len(hotels),
	})

	c.JSON(http.StatusOK, HotelSearchResponse{
		Hotels:                hotels,
		AIHotelRecommendation: recommendation,
	})
}
