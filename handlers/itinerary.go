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

type ItineraryRequest struct {
	Destination  string   `json:"destination"`
	CheckInDate  string   `json:"check_in_date"`
	CheckOutDate string   `json:"check_out_date"`
	Flights      string   `json:"flights"`
	Hotels       string   `json:"hotels"`
	Activities   []string `json:"activities"`
}

type ItineraryResponse struct {
	Itinerary   string `json:"itinerary"`
	ItineraryID string `json:"itinerary_id,omitempty"`
	PDFURL      string `json:"pdf_url,omitempty"`
}

// GenerateItineraryHandler serves POST /generate_itinerary/. Unlike the
// search paths, a collaborator failure here fails the request: the itinerary
// text is the entire response.
func GenerateItineraryHandler(c *gin.Context) {
	var req ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Destination is required"})
		return
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check-in date format. Use YYYY-MM-DD"})
		return
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check-out date format. Use YYYY-MM-DD"})
		return
	}
	if !checkOut.After(checkIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Check-out date must be after check-in date"})
		return
	}

	golog.Infof("itinerary request: %s, %s to %s", req.Destination, req.CheckInDate, req.CheckOutDate)

	itinerary, err := services.GetAgentClient().GenerateItinerary(
		c.Request.Context(),
		req.Destination,
		req.Flights,
		req.Hotels,
		req.CheckInDate,
		req.CheckOutDate,
		req.Activities,
	)
	if err != nil {
		golog.Errorf("itinerary generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Itinerary generation error: " + err.Error()})
		return
	}

	resp := ItineraryResponse{Itinerary: itinerary}

	// Archive with a rendered PDF when the store is available; best-effort.
	if database.Enabled() {
		days, _ := services.TripDays(req.CheckInDate, req.CheckOutDate)
		pdfBytes, err := services.GeneratePDFBytes(services.PDFData{
			Destination:  req.Destination,
			CheckInDate:  req.CheckInDate,
			CheckOutDate: req.CheckOutDate,
			Days:         days,
			FlightsText:  req.Flights,
			HotelsText:   req.Hotels,
			Itinerary:    itinerary,
		})
		if err != nil {
			golog.Warnf("itinerary PDF generation failed: %v", err)
		} else {
			id := uuid.New().String()
			record := &database.Itinerary{
				ID:           id,
				Destination:  req.Destination,
				CheckInDate:  req.CheckInDate,
				CheckOutDate: req.CheckOutDate,
				Itinerary:    itinerary,
				PDFData:      pdfBytes,
			}
			if err := database.SaveItinerary(record); err != nil {
				golog.Warnf("failed to archive itinerary: %v", err)
			} else {
				resp.ItineraryID = id
				resp.PDFURL = "/download/" + id
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
