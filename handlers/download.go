package handlers

import (
	"net/http"

	"tripscout/database"

	"github.com/gin-gonic/gin"
)

// DownloadHandler serves GET /download/:id, returning the archived PDF of a
// generated itinerary.
func DownloadHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing itinerary ID"})
		return
	}

	if !database.Enabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary archive is not enabled"})
		return
	}

	itinerary, err := database.GetItinerary(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		return
	}

	if len(itinerary.PDFData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "PDF has not been generated for this itinerary"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=tripscout-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", itinerary.PDFData)
}

func HealthHandler(c *gin.Context) {
	archive := "disabled"
	if database.Enabled() {
		archive = "ok"
		if err := database.DB.Ping(); err != nil {
			archive = "error: " + err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "TripScout API",
		"archive": archive,
	})
}
