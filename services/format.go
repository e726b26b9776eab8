package services

import (
	"fmt"
	"strings"
)

// Formatting renders normalized records into the compact text blocks handed
// to the recommendation agent. Pure and deterministic: one block per record,
// only non-empty fields included.

// FormatFlights renders flight records as prompt text.
func FormatFlights(flights []Flight) string {
	if len(flights) == 0 {
		return "No flights data available."
	}

	blocks := make([]string, 0, len(flights))
	for i, f := range flights {
		lines := []string{fmt.Sprintf("Flight %d:", i+1)}
		lines = appendField(lines, "Airline", f.Airline)
		lines = appendField(lines, "Price", f.Price)
		lines = appendField(lines, "Duration", f.Duration)
		lines = appendField(lines, "Stops", f.Stops)
		lines = appendField(lines, "Departure", f.Departure)
		lines = appendField(lines, "Arrival", f.Arrival)
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n")
}

// FormatHotels renders hotel records as prompt text.
func FormatHotels(hotels []Hotel) string {
	if len(hotels) == 0 {
		return "No hotels data available."
	}

	blocks := make([]string, 0, len(hotels))
	for i, h := range hotels {
		lines := []string{fmt.Sprintf("Hotel %d:", i+1)}
		lines = appendField(lines, "Name", h.Name)
		lines = appendField(lines, "Price", h.PricePerNight)
		lines = appendField(lines, "Location", h.Location)
		lines = appendField(lines, "Rating", h.Rating)
		if len(h.Amenities) > 0 {
			lines = append(lines, "- Amenities: "+strings.Join(h.Amenities, ", "))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n")
}

func appendField(lines []string, label, value string) []string {
	if value == "" {
		return lines
	}
	return append(lines, fmt.Sprintf("- %s: %s", label, value))
}
