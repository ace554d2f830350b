package handlers

import (
	"net/http"
	"time"

	"advisorly/models"
	bookingSvc "advisorly/services/booking"
	"advisorly/utils"

	"github.com/gin-gonic/gin"
)

// GetBookingHandler looks up one booking by code.
func GetBookingHandler(c *gin.Context) {
	code := bookingSvc.ExtractBookingCode(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking code"})
		return
	}

	booking, err := LedgerService.GetBooking(c.Request.Context(), code)
	if err != nil {
		if bookingSvc.HasCode(err, bookingSvc.CodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetAvailabilityHandler lists free slots for a date and optional window.
// Non-working dates shift to the next working day, mirroring the assistant.
func GetAvailabilityHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required, format 2006-01-02"})
		return
	}
	date, err := time.ParseInLocation(utils.DateLayout, dateStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}
	window := c.DefaultQuery("window", "any")

	day := SchedulingEngine.ResolveWorkingDay(date)
	resolved := day.Format(utils.DateLayout)

	existing, err := LedgerService.ActiveBookings(c.Request.Context(), resolved)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "availability lookup failed", "details": err.Error()})
		return
	}
	slots := SchedulingEngine.AvailableSlots(day, window, 0, existing)
	if slots == nil {
		slots = []models.Slot{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   resolved,
		"window": window,
		"slots":  slots,
	})
}

// HealthHandler is the liveness probe.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
