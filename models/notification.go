package models

// ReminderPayload is the asynq task body for a scheduled booking reminder.
type ReminderPayload struct {
	BookingCode string `json:"booking_code"`
	Date        string `json:"date"` // "2006-01-02"
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Topic       string `json:"topic"`
}
