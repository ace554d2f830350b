package dialog

import (
	"fmt"
	"strings"

	"advisorly/models"
)

// Fixed user-facing messages. Internal error detail is never echoed here.
const (
	msgPIIRefusal = "For your security, please don't share personal details like phone numbers, emails, or account numbers here. How else can I help with your consultation?"
	msgAdviceRefusal = "I'm not able to give investment recommendations. I can help you book a consultation with an advisor who can. Would you like that?"
	msgGreeting      = "Hello! I can help you book, reschedule, or cancel an advisor consultation, check availability, or tell you what to prepare. What would you like to do?"
	msgIntentRetry   = "Sorry, I didn't catch that. Could you tell me if you'd like to book, reschedule, cancel, check availability, or know what to prepare?"
	msgAskTopic      = "What would you like to discuss? We cover tax planning, retirement planning, insurance review, loan consultation, and estate planning."
	msgTopicRetry    = "I couldn't match that to one of our topics. We cover tax planning, retirement planning, insurance review, loan consultation, and estate planning — which one fits best?"
	msgAskTime       = "When would you like to come in? You can say things like \"tomorrow afternoon\" or \"Friday at 3 PM\"."
	msgWeekendDecline = "I'm sorry, our advisors aren't available on that day. Could you pick a working day instead? We're open Monday through Saturday."
	msgTimeClarify    = "I wasn't sure about the day or time you meant. Could you rephrase it, for example \"Thursday morning\" or \"tomorrow at 2 PM\"?"
	msgWaitlistOffer  = "I couldn't find a free slot in that window. Would you like me to add you to the waitlist? The advisor's team will confirm manually."
	msgWaitlistDecline = "No problem. Would you like to try a different day or time?"
	msgAskCode         = "Could you share your booking code? It looks like two letters, a dash, and a few characters, e.g. NL-A742."
	msgCodeNotFound    = "I couldn't find a booking with that code. Could you double-check it?"
	msgForgotCode      = "No worries — the booking code is in your confirmation email. Once you have it, just tell me and we'll pick up from there."
	msgCancelKept      = "Alright, your booking stays as it is. Anything else I can help with?"
	msgTryAgain        = "Something went wrong on our side. Please try that again in a moment."
)

func msgIntentConfirm(intent models.Intent) string {
	var verb string
	switch intent {
	case models.IntentBookNew:
		verb = "book a new consultation"
	case models.IntentReschedule:
		verb = "reschedule an existing booking"
	case models.IntentCancel:
		verb = "cancel a booking"
	case models.IntentWhatToPrepare:
		verb = "know what to prepare for your consultation"
	case models.IntentCheckAvailability:
		verb = "check available slots"
	default:
		return msgIntentRetry
	}
	return fmt.Sprintf("You'd like to %s. Is that correct?", verb)
}

func msgTopicConfirm(topic string) string {
	return fmt.Sprintf("Got it — a %s consultation. Is that right?", TopicLabels[topic])
}

func msgSlotOffer(slots []models.Slot) string {
	var b strings.Builder
	b.WriteString("Here's what I found:\n")
	for i, s := range slots {
		fmt.Fprintf(&b, "%d. %s on %s\n", i+1, s.Label, s.Date)
	}
	b.WriteString("Which one works for you?")
	return b.String()
}

func msgSlotConfirm(slot models.Slot) string {
	return fmt.Sprintf("Shall I confirm %s on %s?", slot.Label, slot.Date)
}

func msgBookingConfirmed(b *models.Booking) string {
	return fmt.Sprintf("Done! Your %s consultation is booked for %s on %s. Your booking code is %s — you'll need it to reschedule or cancel.",
		TopicLabels[b.Topic], models.SlotLabel(b.Start, b.End), b.Date, b.Code)
}

func msgWaitlisted(b *models.Booking) string {
	return fmt.Sprintf("You're on the waitlist for %s on %s. Your reference code is %s; the advisor's team will reach out to confirm.",
		models.SlotLabel(b.Start, b.End), b.Date, b.Code)
}

func msgRescheduled(b *models.Booking) string {
	return fmt.Sprintf("All set. Booking %s now points to %s on %s.", b.Code, models.SlotLabel(b.Start, b.End), b.Date)
}

func msgCancelConfirm(b *models.Booking) string {
	return fmt.Sprintf("You want to cancel booking %s (%s on %s). Should I go ahead?",
		b.Code, models.SlotLabel(b.Start, b.End), b.Date)
}

func msgCancelled(code string) string {
	return fmt.Sprintf("Booking %s is cancelled. The slot has been released. Anything else?", code)
}

func msgAvailability(slots []models.Slot) string {
	if len(slots) == 0 {
		return "I couldn't find free slots for that day. Want me to check another one?"
	}
	var b strings.Builder
	b.WriteString("These slots are free:\n")
	for i, s := range slots {
		fmt.Fprintf(&b, "%d. %s on %s\n", i+1, s.Label, s.Date)
	}
	b.WriteString("Say the number if you'd like to book one.")
	return b.String()
}
