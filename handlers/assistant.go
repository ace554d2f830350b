package handlers

import (
	"context"
	"net/http"

	"advisorly/cron"
	"advisorly/models"
	bookingSvc "advisorly/services/booking"
	"advisorly/services/dialog"
	"advisorly/services/scheduling"
	"advisorly/services/tools"
	"advisorly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Wired by InitHandlers from main before the router starts.
var (
	AssistantService dialog.AssistantService
	LedgerService    bookingSvc.LedgerService
	SchedulingEngine *scheduling.Engine
	ToolDispatcher   *tools.Dispatcher
	ReminderClient   *asynq.Client
)

// InitHandlers injects the service graph into the handler package.
func InitHandlers(
	assistant dialog.AssistantService,
	ledger bookingSvc.LedgerService,
	engine *scheduling.Engine,
	dispatcher *tools.Dispatcher,
	reminders *asynq.Client,
) {
	AssistantService = assistant
	LedgerService = ledger
	SchedulingEngine = engine
	ToolDispatcher = dispatcher
	ReminderClient = reminders
}

// ChatHandler runs one assistant turn: orchestrate, then execute the emitted
// tool commands. The dialog reply never waits on tool outcomes; the ledger is
// already committed when the commands run.
func ChatHandler(c *gin.Context) {
	var req models.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	resp, err := AssistantService.ProcessTurn(c.Request.Context(), req.SessionID, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant turn failed", "details": err.Error()})
		return
	}

	if len(resp.Commands) > 0 && ToolDispatcher != nil {
		resp.ToolResults = ToolDispatcher.Dispatch(c.Request.Context(), resp.Commands)
	}

	scheduleReminderIfBooked(resp)

	c.JSON(http.StatusOK, resp)
}

// scheduleReminderIfBooked enqueues a push ahead of a freshly committed
// booking. Waitlist entries get no reminder until the advisor's team confirms
// them.
func scheduleReminderIfBooked(resp *models.AssistantResponse) {
	if ReminderClient == nil || resp.State != models.StateCompleted || resp.BookingCode == "" {
		return
	}
	booking, err := LedgerService.GetBooking(context.Background(), resp.BookingCode)
	if err != nil || booking.IsWaitlist || booking.Status == models.BookingStatusCancelled {
		return
	}
	if err := cron.EnqueueReminder(ReminderClient, booking); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("booking", booking.Code), zap.Error(err))
	}
}
