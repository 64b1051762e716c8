package handler

import (
	"context"
	"net/http"

	"insuretrack/internal/contract"
	"insuretrack/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ReminderRunner interface {
	Run(ctx context.Context) (*contract.ReminderRunReport, apierror.ErrorResponse)
}

type DefaultReminderRoute struct {
	Runner ReminderRunner
}

func NewReminderDefault(runner ReminderRunner) *DefaultReminderRoute {
	return &DefaultReminderRoute{Runner: runner}
}

// RunReminders triggers a reminder pass on demand. The same pass runs
// on a daily schedule; this endpoint exists so admins can force one
// after fixing data. Concurrent runs are refused with 409.
func (h *DefaultReminderRoute) RunReminders(c echo.Context) error {
	report, apierr := h.Runner.Run(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, report)
}
