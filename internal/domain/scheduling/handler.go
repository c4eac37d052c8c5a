package scheduling

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/spa/spa/internal/platform/auth"
	"github.com/spa/spa/pkg/pagination"
	"github.com/spa/spa/pkg/timerange"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "reception", "therapist"))
	read.GET("/reservations", h.List)
	read.GET("/reservations/:id", h.Get)
	read.GET("/availability", h.Availability)
	read.GET("/schedule", h.DaySchedule)

	write := api.Group("", auth.RequireRole("admin", "reception"))
	write.POST("/reservations", h.Create)
	write.PUT("/reservations/:id/status", h.UpdateStatus)
	write.PUT("/reservations/:id/payment", h.UpdatePayment)
	write.PUT("/reservations/:id/reschedule", h.Reschedule)
	write.PUT("/reservations/:id/cancel", h.Cancel)
}

// domainError maps a rejection kind to the HTTP layer: missing things
// are 404, lifecycle refusals 409, everything else 422.
func domainError(err error) error {
	var de *Error
	if !errors.As(err, &de) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	status := http.StatusUnprocessableEntity
	switch de.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindIllegalStatusTransition:
		status = http.StatusConflict
	}
	return echo.NewHTTPError(status, map[string]interface{}{
		"kind":    de.Kind,
		"message": de.Message,
	})
}

type createPayload struct {
	ClientID    uuid.UUID `json:"client_id"`
	TherapistID uuid.UUID `json:"therapist_id"`
	RoomID      uuid.UUID `json:"room_id"`
	VariantID   uuid.UUID `json:"variant_id"`
	Date        string    `json:"date"`
	StartMinute int       `json:"start_minute"`
	EndMinute   int       `json:"end_minute"`
	Source      *string   `json:"source,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}

func (h *Handler) Create(c echo.Context) error {
	var p createPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	req := CreateRequest{
		ClientID:    p.ClientID,
		TherapistID: p.TherapistID,
		RoomID:      p.RoomID,
		VariantID:   p.VariantID,
		Date:        date,
		Window:      timerange.Range{Start: p.StartMinute, End: p.EndMinute},
		Source:      p.Source,
		Notes:       p.Notes,
	}
	if uid := auth.UserIDFromContext(c.Request().Context()); uid != "" {
		req.CreatedBy = &uid
	}
	res, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) Get(c echo.Context) error {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		// Fall back to the human display code.
		res, nerr := h.svc.GetByNumber(c.Request().Context(), raw)
		if nerr != nil {
			return domainError(nerr)
		}
		return c.JSON(http.StatusOK, res)
	}
	res, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if clientID := c.QueryParam("client_id"); clientID != "" {
		cid, err := uuid.Parse(clientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid client_id")
		}
		pg := pagination.FromContext(c)
		items, total, err := h.svc.ListByClient(ctx, cid, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}

	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	items, err := h.svc.ListByDate(ctx, date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

type statusPayload struct {
	Status Status `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p statusPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.UpdateStatus(c.Request().Context(), id, p.Status)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, res)
}

type paymentPayload struct {
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod *string       `json:"payment_method,omitempty"`
}

func (h *Handler) UpdatePayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p paymentPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.UpdatePayment(c.Request().Context(), id, p.PaymentStatus, p.PaymentMethod)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, res)
}

type reschedulePayload struct {
	Date        string     `json:"date"`
	StartMinute int        `json:"start_minute"`
	EndMinute   int        `json:"end_minute"`
	TherapistID *uuid.UUID `json:"therapist_id,omitempty"`
	RoomID      *uuid.UUID `json:"room_id,omitempty"`
}

func (h *Handler) Reschedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p reschedulePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	res, err := h.svc.Reschedule(c.Request().Context(), id, RescheduleRequest{
		Date:        date,
		Window:      timerange.Range{Start: p.StartMinute, End: p.EndMinute},
		TherapistID: p.TherapistID,
		RoomID:      p.RoomID,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	res, err := h.svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Availability(c echo.Context) error {
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	variantID, err := uuid.Parse(c.QueryParam("variant_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "variant_id is required")
	}
	var therapistID *uuid.UUID
	if raw := c.QueryParam("therapist_id"); raw != "" {
		tid, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid therapist_id")
		}
		therapistID = &tid
	}
	offers, err := h.svc.AvailableSlots(c.Request().Context(), date, variantID, therapistID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, offers)
}

func (h *Handler) DaySchedule(c echo.Context) error {
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	entries, err := h.svc.DaySchedule(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}
