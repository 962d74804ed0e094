package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roozegaar/calendar/internal/domain/entities"
	"github.com/roozegaar/calendar/internal/infrastructure/logger"
	"github.com/roozegaar/calendar/internal/ports"
)

// MessageResponse is a generic message wrapper
type MessageResponse struct {
	Message string `json:"message"`
}

// CalendarHandler handles calendar-grid and conversion requests
type CalendarHandler struct {
	calendarService ports.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService ports.CalendarService, appLogger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          appLogger,
	}
}

// MonthGrid handles GET /calendar/month
func (h *CalendarHandler) MonthGrid(c echo.Context) error {
	var req ports.MonthGridRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grid, err := h.calendarService.MonthGrid(req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidDate) || errors.Is(err, entities.ErrInvalidCalendarType) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, grid)
}

// Convert handles GET /calendar/convert
func (h *CalendarHandler) Convert(c echo.Context) error {
	calendar := entities.CalendarType(c.QueryParam("calendar"))
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	converted, err := h.calendarService.Convert(calendar, date)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidDate) || errors.Is(err, entities.ErrInvalidCalendarType) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, converted)
}

// Today handles GET /calendar/today
func (h *CalendarHandler) Today(c echo.Context) error {
	lang := entities.Language(c.QueryParam("lang"))
	if lang == "" {
		lang = entities.LanguageFa
	}
	return c.JSON(http.StatusOK, h.calendarService.Today(lang))
}

// EventsHandler handles remote event requests
type EventsHandler struct {
	eventsService ports.EventsService
	logger        *logger.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(eventsService ports.EventsService, appLogger *logger.Logger) *EventsHandler {
	return &EventsHandler{
		eventsService: eventsService,
		logger:        appLogger,
	}
}

type monthlyEventsRequest struct {
	Calendar  entities.CalendarType `query:"calendar" validate:"required,oneof=persian gregorian"`
	YearMonth string                `query:"yearMonth" validate:"required"`
	Language  entities.Language     `query:"lang" validate:"required,oneof=fa en"`
}

type dailyEventsRequest struct {
	Calendar entities.CalendarType `query:"calendar" validate:"required,oneof=persian gregorian"`
	Date     string                `query:"date" validate:"required"`
	Language entities.Language     `query:"lang" validate:"required,oneof=fa en"`
}

type rangeEventsRequest struct {
	Calendar entities.CalendarType `query:"calendar" validate:"required,oneof=persian gregorian"`
	Start    string                `query:"start" validate:"required"`
	End      string                `query:"end" validate:"required"`
	Language entities.Language     `query:"lang" validate:"required,oneof=fa en"`
}

// Monthly handles GET /events/monthly
func (h *EventsHandler) Monthly(c echo.Context) error {
	var req monthlyEventsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload := h.eventsService.FetchMonthly(c.Request().Context(), req.Calendar, req.YearMonth, req.Language)
	return c.JSON(http.StatusOK, h.eventsService.Normalize(payload))
}

// Daily handles GET /events/daily
func (h *EventsHandler) Daily(c echo.Context) error {
	var req dailyEventsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload := h.eventsService.FetchDaily(c.Request().Context(), req.Calendar, req.Date, req.Language)
	return c.JSON(http.StatusOK, payload)
}

// Range handles GET /events/range
func (h *EventsHandler) Range(c echo.Context) error {
	var req rangeEventsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload := h.eventsService.FetchRange(c.Request().Context(), req.Calendar, req.Start, req.End, req.Language)
	return c.JSON(http.StatusOK, h.eventsService.Normalize(payload))
}

// CurrentMonth handles GET /events/current
func (h *EventsHandler) CurrentMonth(c echo.Context) error {
	var req ports.CurrentMonthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.eventsService.CurrentMonthEvents(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// ClearCache handles DELETE /events/cache
func (h *EventsHandler) ClearCache(c echo.Context) error {
	h.eventsService.ClearCache()
	return c.JSON(http.StatusOK, MessageResponse{Message: "Cache cleared"})
}

// PersonalEventHandler handles user-authored event requests
type PersonalEventHandler struct {
	personalService ports.PersonalEventService
	logger          *logger.Logger
}

// NewPersonalEventHandler creates a new personal event handler
func NewPersonalEventHandler(personalService ports.PersonalEventService, appLogger *logger.Logger) *PersonalEventHandler {
	return &PersonalEventHandler{
		personalService: personalService,
		logger:          appLogger,
	}
}

type listPersonalEventsRequest struct {
	Calendar entities.CalendarType `query:"calendar" validate:"required,oneof=persian gregorian"`
	Year     int                   `query:"year" validate:"required"`
	Month    int                   `query:"month" validate:"required,min=1,max=12"`
	Day      int                   `query:"day" validate:"omitempty,min=1,max=31"`
}

// List handles GET /personal-events. With a day parameter it lists one day,
// otherwise the whole month.
func (h *PersonalEventHandler) List(c echo.Context) error {
	var req listPersonalEventsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var (
		events []*entities.PersonalEvent
		err    error
	)
	if req.Day > 0 {
		events, err = h.personalService.ListByDay(c.Request().Context(), req.Calendar, req.Year, req.Month, req.Day)
	} else {
		events, err = h.personalService.ListByMonth(c.Request().Context(), req.Calendar, req.Year, req.Month)
	}
	if err != nil {
		if errors.Is(err, entities.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("list personal events failed", "error", err)
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// Create handles POST /personal-events
func (h *PersonalEventHandler) Create(c echo.Context) error {
	var req ports.CreatePersonalEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.personalService.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidDate) || errors.Is(err, entities.ErrInvalidCalendarType) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("create personal event failed", "error", err)
		return err
	}

	return c.JSON(http.StatusCreated, event)
}

// Get handles GET /personal-events/:id
func (h *PersonalEventHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event ID")
	}

	event, err := h.personalService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrPersonalEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Personal event not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, event)
}

// Update handles PUT /personal-events/:id
func (h *PersonalEventHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event ID")
	}

	var req ports.UpdatePersonalEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.personalService.Update(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrPersonalEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Personal event not found")
		case errors.Is(err, entities.ErrInvalidDate):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			h.logger.Errorw("update personal event failed", "error", err, "event_id", id)
			return err
		}
	}

	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /personal-events/:id
func (h *PersonalEventHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event ID")
	}

	if err := h.personalService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrPersonalEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Personal event not found")
		}
		h.logger.Errorw("delete personal event failed", "error", err, "event_id", id)
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Personal event deleted"})
}
