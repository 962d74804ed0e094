package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roozegaar/calendar/internal/domain/entities"
	"github.com/roozegaar/calendar/internal/infrastructure/logger"
	"github.com/roozegaar/calendar/internal/ports"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEchoContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// stubEventsService serves canned payloads and records the arguments it saw.
type stubEventsService struct {
	lastYearMonth string
	lastCalendar  entities.CalendarType
	payload       *entities.EventsPayload
	currentErr    error
	cleared       bool
}

func (s *stubEventsService) FetchMonthly(_ context.Context, calendar entities.CalendarType, yearMonth string, _ entities.Language) *entities.EventsPayload {
	s.lastCalendar = calendar
	s.lastYearMonth = yearMonth
	return s.payload
}

func (s *stubEventsService) FetchDaily(_ context.Context, _ entities.CalendarType, _ string, _ entities.Language) *entities.EventsPayload {
	return s.payload
}

func (s *stubEventsService) FetchRange(_ context.Context, _ entities.CalendarType, _, _ string, _ entities.Language) *entities.EventsPayload {
	return s.payload
}

func (s *stubEventsService) CurrentMonthEvents(_ context.Context, _ ports.CurrentMonthRequest) (*entities.MonthEvents, error) {
	if s.currentErr != nil {
		return nil, s.currentErr
	}
	return &entities.MonthEvents{
		Main:      &entities.NormalizedEvents{Success: true, Days: []entities.DayEvents{}},
		Secondary: &entities.NormalizedEvents{Success: true, Days: []entities.DayEvents{}},
	}, nil
}

func (s *stubEventsService) Normalize(payload *entities.EventsPayload) *entities.NormalizedEvents {
	return &entities.NormalizedEvents{
		Success:  payload.Success,
		Calendar: payload.Calendar,
		Language: payload.Language,
		Days:     []entities.DayEvents{},
	}
}

func (s *stubEventsService) ClearCache() { s.cleared = true }

func TestMonthlyEventsHandler(t *testing.T) {
	stub := &stubEventsService{
		payload: &entities.EventsPayload{
			Success:  true,
			Calendar: entities.CalendarPersian,
			Language: entities.LanguageFa,
		},
	}
	h := NewEventsHandler(stub, logger.NewNop())

	c, rec := newEchoContext(t, http.MethodGet, "/api/v1/events/monthly?calendar=persian&yearMonth=1403/07&lang=fa", "")
	require.NoError(t, h.Monthly(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.CalendarPersian, stub.lastCalendar)
	assert.Equal(t, "1403/07", stub.lastYearMonth)

	var normalized entities.NormalizedEvents
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &normalized))
	assert.True(t, normalized.Success)
	assert.NotNil(t, normalized.Days)
}

func TestMonthlyEventsHandlerRejectsBadCalendar(t *testing.T) {
	h := NewEventsHandler(&stubEventsService{}, logger.NewNop())

	c, _ := newEchoContext(t, http.MethodGet, "/api/v1/events/monthly?calendar=hijri&yearMonth=1446/01&lang=fa", "")
	err := h.Monthly(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCurrentMonthHandlerMapsInvalidDate(t *testing.T) {
	h := NewEventsHandler(&stubEventsService{currentErr: entities.ErrInvalidDate}, logger.NewNop())

	c, _ := newEchoContext(t, http.MethodGet, "/api/v1/events/current?calendar=persian&year=1403&month=7&lang=fa", "")
	err := h.CurrentMonth(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestClearCacheHandler(t *testing.T) {
	stub := &stubEventsService{}
	h := NewEventsHandler(stub, logger.NewNop())

	c, rec := newEchoContext(t, http.MethodDelete, "/api/v1/events/cache", "")
	require.NoError(t, h.ClearCache(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.cleared)
}

// stubPersonalService returns fixed results.
type stubPersonalService struct {
	event *entities.PersonalEvent
	err   error
}

func (s *stubPersonalService) Create(_ context.Context, req ports.CreatePersonalEventRequest) (*entities.PersonalEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.event, nil
}

func (s *stubPersonalService) Get(_ context.Context, _ uuid.UUID) (*entities.PersonalEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.event, nil
}

func (s *stubPersonalService) Update(_ context.Context, _ uuid.UUID, _ ports.UpdatePersonalEventRequest) (*entities.PersonalEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.event, nil
}

func (s *stubPersonalService) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func (s *stubPersonalService) ListByDay(_ context.Context, _ entities.CalendarType, _, _, _ int) ([]*entities.PersonalEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*entities.PersonalEvent{s.event}, nil
}

func (s *stubPersonalService) ListByMonth(_ context.Context, _ entities.CalendarType, _, _ int) ([]*entities.PersonalEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*entities.PersonalEvent{s.event}, nil
}

func TestCreatePersonalEventHandler(t *testing.T) {
	event := &entities.PersonalEvent{ID: uuid.New(), Calendar: entities.CalendarPersian, Year: 1403, Month: 7, Day: 15, Title: "تولد"}
	h := NewPersonalEventHandler(&stubPersonalService{event: event}, logger.NewNop())

	body := `{"calendar":"persian","year":1403,"month":7,"day":15,"title":"تولد"}`
	c, rec := newEchoContext(t, http.MethodPost, "/api/v1/personal-events", body)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreatePersonalEventHandlerValidates(t *testing.T) {
	h := NewPersonalEventHandler(&stubPersonalService{}, logger.NewNop())

	// Missing title and month out of range.
	body := `{"calendar":"persian","year":1403,"month":13,"day":15}`
	c, _ := newEchoContext(t, http.MethodPost, "/api/v1/personal-events", body)
	err := h.Create(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetPersonalEventHandlerNotFound(t *testing.T) {
	h := NewPersonalEventHandler(&stubPersonalService{err: entities.ErrPersonalEventNotFound}, logger.NewNop())

	c, _ := newEchoContext(t, http.MethodGet, "/api/v1/personal-events/"+uuid.NewString(), "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	err := h.Get(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestGetPersonalEventHandlerBadID(t *testing.T) {
	h := NewPersonalEventHandler(&stubPersonalService{}, logger.NewNop())

	c, _ := newEchoContext(t, http.MethodGet, "/api/v1/personal-events/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.Get(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestListPersonalEventsHandlerDayBranch(t *testing.T) {
	event := &entities.PersonalEvent{ID: uuid.New(), Calendar: entities.CalendarPersian, Year: 1403, Month: 7, Day: 3, Title: "x"}
	h := NewPersonalEventHandler(&stubPersonalService{event: event}, logger.NewNop())

	c, rec := newEchoContext(t, http.MethodGet, "/api/v1/personal-events?calendar=persian&year=1403&month=7&day=3", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}
