package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHandlerCreate(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)
	e := echo.New()

	body := fmt.Sprintf(`{
		"client_id": %q, "therapist_id": %q, "room_id": %q, "variant_id": %q,
		"date": "2026-09-07", "start_minute": 600, "end_minute": 660
	}`, env.clientID, env.therapist.TherapistID, env.room.ID, env.variant60.ID)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/reservations", body), rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var res Reservation
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Status != StatusNew || res.StartMinute != 600 {
		t.Errorf("unexpected reservation %+v", res)
	}
}

func TestHandlerCreateConflictMapsTo422(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)
	e := echo.New()

	if _, err := env.svc.Create(context.Background(), env.createRequest(600, 660)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	body := fmt.Sprintf(`{
		"client_id": %q, "therapist_id": %q, "room_id": %q, "variant_id": %q,
		"date": "2026-09-07", "start_minute": 630, "end_minute": 690
	}`, env.clientID, env.therapist.TherapistID, env.room.ID, env.variant60.ID)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/reservations", body), httptest.NewRecorder())
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	payload, ok := httpErr.Message.(map[string]interface{})
	if !ok || payload["kind"] != KindTherapistConflict {
		t.Errorf("expected kind in body, got %v", httpErr.Message)
	}
}

func TestHandlerIllegalTransitionMapsTo409(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)
	e := echo.New()

	res, err := env.svc.Create(context.Background(), env.createRequest(600, 660))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"status":"COMPLETED"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(res.ID.String())
	herr := h.UpdateStatus(c)
	httpErr, ok := herr.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", herr)
	}
}

func TestHandlerGetUnknownMapsTo404(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("00000000-0000-0000-0000-000000000001")
	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandlerGetByNumberFallback(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)
	e := echo.New()

	res, err := env.svc.Create(context.Background(), env.createRequest(600, 660))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(res.Number)
	if err := h.Get(c); err != nil {
		t.Fatalf("get by number: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandlerAvailabilityValidation(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=not-a-date", nil), httptest.NewRecorder())
	err := h.Availability(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %v", err)
	}

	target := fmt.Sprintf("/api/v1/availability?date=2026-09-07&variant_id=%s", env.variant60.ID)
	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	if err := h.Availability(c); err != nil {
		t.Fatalf("availability: %v", err)
	}
	var offers []SlotOffer
	if err := json.Unmarshal(rec.Body.Bytes(), &offers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(offers) == 0 {
		t.Error("expected offers for an empty day")
	}
}
