package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"event-api/core/errors"
	"event-api/core/middleware"
	"event-api/core/middleware/middlewaretest"
	"event-api/core/params"
	"event-api/modules/event/controller"
	"event-api/modules/event/dto"
	permissionService "event-api/modules/permission/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// stubEventService records what the handlers pass and answers with err when set.
type stubEventService struct {
	err     *errors.AppError
	created *dto.EventRequest
	deleted uuid.UUID
}

func (s *stubEventService) GetEvents(context.Context, params.QueryParams) (*dto.PaginatedEventResponse, *errors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PaginatedEventResponse{Items: []dto.EventResponse{}, PageNumber: 1, PageSize: 10}, nil
}

func (s *stubEventService) GetEvent(_ context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.EventResponse{ID: id, Title: "Go meetup"}, nil
}

func (s *stubEventService) CreateEvent(_ context.Context, _ *middleware.Principal, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = req
	return &dto.EventResponse{ID: uuid.New(), Title: req.Title, Location: req.Location}, nil
}

func (s *stubEventService) UpdateEvent(_ context.Context, _ *middleware.Principal, id uuid.UUID, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.EventResponse{ID: id, Title: req.Title}, nil
}

func (s *stubEventService) DeleteEvent(_ context.Context, _ *middleware.Principal, id uuid.UUID) *errors.AppError {
	if s.err != nil {
		return s.err
	}
	s.deleted = id
	return nil
}

func newTestServer(t *testing.T, svc *stubEventService) (*echo.Echo, string) {
	t.Helper()
	mw, users := middlewaretest.New()
	e := echo.New()
	NewEventRouter(controller.NewEventController(svc)).Register(e.Group("/api"), mw)
	return e, users.Login(t, &middleware.Principal{ID: uuid.New(), Email: "ann@example.com"})
}

func serve(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

const validEvent = `{"title":"Go meetup","description":"talks","date":"2025-02-12 14:00:00","location":"Lisbon"}`

func TestEventRoutes(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		anon   bool
		err    *errors.AppError
		status int
		code   string
	}{
		{name: "list needs auth", method: http.MethodGet, path: "/api/events/", anon: true, status: http.StatusUnauthorized, code: "MISSING_AUTHORIZATION_HEADER"},
		{name: "list", method: http.MethodGet, path: "/api/events/?search=go", status: http.StatusOK},
		{name: "create", method: http.MethodPost, path: "/api/events/", body: validEvent, status: http.StatusCreated},
		{name: "create bad date", method: http.MethodPost, path: "/api/events/", body: `{"title":"t","description":"d","date":"12/02/2025","location":"l"}`, status: http.StatusBadRequest, code: "INVALID_INPUT"},
		{name: "create malformed json", method: http.MethodPost, path: "/api/events/", body: `{`, status: http.StatusBadRequest, code: "INVALID_REQUEST_DATA"},
		{name: "get", method: http.MethodGet, path: "/api/event/" + id.String() + "/", status: http.StatusOK},
		{name: "get non uuid", method: http.MethodGet, path: "/api/event/42/", status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "get missing", method: http.MethodGet, path: "/api/event/" + id.String() + "/", err: errors.NewAppError(errors.ErrNotFound, permissionService.MsgEventNotFound, nil), status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "update by member", method: http.MethodPut, path: "/api/event/" + id.String() + "/", body: validEvent, err: errors.NewAppError(errors.ErrForbidden, permissionService.MsgMemberCannotModify, nil), status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "delete", method: http.MethodDelete, path: "/api/event/" + id.String() + "/", status: http.StatusNoContent},
		{name: "no trailing slash", method: http.MethodGet, path: "/api/events", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubEventService{err: tt.err}
			e, auth := newTestServer(t, svc)
			if tt.anon {
				auth = ""
			}

			rec := serve(e, tt.method, tt.path, auth, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.code != "" {
				body := decode(t, rec)
				if body["status"] != "error" || body["code"] != tt.code {
					t.Fatalf("envelope = %v, want code %s", body, tt.code)
				}
			}
		})
	}
}

func TestCreateEventEnvelope(t *testing.T) {
	svc := &stubEventService{}
	e, auth := newTestServer(t, svc)

	rec := serve(e, http.MethodPost, "/api/events/", auth, validEvent)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["status"] != float64(http.StatusCreated) || body["message"] != "Create event success" {
		t.Fatalf("envelope = %v", body)
	}
	data, _ := body["data"].(map[string]any)
	if data["title"] != "Go meetup" {
		t.Fatalf("data = %v", data)
	}
	if svc.created == nil || svc.created.Date != "2025-02-12 14:00:00" {
		t.Fatalf("service got %+v", svc.created)
	}
}

func TestDeleteEventIsNoContent(t *testing.T) {
	svc := &stubEventService{}
	e, auth := newTestServer(t, svc)
	id := uuid.New()

	rec := serve(e, http.MethodDelete, "/api/event/"+id.String()+"/", auth, "")
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("got %d %q, want empty 204", rec.Code, rec.Body.String())
	}
	if svc.deleted != id {
		t.Fatalf("deleted = %s, want %s", svc.deleted, id)
	}
}

func TestCreateValidationDetails(t *testing.T) {
	e, auth := newTestServer(t, &stubEventService{})

	rec := serve(e, http.MethodPost, "/api/events/", auth, `{"title":"t"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	details, _ := decode(t, rec)["details"].(map[string]any)
	for _, field := range []string{"description", "date", "location"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("details missing %q: %v", field, details)
		}
	}
}
