package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DDjog/RestAPIz14/internal/api/middleware"
	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

type stubContactService struct {
	listFn          func(ctx context.Context, userID int64, skip, limit int) ([]*domain.Contact, error)
	getFn           func(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
	birthdayFn      func(ctx context.Context, userID int64, horizonDays int) ([]*domain.Contact, error)
	byEmailFn       func(ctx context.Context, userID int64, email string) ([]*domain.Contact, error)
	byFirstnameFn   func(ctx context.Context, userID int64, firstname string) ([]*domain.Contact, error)
	createFn        func(ctx context.Context, userID int64, fields ports.ContactFields) (*domain.Contact, error)
	updateFn        func(ctx context.Context, userID, contactID int64, fields ports.ContactFields) (*domain.Contact, error)
	updateNotesFn   func(ctx context.Context, userID, contactID int64, notes string) (*domain.Contact, error)
	removeFn        func(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
	bothNamesCalled bool
}

func (s *stubContactService) List(ctx context.Context, userID int64, skip, limit int) ([]*domain.Contact, error) {
	return s.listFn(ctx, userID, skip, limit)
}

func (s *stubContactService) GetByID(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	return s.getFn(ctx, userID, contactID)
}

func (s *stubContactService) GetNotes(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	return s.getFn(ctx, userID, contactID)
}

func (s *stubContactService) BirthdayAhead(ctx context.Context, userID int64, horizonDays int) ([]*domain.Contact, error) {
	return s.birthdayFn(ctx, userID, horizonDays)
}

func (s *stubContactService) ByEmail(ctx context.Context, userID int64, email string) ([]*domain.Contact, error) {
	return s.byEmailFn(ctx, userID, email)
}

func (s *stubContactService) ByFirstname(ctx context.Context, userID int64, firstname string) ([]*domain.Contact, error) {
	return s.byFirstnameFn(ctx, userID, firstname)
}

func (s *stubContactService) BySecondname(ctx context.Context, userID int64, secondname string) ([]*domain.Contact, error) {
	return s.byFirstnameFn(ctx, userID, secondname)
}

func (s *stubContactService) ByFirstAndSecondname(ctx context.Context, userID int64, firstname, secondname string) ([]*domain.Contact, error) {
	s.bothNamesCalled = true
	return s.byFirstnameFn(ctx, userID, firstname+"/"+secondname)
}

func (s *stubContactService) Create(ctx context.Context, userID int64, fields ports.ContactFields) (*domain.Contact, error) {
	return s.createFn(ctx, userID, fields)
}

func (s *stubContactService) Update(ctx context.Context, userID, contactID int64, fields ports.ContactFields) (*domain.Contact, error) {
	return s.updateFn(ctx, userID, contactID, fields)
}

func (s *stubContactService) UpdateNotes(ctx context.Context, userID, contactID int64, notes string) (*domain.Contact, error) {
	return s.updateNotesFn(ctx, userID, contactID, notes)
}

func (s *stubContactService) Remove(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	return s.removeFn(ctx, userID, contactID)
}

func authedContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CurrentUserKey, &domain.User{ID: 42, Email: "owner@example.com"})
	return c, rec
}

func TestContactHandler_List_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		listFn: func(ctx context.Context, userID int64, skip, limit int) ([]*domain.Contact, error) {
			if userID != 42 {
				t.Fatalf("wrong user id: %d", userID)
			}
			if skip != 5 || limit != 10 {
				t.Fatalf("pagination not forwarded: skip=%d limit=%d", skip, limit)
			}
			return []*domain.Contact{{ID: 1, Firstname: "Ann"}}, nil
		},
	}
	h := NewContactHandler(stub)

	c, rec := authedContext(e, http.MethodGet, "/api/contacts?skip=5&limit=10", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["firstname"] != "Ann" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestContactHandler_List_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	h := NewContactHandler(&stubContactService{})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestContactHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		getFn: func(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
			return nil, domain.ErrContactNotFound
		},
	}
	h := NewContactHandler(stub)

	c, _ := authedContext(e, http.MethodGet, "/api/contacts/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Get(c); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactHandler_Get_BadID(t *testing.T) {
	e := newTestEcho()
	h := NewContactHandler(&stubContactService{})

	c, _ := authedContext(e, http.MethodGet, "/api/contacts/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestContactHandler_BirthdayAhead_ForwardsHorizon(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		birthdayFn: func(ctx context.Context, userID int64, horizonDays int) ([]*domain.Contact, error) {
			if horizonDays != 7 {
				t.Fatalf("wrong horizon: %d", horizonDays)
			}
			return []*domain.Contact{}, nil
		},
	}
	h := NewContactHandler(stub)

	c, rec := authedContext(e, http.MethodGet, "/api/contacts/birthday_ahead/7", "")
	c.SetParamNames("days")
	c.SetParamValues("7")

	if err := h.BirthdayAhead(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	// An empty birthday window is a normal result, not a 404.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestContactHandler_BirthdayAhead_NegativeDays(t *testing.T) {
	e := newTestEcho()
	h := NewContactHandler(&stubContactService{})

	c, _ := authedContext(e, http.MethodGet, "/api/contacts/birthday_ahead/-1", "")
	c.SetParamNames("days")
	c.SetParamValues("-1")

	err := h.BirthdayAhead(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestContactHandler_ByEmail_EmptyResultIs404(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		byEmailFn: func(ctx context.Context, userID int64, email string) ([]*domain.Contact, error) {
			return []*domain.Contact{}, nil
		},
	}
	h := NewContactHandler(stub)

	c, _ := authedContext(e, http.MethodGet, "/api/contacts/email/ghost@example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("ghost@example.com")

	err := h.ByEmail(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestContactHandler_ByFirstname_Match(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		byFirstnameFn: func(ctx context.Context, userID int64, fragment string) ([]*domain.Contact, error) {
			if fragment != "ann" {
				t.Fatalf("fragment not forwarded: %q", fragment)
			}
			return []*domain.Contact{{ID: 2, Firstname: "Ann"}}, nil
		},
	}
	h := NewContactHandler(stub)

	c, rec := authedContext(e, http.MethodGet, "/api/contacts/firstname/ann", "")
	c.SetParamNames("name")
	c.SetParamValues("ann")

	if err := h.ByFirstname(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestContactHandler_ByFirstAndSecondname_ForwardsBoth(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		byFirstnameFn: func(ctx context.Context, userID int64, joined string) ([]*domain.Contact, error) {
			if joined != "ann/marie" {
				t.Fatalf("fragments not forwarded: %q", joined)
			}
			return []*domain.Contact{{ID: 3}}, nil
		},
	}
	h := NewContactHandler(stub)

	c, rec := authedContext(e, http.MethodGet, "/api/contacts/firstandsecondname/ann/marie", "")
	c.SetParamNames("first", "second")
	c.SetParamValues("ann", "marie")

	if err := h.ByFirstAndSecondname(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !stub.bothNamesCalled {
		t.Fatalf("conjunctive filter not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestContactHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		createFn: func(ctx context.Context, userID int64, fields ports.ContactFields) (*domain.Contact, error) {
			if fields.Firstname != "Ann" || fields.Email != "ann@example.com" {
				t.Fatalf("fields not bound: %+v", fields)
			}
			if fields.Birthday == nil || !fields.Birthday.Equal(time.Date(1990, 3, 5, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("birthday not parsed: %v", fields.Birthday)
			}
			return &domain.Contact{ID: 1, UserID: userID, Firstname: fields.Firstname}, nil
		},
	}
	h := NewContactHandler(stub)

	c, rec := authedContext(e, http.MethodPost, "/api/contacts",
		`{"firstname":"Ann","secondname":"Smith","email":"ann@example.com","telephone":123456,"birthday":"1990-03-05"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestContactHandler_Create_BadBirthdayFormat(t *testing.T) {
	e := newTestEcho()
	h := NewContactHandler(&stubContactService{})

	c, _ := authedContext(e, http.MethodPost, "/api/contacts",
		`{"firstname":"Ann","secondname":"Smith","email":"ann@example.com","telephone":123456,"birthday":"05.03.1990"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestContactHandler_UpdateNotes_Success(t *testing.T) {
	e := newTestEcho()
	notes := "call back on Friday"
	stub := &stubContactService{
		updateNotesFn: func(ctx context.Context, userID, contactID int64, got string) (*domain.Contact, error) {
			if got != notes {
				t.Fatalf("notes not forwarded: %q", got)
			}
			return &domain.Contact{ID: contactID, UserID: userID, Notes: &got}, nil
		},
	}
	h := NewContactHandler(stub)

	c, rec := authedContext(e, http.MethodPut, "/api/contacts/note/4",
		`{"notes":"`+notes+`"}`)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := h.UpdateNotes(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["notes"] != notes {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestContactHandler_Remove_ReturnsSnapshot(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		removeFn: func(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
			return &domain.Contact{ID: contactID, UserID: userID, Firstname: "Gone"}, nil
		},
	}
	h := NewContactHandler(stub)

	c, rec := authedContext(e, http.MethodDelete, "/api/contacts/6", "")
	c.SetParamNames("id")
	c.SetParamValues("6")

	if err := h.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["firstname"] != "Gone" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
