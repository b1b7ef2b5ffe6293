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

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/session"
)

type stubAuthService struct {
	registerStudentFn func(ctx context.Context, input ports.RegisterStudentInput) (*ports.RegistrationResult, error)
	registerFacultyFn func(ctx context.Context, input ports.RegisterFacultyInput) (*ports.RegistrationResult, error)
	loginFn           func(ctx context.Context, loginID, password string) (*ports.LoginResult, error)
	logoutFn          func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (s *stubAuthService) RegisterStudent(ctx context.Context, input ports.RegisterStudentInput) (*ports.RegistrationResult, error) {
	return s.registerStudentFn(ctx, input)
}

func (s *stubAuthService) RegisterFaculty(ctx context.Context, input ports.RegisterFacultyInput) (*ports.RegistrationResult, error) {
	return s.registerFacultyFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, loginID, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, loginID, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

type stubIdentityRepo struct {
	identities map[string]*domain.Identity
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	r.identities[identity.ID] = identity
	return identity, nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	identity, ok := r.identities[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return identity, nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, _ string) (*domain.Identity, error) {
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) Delete(_ context.Context, id string) error {
	delete(r.identities, id)
	return nil
}

type stubProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (r *stubProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *stubProfileRepo) FindByLoginID(_ context.Context, _ string) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func emptySessions() *session.Manager {
	return session.NewManager(
		&stubIdentityRepo{identities: map[string]*domain.Identity{}},
		&stubProfileRepo{profiles: map[string]*domain.Profile{}},
	)
}

func TestAuthHandler_RegisterFaculty_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFacultyFn: func(_ context.Context, input ports.RegisterFacultyInput) (*ports.RegistrationResult, error) {
			if input.PhoneNumber != "9876543210" || input.Department != "CSE" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.RegistrationResult{
				LoginID: "F3210",
				Profile: &domain.Profile{LoginID: "F3210", Role: domain.RoleFaculty, Name: input.Name},
			}, nil
		},
	}
	h := NewAuthHandler(stub, emptySessions())

	body := `{"name":"Dr. Rao","department":"CSE","designation":"Professor","phone_number":"9876543210","email":"rao@example.edu","password":"secret123"}`
	c, rec := newTestContext(t, http.MethodPost, "/auth/register/faculty", body)

	if err := h.RegisterFaculty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["login_id"] != "F3210" {
		t.Fatalf("expected login_id F3210, got %v", resp["login_id"])
	}
}

func TestAuthHandler_RegisterStudent_BadPhoneRejectedBySchema(t *testing.T) {
	stub := &stubAuthService{
		registerStudentFn: func(_ context.Context, _ ports.RegisterStudentInput) (*ports.RegistrationResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, emptySessions())

	body := `{"name":"Anil","register_number":"RA221","year":2,"branch":"CSE","phone_number":"98765","email":"anil@example.edu","password":"secret123"}`
	c, _ := newTestContext(t, http.MethodPost, "/auth/register/student", body)

	err := h.RegisterStudent(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_RegisterStudent_LoginIDTaken(t *testing.T) {
	stub := &stubAuthService{
		registerStudentFn: func(_ context.Context, _ ports.RegisterStudentInput) (*ports.RegistrationResult, error) {
			return nil, domain.ErrLoginIDTaken
		},
	}
	h := NewAuthHandler(stub, emptySessions())

	body := `{"name":"Anil","register_number":"RA221","year":2,"branch":"CSE","phone_number":"9876543210","email":"anil@example.edu","password":"secret123"}`
	c, _ := newTestContext(t, http.MethodPost, "/auth/register/student", body)

	if err := h.RegisterStudent(c); !errors.Is(err, domain.ErrLoginIDTaken) {
		t.Fatalf("expected ErrLoginIDTaken, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	expires := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, loginID, password string) (*ports.LoginResult, error) {
			if loginID != "F3210" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s", loginID, password)
			}
			return &ports.LoginResult{
				Token:     "token123",
				ExpiresAt: expires,
				Profile:   &domain.Profile{LoginID: "F3210", Role: domain.RoleFaculty},
			}, nil
		},
	}
	h := NewAuthHandler(stub, emptySessions())

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"login_id":"F3210","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, emptySessions())

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"login_id":"F9999","password":"wrong-pass"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	var revokedID string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, tokenID string, _ time.Time) error {
			revokedID = tokenID
			return nil
		},
	}
	h := NewAuthHandler(stub, emptySessions())

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set("token_id", "tok-1")
	c.Set("token_expires_at", time.Now().Add(time.Hour))

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revokedID != "tok-1" {
		t.Fatalf("expected tok-1 revoked, got %q", revokedID)
	}
}

func TestAuthHandler_Logout_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, emptySessions())

	c, _ := newTestContext(t, http.MethodPost, "/auth/logout", "")
	err := h.Logout(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Session_WithProfile(t *testing.T) {
	sessions := session.NewManager(
		&stubIdentityRepo{identities: map[string]*domain.Identity{
			"u1": {ID: "u1", Email: "rao@example.edu"},
		}},
		&stubProfileRepo{profiles: map[string]*domain.Profile{
			"u1": {ID: "p1", UserID: "u1", Role: domain.RoleFaculty, LoginID: "F3210"},
		}},
	)
	h := NewAuthHandler(&stubAuthService{}, sessions)

	c, rec := newTestContext(t, http.MethodGet, "/auth/session", "")
	c.Set("user_id", "u1")

	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "faculty" {
		t.Fatalf("expected faculty role, got %v", resp["role"])
	}
}

func TestAuthHandler_Session_WithoutProfile(t *testing.T) {
	sessions := session.NewManager(
		&stubIdentityRepo{identities: map[string]*domain.Identity{
			"u1": {ID: "u1", Email: "bare@example.edu"},
		}},
		&stubProfileRepo{profiles: map[string]*domain.Profile{}},
	)
	h := NewAuthHandler(&stubAuthService{}, sessions)

	c, rec := newTestContext(t, http.MethodGet, "/auth/session", "")
	c.Set("user_id", "u1")

	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["profile"]; ok {
		t.Fatalf("expected no profile in response, got %+v", resp)
	}
	if resp["identity"] == nil {
		t.Fatalf("expected identity in response")
	}
}
