package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/crema-dev/crema/internal/model"
)

func modelShot() model.Shot {
	return model.Shot{
		CalibrationSessionID: 4,
		ShotNumber:           2,
		GrindSetting:         "3",
		Dose:                 18,
		Yield:                36,
		TimeSeconds:          27,
	}
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestBearerHeaderAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok-123"))
	if _, err := c.ListBeans(context.Background()); err != nil {
		t.Fatalf("ListBeans failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization header: got %q", gotAuth)
	}
}

func TestNoBearerHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""))
	if _, err := c.ListGrinders(context.Background()); err != nil {
		t.Fatalf("ListGrinders failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("unexpected Authorization header %q", gotAuth)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if _, err := c.ListBeans(context.Background()); err != nil {
		t.Fatalf("ListBeans failed: %v", err)
	}
	if gotID == "" {
		t.Error("X-Request-Id header missing")
	}
}

func TestEnvelopeUnwrapBothShapes(t *testing.T) {
	bare := `[{"id":1,"name":"Yirgacheffe"}]`
	wrapped := `{"data":[{"id":1,"name":"Yirgacheffe"}]}`

	for name, body := range map[string]string{"bare": bare, "wrapped": wrapped} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, nil)
			beans, err := c.ListBeans(context.Background())
			if err != nil {
				t.Fatalf("ListBeans failed: %v", err)
			}
			if len(beans) != 1 || beans[0].Name != "Yirgacheffe" {
				t.Errorf("decoded beans: got %+v", beans)
			}
		})
	}
}

func TestUnauthorizedHookFiresForAnyEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthenticated."}`))
	}))
	defer srv.Close()

	var fired atomic.Int32
	c := NewClient(srv.URL, staticToken("stale"))
	c.SetUnauthorizedHook(func() { fired.Add(1) })

	_, err := c.ListSessions(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401 error, got %v", err)
	}
	if err := c.DeleteBean(context.Background(), 1); !IsUnauthorized(err) {
		t.Fatalf("expected 401 error, got %v", err)
	}
	if fired.Load() != 2 {
		t.Errorf("hook fired %d times, want 2 (once per 401 response)", fired.Load())
	}
}

func TestAPIErrorCarriesServerMessageAndFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"The given data was invalid.","errors":{"email":["The email has already been taken."]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Register(context.Background(), RegisterRequest{Email: "dup@example.com"})
	if err == nil {
		t.Fatal("expected error")
	}

	if got := ErrorMessage(err, "Registration failed"); got != "The given data was invalid." {
		t.Errorf("ErrorMessage: got %q", got)
	}
	fields := FieldErrors(err)
	if len(fields["email"]) != 1 {
		t.Errorf("field errors: got %v", fields)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.ListBeans(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ErrorMessage(err, "Failed to load beans"); got != "Failed to load beans" {
		t.Errorf("fallback message: got %q", got)
	}
}

func TestNestedShotRoutes(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"id":9,"calibration_session_id":4,"shot_number":2}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	shot, err := c.UpdateShot(context.Background(), 4, 9, modelShot())
	if err != nil {
		t.Fatalf("UpdateShot failed: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/calibration-sessions/4/shots/9" {
		t.Errorf("request: got %s %s", gotMethod, gotPath)
	}
	if shot.ID != 9 || shot.CalibrationSessionID != 4 {
		t.Errorf("decoded shot: got %+v", shot)
	}
}

func TestCrossSessionRoutes(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if _, err := c.SessionsForBean(context.Background(), 7); err != nil {
		t.Fatalf("SessionsForBean failed: %v", err)
	}
	if _, err := c.AllShots(context.Background()); err != nil {
		t.Fatalf("AllShots failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/beans/7/sessions" || paths[1] != "/shots" {
		t.Errorf("paths: got %v", paths)
	}
}

func TestContextCancellationAborts(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, nil)
	if _, err := c.ListBeans(ctx); err == nil {
		t.Error("expected cancellation error")
	}
}
