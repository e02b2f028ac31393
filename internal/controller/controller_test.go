package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestActorAuth(t *testing.T) {
	router := gin.New()
	router.GET("/whoami", ActorAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", actorID(c))
	})

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"non-numeric header", "abc", http.StatusUnauthorized, ""},
		{"zero id", "0", http.StatusUnauthorized, ""},
		{"negative id", "-5", http.StatusUnauthorized, ""},
		{"valid id", "42", http.StatusOK, "42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("X-User-ID", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantBody != "" && rec.Body.String() != tc.wantBody {
				t.Fatalf("expected body %q, got %q", tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{model.ErrInvalidDateRange, http.StatusBadRequest},
		{model.ErrStartDateInPast, http.StatusBadRequest},
		{model.ErrBookingNotFound, http.StatusNotFound},
		{model.ErrPropertyNotFound, http.StatusNotFound},
		{model.ErrDatesUnavailable, http.StatusConflict},
		{model.ErrBookingNotPending, http.StatusConflict},
		{model.ErrNotHost, http.StatusForbidden},
		{model.ErrNotParticipant, http.StatusForbidden},
		{errors.New("pg connection refused"), http.StatusInternalServerError},
		{fmt.Errorf("get booking: %w", model.ErrBookingNotFound), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("respondError(%v): expected status %d, got %d", tc.err, tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestRespondErrorHidesStorageDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondError(c, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"internal error"}` {
		t.Fatalf("storage details leaked: %s", body)
	}
}

func TestParseID(t *testing.T) {
	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, "%d", id)
	})

	cases := []struct {
		param      string
		wantStatus int
	}{
		{"7", http.StatusOK},
		{"0", http.StatusBadRequest},
		{"-1", http.StatusBadRequest},
		{"abc", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.param, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items/"+tc.param, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}
