package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"reservation-server/services"
)

func errorStatus(t *testing.T, err error) (int, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	var body APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return recorder.Code, body
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", services.NotFoundError("Property not found"), http.StatusNotFound},
		{"conflict", services.ConflictError("An account with this email already exists"), http.StatusBadRequest},
		{"bad request", services.BadRequestError("Invalid year or month"), http.StatusBadRequest},
		{"unauthorized", services.UnauthorizedError("Refresh token not found"), http.StatusUnauthorized},
		{"forbidden", services.ForbiddenError("Admin privileges required"), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorStatus(t, tc.err)
			if status != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, status)
			}
			if body.Success {
				t.Fatal("expected success=false")
			}
			if body.Message != tc.err.Error() {
				t.Fatalf("expected message %q, got %q", tc.err.Error(), body.Message)
			}
		})
	}
}

func TestErrorHidesUnclassifiedFailures(t *testing.T) {
	status, body := errorStatus(t, errors.New("pq: connection reset"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}
