package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func TestErrorStatusMatchesEnvelope(t *testing.T) {
	for _, code := range []int{CodeBadRequest, CodeUnauthorized, CodeForbidden, CodeNotFound, CodeTooManyRequests, CodeInternal} {
		c, w := newTestContext()
		Error(c, code, "failed")
		if w.Code != code {
			t.Fatalf("http status want %d got %d", code, w.Code)
		}
		if resp := decode(t, w); resp.StatusCode != code || resp.Msg != "failed" {
			t.Fatalf("unexpected envelope: %+v", resp)
		}
	}
}

func TestErrorOutOfRangeCodeFallsBackTo500(t *testing.T) {
	c, w := newTestContext()
	Error(c, 42, "odd")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("http status want 500 got %d", w.Code)
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-9")
	ErrorWithData(c, CodeBadRequest, "bad", gin.H{"errors": []string{"name"}})
	data := decode(t, w).Data.(map[string]interface{})
	if data["request_id"] != "req-9" || data["errors"] == nil {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestCreatedAndNoContent(t *testing.T) {
	c, w := newTestContext()
	Created(c, gin.H{"id": 1})
	if w.Code != http.StatusCreated || decode(t, w).StatusCode != CodeCreated {
		t.Fatalf("created mismatch: %d %s", w.Code, w.Body.String())
	}

	c, w = newTestContext()
	NoContent(c)
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("no content mismatch: %d %q", w.Code, w.Body.String())
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 20, 41)
	if p.TotalPage != 3 || p.Page != 2 || p.Total != 41 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if BuildPagination(1, 0, 10).TotalPage != 0 {
		t.Fatalf("zero page size should yield zero pages")
	}
}

func TestAsAppError(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("save: %w", WrapError(CodeInternal, "save failed", cause))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != CodeInternal || !appErr.IsServerError() {
		t.Fatalf("expected server app error, got %+v", appErr)
	}
	if !errors.Is(wrapped, cause) {
		t.Fatalf("cause should be reachable through unwrap")
	}
	if _, ok := AsAppError(cause); ok {
		t.Fatalf("plain error should not match")
	}
	if WrapError(CodeNotFound, "missing", nil).IsServerError() {
		t.Fatalf("404 is not a server error")
	}
}
