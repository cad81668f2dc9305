package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstreamCall struct {
	Method string
	Path   string
	Query  string
	Sharer string
	Body   []byte
}

// newUpstream fakes the main service: it records every call and answers
// with a fixed status and body.
func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *upstreamCall) {
	t.Helper()
	last := &upstreamCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.Method = r.Method
		last.Path = r.URL.Path
		last.Query = r.URL.RawQuery
		last.Sharer = r.Header.Get("X-Sharer-User-Id")
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		last.Body = buf.Bytes()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, last
}

func newGatewayRouter(upstreamURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewClient(upstreamURL)).RegisterRoutes(&router.RouterGroup)
	return router
}

func send(router *gin.Engine, method, target, userID string, body any) *httptest.ResponseRecorder {
	var payload *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, payload)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Sharer-User-Id", userID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGateway_ForwardsBookingList(t *testing.T) {
	upstream, last := newUpstream(t, http.StatusOK, `[]`)
	router := newGatewayRouter(upstream.URL)

	w := send(router, http.MethodGet, "/bookings?state=waiting&from=0&size=10", "20", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "/bookings", last.Path)
	assert.Equal(t, "20", last.Sharer)
	assert.Contains(t, last.Query, "state=waiting")
	assert.Contains(t, last.Query, "from=0")
	assert.Contains(t, last.Query, "size=10")
}

func TestGateway_RejectsUnknownState(t *testing.T) {
	upstream, last := newUpstream(t, http.StatusOK, `[]`)
	router := newGatewayRouter(upstream.URL)

	w := send(router, http.MethodGet, "/bookings?state=DELIVERED", "20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Unknown state: DELIVERED"}`, w.Body.String())
	assert.Empty(t, last.Path, "invalid request must never reach upstream")
}

func TestGateway_RejectsBadPaging(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusOK, `[]`)
	router := newGatewayRouter(upstream.URL)

	w := send(router, http.MethodGet, "/bookings?from=-1&size=10", "20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Parameters should be natural!"}`, w.Body.String())

	w = send(router, http.MethodGet, "/items?from=0&size=0", "20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGateway_RejectsMissingHeader(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusOK, `[]`)
	router := newGatewayRouter(upstream.URL)

	w := send(router, http.MethodGet, "/bookings", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "No header with user id!"}`, w.Body.String())
}

func TestGateway_RejectsBadBookingDates(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusOK, `{}`)
	router := newGatewayRouter(upstream.URL)
	now := time.Now()

	w := send(router, http.MethodPost, "/bookings", "20", gin.H{
		"itemId": 1,
		"start":  now.Add(-time.Hour).Format(time.RFC3339),
		"end":    now.Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Wrong date!"}`, w.Body.String())

	// Both dates in the future, but the window is inverted.
	w = send(router, http.MethodPost, "/bookings", "20", gin.H{
		"itemId": 1,
		"start":  now.Add(2 * time.Hour).Format(time.RFC3339),
		"end":    now.Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Wrong date!"}`, w.Body.String())

	w = send(router, http.MethodPost, "/bookings", "20", gin.H{"itemId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGateway_RejectsBadItem(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusOK, `{}`)
	router := newGatewayRouter(upstream.URL)

	w := send(router, http.MethodPost, "/items", "20", gin.H{"description": "d", "available": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(router, http.MethodPost, "/items", "20", gin.H{"name": "drill", "description": "d"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "No available field!"}`, w.Body.String())
}

func TestGateway_RejectsBadEmail(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusOK, `{}`)
	router := newGatewayRouter(upstream.URL)

	w := send(router, http.MethodPost, "/users", "", gin.H{"name": "alice", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Wrong email!"}`, w.Body.String())

	w = send(router, http.MethodPatch, "/users/1", "", gin.H{"email": "still-nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGateway_RelaysUpstreamErrors(t *testing.T) {
	upstream, _ := newUpstream(t, http.StatusNotFound, `{"error": "Booking with id=42 not found!"}`)
	router := newGatewayRouter(upstream.URL)

	w := send(router, http.MethodGet, "/bookings/42", "20", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Booking with id=42 not found!"}`, w.Body.String())
}

func TestGateway_ForwardsCreateUser(t *testing.T) {
	upstream, last := newUpstream(t, http.StatusOK, `{"id": 1}`)
	router := newGatewayRouter(upstream.URL)

	w := send(router, http.MethodPost, "/users", "", gin.H{"name": "alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/users", last.Path)
	assert.Empty(t, last.Sharer, "user routes carry no sharer header")
	assert.Contains(t, string(last.Body), "alice@example.com")
}

func TestGateway_UpstreamDown(t *testing.T) {
	router := newGatewayRouter("http://127.0.0.1:1")

	w := send(router, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
