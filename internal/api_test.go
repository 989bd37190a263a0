package daycounter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycounter/internal/config"
	"daycounter/internal/store"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	server := New(newTestState(store.NewMemory(), opts...), nil)
	srv := httptest.NewServer(server.SetupRoutes())
	t.Cleanup(srv.Close)
	return server, srv
}

func postForm(t *testing.T, srv *httptest.Server, path string, form url.Values) (*http.Response, View) {
	t.Helper()
	resp, err := srv.Client().PostForm(srv.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()

	var view View
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	}
	return resp, view
}

func TestHealthHandler(t *testing.T) {
	_, srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Healthy", string(body))
}

func TestCounterEmpty(t *testing.T) {
	_, srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/counter")
	require.NoError(t, err)
	defer resp.Body.Close()

	var view View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, Title, view.Title)
	assert.Equal(t, DatePlaceholder, view.DateLabel)
	assert.Equal(t, 0, view.DaysCount)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSelectDateAndReset(t *testing.T) {
	_, srv := newTestServer(t)

	resp, view := postForm(t, srv, "/counter/date", url.Values{"date": {"2024-01-01"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, view.DaysCount)
	assert.Equal(t, "Mon Jan 01 2024", view.DateLabel)

	resp, view = postForm(t, srv, "/counter/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, view.DaysCount)
	assert.Equal(t, DatePlaceholder, view.DateLabel)
}

func TestSelectDateRejectsBadInput(t *testing.T) {
	_, srv := newTestServer(t)

	resp, _ := postForm(t, srv, "/counter/date", url.Values{"date": {"yesterday"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postForm(t, srv, "/counter/date", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	_, srv := newTestServer(t)
	for _, path := range []string{"/counter/date", "/counter/reset", "/picker/open", "/picker/change", "/picker/dismiss"} {
		resp, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, path)
	}

	resp, err := srv.Client().Post(srv.URL+"/counter", "text/plain", strings.NewReader(""))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestPickerFlow(t *testing.T) {
	_, srv := newTestServer(t, WithDismissPolicy(ManualDismiss))

	_, view := postForm(t, srv, "/picker/open", nil)
	assert.True(t, view.PickerVisible)

	_, view = postForm(t, srv, "/picker/change", url.Values{"date": {"2024-01-01T09:00:00Z"}})
	assert.True(t, view.PickerVisible)
	assert.Equal(t, 10, view.DaysCount)

	_, view = postForm(t, srv, "/picker/change", nil)
	assert.Equal(t, "2024-01-01", view.StartDate)

	resp, _ := postForm(t, srv, "/picker/change", url.Values{"date": {"soon"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, view = postForm(t, srv, "/picker/dismiss", nil)
	assert.False(t, view.PickerVisible)
}

func TestMetricsEndpoint(t *testing.T) {
	_, srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebsocketReceivesChanges(t *testing.T) {
	server, srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/connect"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return server.Clients.Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("get_counter")))
	msg := readCounterMessage(t, conn)
	assert.Equal(t, "counter", msg.Event)
	assert.Equal(t, 0, msg.DaysCount)

	server.State.SelectDate(context.Background(), date(2024, 1, 1))
	msg = readCounterMessage(t, conn)
	assert.Equal(t, 10, msg.DaysCount)
	assert.Equal(t, "Mon Jan 01 2024", msg.DateLabel)
}

func readCounterMessage(t *testing.T, conn *websocket.Conn) counterMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg counterMessage
	require.NoError(t, json.Unmarshal(p, &msg))
	return msg
}

func TestNewServerFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f, err := store.NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set(context.Background(), store.StartDateKey, FormatStartDate(time.Now().AddDate(0, 0, -3))))

	server, err := NewServer(context.Background(), config.Config{
		Backend:       "file",
		StorePath:     path,
		PickerDismiss: "ios",
	})
	require.NoError(t, err)
	defer server.Close()

	assert.Equal(t, 3, server.State.View().DaysCount)
	assert.Equal(t, ManualDismiss, server.State.Policy())

	_, err = NewServer(context.Background(), config.Config{Backend: "file", PickerDismiss: "sometimes"})
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestHealthRejectsOtherMethods(t *testing.T) {
	_, srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/health", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestGetCounterRepliesToRequesterOnly(t *testing.T) {
	server, srv := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/connect"

	asker, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer asker.Close()
	bystander, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer bystander.Close()

	require.Eventually(t, func() bool { return server.Clients.Len() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, asker.WriteMessage(websocket.TextMessage, []byte("get_counter")))
	msg := readCounterMessage(t, asker)
	assert.Equal(t, "counter", msg.Event)

	require.NoError(t, bystander.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = bystander.ReadMessage()
	assert.Error(t, err)
}
