package handlers_test

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptrace"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcstore/internal/middleware"
)

// liveServer serves the app on a loopback listener so requests travel over
// real keep-alive connections instead of app.Test's one-shot pipe.
func liveServer(t *testing.T, env *testEnv) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.Shutdown() })
	return "http://" + ln.Addr().String()
}

// connClient returns a client that sends all its requests over one connection.
func connClient() *http.Client {
	return &http.Client{Transport: &http.Transport{MaxConnsPerHost: 1, MaxIdleConnsPerHost: 1}}
}

func send(t *testing.T, client *http.Client, method, url, session string, body interface{}) (reused bool, decoded map[string]interface{}) {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, session)
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) { reused = info.Reused },
	}))

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return reused, decoded
}

func cartItemIDs(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	items, ok := body["items"].([]interface{})
	require.True(t, ok, "items missing in %v", body)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.(map[string]interface{})["id"].(string))
	}
	return ids
}

func TestCartSessionsSurviveConnectionReuse(t *testing.T) {
	env := setupApp(t)
	base := liveServer(t, env)
	shopperA, shopperC := uuid.New().String(), uuid.New().String()

	conn1 := connClient()
	send(t, conn1, http.MethodPost, base+"/api/cart", shopperA, cartItem("cpu-a", 1))
	reused, _ := send(t, conn1, http.MethodPost, base+"/api/cart", shopperC, cartItem("ram-a", 2))
	require.True(t, reused, "second request must share the first connection")

	conn2 := connClient()
	_, cartA := send(t, conn2, http.MethodGet, base+"/api/cart", shopperA, nil)
	assert.Equal(t, []string{"cpu-a"}, cartItemIDs(t, cartA))

	reused, cartC := send(t, conn2, http.MethodGet, base+"/api/cart", shopperC, nil)
	require.True(t, reused)
	assert.Equal(t, []string{"ram-a"}, cartItemIDs(t, cartC))
}

func cartItem(id string, quantity int) map[string]interface{} {
	return map[string]interface{}{"id": id, "quantity": quantity}
}
