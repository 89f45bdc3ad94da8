package lcu

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventServer upgrades one connection, writes the given frames and closes.
func eventServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
	}))
}

func dialTestSocket(t *testing.T, srv *httptest.Server) *Socket {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return &Socket{conn: conn, handlers: make(map[string]EventHandler)}
}

func TestListenDispatchesSubscribedEvents(t *testing.T) {
	srv := eventServer(t, []string{
		"",          // subscription ack
		"not json",  // garbage
		`[8]`,       // too short
		`[5, "OnJsonApiEvent_lol-champ-select_v1_session", {}]`,                                       // wrong opcode
		`[8, "SomeOtherTopic", {"data": {}, "eventType": "Update", "uri": "/other"}]`,                 // not subscribed
		`[8, "OnJsonApiEvent_lol-champ-select_v1_session", {"data": {"timer": {"phase": "PLANNING"}}, "eventType": "Update", "uri": "/lol-champ-select/v1/session"}]`,
	})
	defer srv.Close()

	sock := dialTestSocket(t, srv)
	defer sock.Close()

	var got []Event
	sock.handlers[TopicChampSelectSession] = func(ev Event) {
		got = append(got, ev)
	}

	err := sock.Listen()
	assert.Error(t, err, "the loop ends with the server's close")

	require.Len(t, got, 1, "only well-formed frames on subscribed topics dispatch")
	assert.Equal(t, "Update", got[0].EventType)
	assert.Equal(t, "/lol-champ-select/v1/session", got[0].URI)
	assert.JSONEq(t, `{"timer": {"phase": "PLANNING"}}`, string(got[0].Data))
}

func TestListenSurvivesHandlerPanic(t *testing.T) {
	srv := eventServer(t, []string{
		`[8, "OnJsonApiEvent_lol-champ-select_v1_session", {"data": {}, "eventType": "Update", "uri": "/a"}]`,
		`[8, "OnJsonApiEvent_lol-champ-select_v1_session", {"data": {}, "eventType": "Update", "uri": "/b"}]`,
	})
	defer srv.Close()

	sock := dialTestSocket(t, srv)
	defer sock.Close()

	var seen []string
	sock.handlers[TopicChampSelectSession] = func(ev Event) {
		seen = append(seen, ev.URI)
		if ev.URI == "/a" {
			panic("boom")
		}
	}

	done := make(chan struct{})
	go func() {
		sock.Listen()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("listen did not end")
	}

	assert.Equal(t, []string{"/a", "/b"}, seen, "a panicking handler must not kill the loop")
}
