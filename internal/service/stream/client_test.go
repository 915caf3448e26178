package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"SwingScope/pkg/logger"

	"github.com/gorilla/websocket"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return lgr
}

// tradeServer upgrades, emits one trade frame, and hangs up.
func tradeServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		frame := `{"type":"trade","data":[{"s":"NTPC.NS","p":361.5,"v":100,"t":1717315200000}]}`
		_ = conn.WriteMessage(websocket.TextMessage, []byte(frame))
		_ = conn.Close()
	}))
}

func TestReadDeliversTrades(t *testing.T) {
	srv := tradeServer(t)
	defer srv.Close()

	c := New(testLogger(t), "key", "ws"+strings.TrimPrefix(srv.URL, "http"), time.Millisecond, 50*time.Millisecond)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	quotes, errs := c.Read(context.Background())

	var got []string
	for q := range quotes {
		got = append(got, q.Symbol)
		if q.Price != 361.5 || q.Volume != 100 {
			t.Fatalf("quote = %+v", q)
		}
	}
	for range errs {
	}

	if len(got) != 1 || got[0] != "NTPC.NS" {
		t.Fatalf("expected one NTPC.NS trade, got %v", got)
	}
}

func TestReadStopsPingLoopWhenSessionEnds(t *testing.T) {
	srv := tradeServer(t)
	defer srv.Close()

	c := New(testLogger(t), "key", "ws"+strings.TrimPrefix(srv.URL, "http"), time.Millisecond, 5*time.Millisecond)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	before := runtime.NumGoroutine()
	quotes, errs := c.Read(context.Background())
	for range quotes {
	}
	for range errs {
	}

	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := runtime.NumGoroutine(); got > before {
		t.Fatalf("session goroutines still running: %d > %d", got, before)
	}
}
