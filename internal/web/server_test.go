package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/model"
	"minibook-cli/internal/progress"
	"minibook-cli/internal/templates"
)

func writeSample(t *testing.T) string {
	t.Helper()
	doc := model.NewDocument()
	doc.Title = "Preview Book"
	doc = templates.Instantiate(doc, model.StructureWs)
	doc.Chapters[0].Content = "some words here"
	path := filepath.Join(t.TempDir(), "book.md")
	if err := os.WriteFile(path, []byte(codec.Serialize(doc)), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func newTestServer(t *testing.T, file string) (*Server, *httptest.Server) {
	t.Helper()
	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", File: file})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestNewServer_Validates(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(ServerConfig{File: "x.md"}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
	if _, err := NewServer(ServerConfig{Addr: "127.0.0.1:0"}); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, writeSample(t))

	if code, body := get(t, ts.URL+"/health"); code != http.StatusOK || body != "ok\n" {
		t.Fatalf("health: %d %q", code, body)
	}

	code, body := get(t, ts.URL+"/")
	if code != http.StatusOK {
		t.Fatalf("home: %d", code)
	}
	for _, want := range []string{"Preview Book", "1.1 Who</h2>", "Total words: 3 / Goal: 2250", "W&#39;s Outline Model"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in home page:\n%s", want, body)
		}
	}

	code, body = get(t, ts.URL+"/markdown")
	if code != http.StatusOK || !strings.HasPrefix(body, "# Preview Book\n\n") {
		t.Fatalf("markdown: %d %q", code, body)
	}

	code, body = get(t, ts.URL+"/api/document")
	if code != http.StatusOK {
		t.Fatalf("api/document: %d", code)
	}
	var resp documentResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Summary.Words != 3 || resp.Summary.Status != progress.Red || len(resp.Document.Chapters) != 6 {
		t.Fatalf("unexpected response: %+v", resp.Summary)
	}
}

func TestServer_MissingFile(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, filepath.Join(t.TempDir(), "nope.md"))

	code, body := get(t, ts.URL+"/")
	if code != http.StatusOK || !strings.Contains(body, "does not exist yet") {
		t.Fatalf("home for missing file: %d\n%s", code, body)
	}
	if code, _ := get(t, ts.URL+"/markdown"); code != http.StatusNotFound {
		t.Fatalf("markdown for missing file: %d", code)
	}
}

func TestServer_WebSocketReload(t *testing.T) {
	t.Parallel()

	s, ts := newTestServer(t, writeSample(t))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(3 * time.Second)
	for s.hub.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	s.Notify()

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != reloadMessage {
		t.Fatalf("expected reload message, got %q", msg)
	}
}
