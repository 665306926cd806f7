package api

import (
	fsrepo "EvidenceKeeper/internal/cli/repo/fs"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func TestPostJSON_SendsToken_And_ParsesBody(t *testing.T) {
	// test server проверяет cookie и JSON
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := r.Header.Get("Cookie"); !strings.Contains(c, "auth_token=tok123") {
			t.Errorf("Cookie header missing token, got: %q", c)
		}
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			t.Errorf("bad json: %v", err)
		}
		if m["x"] != float64(1) { // JSON number → float64
			t.Errorf("unexpected payload: %#v", m)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	resp, body, err := PostJSON(ts.URL+"/api", map[string]any{"x": 1}, "tok123")
	if err != nil {
		t.Fatalf("PostJSON err: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != `{"ok":true}` {
		t.Fatalf("body: %s", string(body))
	}
}

func TestGetJSON_NoBodyNoContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "" {
			t.Errorf("unexpected content type %q", ct)
		}
		_, _ = w.Write([]byte(`{"case":{}}`))
	}))
	defer ts.Close()

	resp, body, err := GetJSON(context.Background(), ts.URL, "tok")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get: %v", err)
	}
	if string(body) != `{"case":{}}` {
		t.Fatalf("body: %s", body)
	}
}

func TestDo_CanceledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Do(ctx, http.MethodGet, ts.URL, nil, ""); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestPostJSON_JSONMarshalError(t *testing.T) {
	// chan в payload вызовет ошибку json.Marshal
	_, _, err := PostJSON("http://example.invalid", map[string]any{"c": make(chan int)}, "")
	if err == nil {
		t.Fatalf("expected marshal error")
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage([]byte(`{"error":"access denied","possessor":"HC Singh"}`)); got != "access denied" {
		t.Fatalf("got %q", got)
	}
	if got := ErrorMessage([]byte("  plain text\n")); got != "plain text" {
		t.Fatalf("got %q", got)
	}
}

func TestPersistAuthFromResponse_SaveAndNoCookie(t *testing.T) {
	store := fsrepo.AuthFSStore{Path: filepath.Join(t.TempDir(), "token")}
	// success: есть Set-Cookie с auth_token
	{
		resp := &http.Response{Header: http.Header{}}
		// Добавим Set-Cookie вручную (http.SetCookie ожидает ResponseWriter)
		resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "auth_token", Value: "tok-abc"}).String())
		if err := PersistAuthFromResponse(resp, store); err != nil {
			t.Fatalf("persist: %v", err)
		}
		// проверим, что токен читается из FS
		tok, err := store.Load()
		if err != nil || tok != "tok-abc" {
			t.Fatalf("token not saved, got %q err=%v", tok, err)
		}
	}
	// error: нет cookie
	{
		resp := &http.Response{Header: http.Header{}}
		if err := PersistAuthFromResponse(resp, store); err == nil {
			t.Fatalf("expected error when no auth cookie")
		}
	}
}
