package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fablesmith/mythosforge/internal/session"
	"github.com/fablesmith/mythosforge/pkg/models"
)

func testServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := session.NewStoreWithPath(filepath.Join(t.TempDir(), "test.db"), log)
	if err != nil {
		t.Fatalf("NewStoreWithPath() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mgr := session.NewManager(store, session.Config{Logger: log})
	return New(mgr, log), mgr
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSessions_SaveListLoadDelete(t *testing.T) {
	srv, mgr := testServer(t)

	g := mgr.Globals()
	g.Genre = "Cosmic Horror"
	mgr.SetGlobals(g)

	rec := doJSON(t, srv, http.MethodPost, "/v1/sessions", map[string]string{"name": "Chapter One"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}

	var snap session.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Name != "Chapter One" || snap.ID == "" {
		t.Errorf("snapshot = %+v", snap)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/sessions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var snapshots []session.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshots); err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("list len = %d, want 1", len(snapshots))
	}

	// Mutate live state, then load the snapshot back.
	g.Genre = "Solarpunk"
	mgr.SetGlobals(g)

	rec = doJSON(t, srv, http.MethodPost, "/v1/sessions/"+snap.ID+"/load", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("load status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := mgr.Globals().Genre; got != "Cosmic Horror" {
		t.Errorf("genre after load = %q, want Cosmic Horror", got)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/v1/sessions/"+snap.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/sessions", nil)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("list after delete = %s", got)
	}
}

func TestLoadSession_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/sessions/nope/load", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("load status = %d, want 404", rec.Code)
	}
}

func TestElements_CRUD(t *testing.T) {
	srv, mgr := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/elements", map[string]string{
		"type":        "Character",
		"name":        "Kaelen",
		"description": "A stoic knight.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
	}

	var el models.SavedElement
	if err := json.Unmarshal(rec.Body.Bytes(), &el); err != nil {
		t.Fatal(err)
	}
	if el.ID == "" || el.Name != "Kaelen" {
		t.Errorf("element = %+v", el)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/context", nil)
	var ctxResp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &ctxResp); err != nil {
		t.Fatal(err)
	}
	if want := "[Saved Character]: Kaelen - A stoic knight."; ctxResp["context"] != want {
		t.Errorf("context = %q, want %q", ctxResp["context"], want)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/v1/elements/"+el.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if mgr.Registry.Len() != 0 {
		t.Errorf("registry len = %d, want 0", mgr.Registry.Len())
	}
}

func TestAddElement_RequiresName(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/elements", map[string]string{"type": "Prop"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("add status = %d, want 400", rec.Code)
	}
}

func TestExportWAV(t *testing.T) {
	srv, _ := testServer(t)

	pcm := make([]byte, 200)
	rec := doJSON(t, srv, http.MethodPost, "/v1/audio/wav", map[string]any{
		"payload": base64.StdEncoding.EncodeToString(pcm),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("wav status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("content type = %q", ct)
	}

	body := rec.Body.Bytes()
	if len(body) != 244 {
		t.Errorf("wav size = %d, want 244", len(body))
	}
	if string(body[:4]) != "RIFF" || string(body[8:12]) != "WAVE" {
		t.Error("response is not a WAV container")
	}
}

func TestExportWAV_BadPayload(t *testing.T) {
	srv, _ := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/audio/wav", map[string]any{
		"payload": "not base64!!!",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("wav status = %d, want 400", rec.Code)
	}
}
