package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return New(url, 5*time.Second)
}

func TestDo_JSONBodySetsContentType(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Post(context.Background(), "/auth/login", map[string]string{"username": "doc1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected application/json, got %q", gotContentType)
	}
	if !strings.Contains(gotBody, `"username":"doc1"`) {
		t.Fatalf("body not serialized: %q", gotBody)
	}
}

func TestDo_GetHasNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 {
			t.Errorf("GET carried a body")
		}
		if r.Header.Get("Content-Type") != "" {
			t.Errorf("GET carried a content type: %q", r.Header.Get("Content-Type"))
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Get(context.Background(), "/admin/cases"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_ServerMessageOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"username taken"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Post(context.Background(), "/admin/doctor", map[string]string{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Error() != "username taken" {
		t.Fatalf("expected server message, got %q", apiErr.Error())
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apiErr.Status)
	}
}

func TestDo_GenericMessageWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Get(context.Background(), "/admin/cases")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Error() != "Request failed: 502" {
		t.Fatalf("expected generic message, got %q", apiErr.Error())
	}
}

func TestDo_SuccessFalseIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Post(context.Background(), "/auth/login", map[string]string{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("got %q", apiErr.Message)
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable from here on

	_, err := newTestClient(srv.URL).Get(context.Background(), "/auth/me")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
}

func TestPostMultipart_PassesThroughWithBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not parseable multipart: %v", err)
		}
		if r.FormValue("caseId") != "abc123" {
			t.Errorf("missing form field, got %q", r.FormValue("caseId"))
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("missing file part: %v", err)
		} else {
			file.Close()
			if header.Filename != "scan.png" {
				t.Errorf("filename %q", header.Filename)
			}
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).PostMultipart(
		context.Background(), "/tech/upload/abc123",
		map[string]string{"caseId": "abc123"},
		"image", "scan.png", strings.NewReader("pngbytes"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnvelope_DecodePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"cases":[{"_id":"c1"},{"_id":"c2"}]}`))
	}))
	defer srv.Close()

	env, err := newTestClient(srv.URL).Get(context.Background(), "/admin/cases")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		Cases []struct {
			ID string `json:"_id"`
		} `json:"cases"`
	}
	if err := env.Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Cases) != 2 || payload.Cases[1].ID != "c2" {
		t.Fatalf("payload not decoded: %+v", payload)
	}
}

func TestClient_KeepsCookiesAcrossCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "s1"})
			w.Write([]byte(`{"success":true}`))
		case "/auth/me":
			c, err := r.Cookie("sid")
			if err != nil || c.Value != "s1" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false}`))
				return
			}
			w.Write([]byte(`{"success":true}`))
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Post(context.Background(), "/auth/login", map[string]string{}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := client.Get(context.Background(), "/auth/me"); err != nil {
		t.Fatalf("cookie not replayed: %v", err)
	}
}
