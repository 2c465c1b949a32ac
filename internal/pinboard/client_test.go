package pinboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAll_DecodesPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("auth_token"); got != "user:ABC123" {
			t.Errorf("unexpected token %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("unexpected format %q", got)
		}
		if got := r.UserAgent(); got != DefaultUserAgent {
			t.Errorf("unexpected user agent %q", got)
		}
		_, _ = w.Write([]byte(`[{"href":"http://a","description":"Running club","extended":"","hash":"h1","tags":"sport run","toread":"yes"}]`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Token: "user:ABC123"})
	posts, err := c.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(posts) != 1 || posts[0].Hash != "h1" || posts[0].Tags != "sport run" || posts[0].ToRead != "yes" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestAll_ClassifiesErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, "", func(t *testing.T, err error) {
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		}},
		{"server error", http.StatusInternalServerError, "", func(t *testing.T, err error) {
			var re *RemoteError
			if !errors.As(err, &re) || re.StatusCode != http.StatusInternalServerError {
				t.Fatalf("expected RemoteError 500, got %v", err)
			}
		}},
		{"rate limited", http.StatusTooManyRequests, "", func(t *testing.T, err error) {
			var re *RemoteError
			if !errors.As(err, &re) || re.StatusCode != http.StatusTooManyRequests {
				t.Fatalf("expected RemoteError 429, got %v", err)
			}
		}},
		{"bad body", http.StatusOK, "<html>", func(t *testing.T, err error) {
			var re *RemoteError
			if !errors.As(err, &re) {
				t.Fatalf("expected RemoteError, got %v", err)
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(Options{BaseURL: srv.URL, Token: "u:X"}).All(context.Background())
			tc.check(t, err)
		})
	}
}

func TestAll_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := New(Options{BaseURL: base, Token: "u:X"}).All(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestAll_NoToken(t *testing.T) {
	_, err := New(Options{BaseURL: "http://127.0.0.1:1"}).All(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestMarkRead_SendsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/add" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("url") != "http://a" || q.Get("description") != "A" || q.Get("toread") != "no" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("tags") != "x y" || q.Get("extended") != "note" {
			t.Errorf("note/tags not resent: %v", q)
		}
		_, _ = w.Write([]byte(`{"result_code":"done"}`))
	}))
	defer srv.Close()

	err := New(Options{BaseURL: srv.URL, Token: "u:X"}).MarkRead(context.Background(), Post{
		Href: "http://a", Description: "A", Extended: "note", Tags: "x y",
	})
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
}

func TestDelete(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/delete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotURL = r.URL.Query().Get("url")
		_, _ = w.Write([]byte(`{"result_code":"done"}`))
	}))
	defer srv.Close()

	if err := New(Options{BaseURL: srv.URL + "/", Token: "u:X"}).Delete(context.Background(), "http://a?b=c"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotURL != "http://a?b=c" {
		t.Fatalf("unexpected url param %q", gotURL)
	}
}

func TestUserAgentOverride(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.UserAgent()
		_, _ = w.Write([]byte(`{"result_code":"done"}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Token: "u:X", UserAgent: "pinsearch/1.2.3"})
	if err := c.Delete(context.Background(), "http://a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got != "pinsearch/1.2.3" {
		t.Fatalf("user agent = %q", got)
	}
}
