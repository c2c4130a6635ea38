package recclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func recommendBody(names ...string) string {
	results := make([]map[string]any, len(names))
	for i, n := range names {
		results[i] = map[string]any{"name": n}
	}
	b, _ := json.Marshal(map[string]any{"results": results})
	return string(b)
}

func TestFetchIsNoOpWithoutLocation(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Fetch(context.Background(), Params{Query: "thai"}); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("server called %d times before a location was set", n)
	}
	if s := c.State(); s.Loading || s.Err != "" || len(s.Results) != 0 {
		t.Fatalf("state mutated by no-op fetch: %+v", s)
	}
}

func TestFetchPopulatesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("lat"); got != "1.3521" {
			t.Errorf("lat = %q", got)
		}
		fmt.Fprint(w, recommendBody("Jumbo Seafood", "TungLok"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetLocation(1.3521, 103.8198)
	if err := c.Fetch(context.Background(), Params{Query: "seafood"}); err != nil {
		t.Fatal(err)
	}
	s := c.State()
	if s.Loading || s.Err != "" {
		t.Fatalf("unexpected state: %+v", s)
	}
	if len(s.Results) != 2 || s.Results[0].Name != "Jumbo Seafood" {
		t.Fatalf("unexpected results: %+v", s.Results)
	}
}

func TestFetchErrorPreservesPriorResults(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			fmt.Fprint(w, recommendBody("Jumbo Seafood"))
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetLocation(1.3521, 103.8198)
	if err := c.Fetch(context.Background(), Params{}); err != nil {
		t.Fatal(err)
	}
	if err := c.Fetch(context.Background(), Params{}); err == nil {
		t.Fatal("expected error from failing fetch")
	}

	s := c.State()
	if s.Err == "" {
		t.Fatal("error not recorded")
	}
	if len(s.Results) != 1 || s.Results[0].Name != "Jumbo Seafood" {
		t.Fatalf("prior results lost on error: %+v", s.Results)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "slow" {
			close(started)
			<-release
			fmt.Fprint(w, recommendBody("Stale Result"))
			return
		}
		fmt.Fprint(w, recommendBody("Fresh Result"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetLocation(1.3521, 103.8198)

	done := make(chan error, 1)
	go func() { done <- c.Fetch(context.Background(), Params{Query: "slow"}) }()
	<-started

	if err := c.Fetch(context.Background(), Params{Query: "fresh"}); err != nil {
		t.Fatal(err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	s := c.State()
	if len(s.Results) != 1 || s.Results[0].Name != "Fresh Result" {
		t.Fatalf("stale response overwrote newer results: %+v", s.Results)
	}
}
