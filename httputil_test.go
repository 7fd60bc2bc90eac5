package holdings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestDailyCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"close":150.5}`)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &DailyCache{Base: srv.Client().Transport, Dir: t.TempDir()}}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		var got struct{ Close float64 }
		if err := GetJSON(ctx, client, srv.URL+"/eod/AAPL", &got); err != nil {
			t.Fatalf("GetJSON() returned error: %v", err)
		}
		if got.Close != 150.5 {
			t.Errorf("GetJSON() close = %v, want 150.5", got.Close)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}

	// errors are not cached.
	for i := 0; i < 2; i++ {
		var got any
		err := GetJSON(ctx, client, srv.URL+"/missing", &got)
		var status *StatusError
		if !errors.As(err, &status) || status.Code != http.StatusNotFound {
			t.Errorf("GetJSON(missing) error = %v, want a 404 StatusError", err)
		}
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("server hit %d times, want 3", n)
	}
}
