package search

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

func newTestIndex(t *testing.T, h http.HandlerFunc) *UserIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return NewUserIndex(es, "ledger-users", nil)
}

func TestSearchDecodesHits(t *testing.T) {
	var path string
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"u1","_source":{"id":"u1","email":"a@x.com","name":"Alice"}}]}}`))
	})
	got, err := x.Search(context.Background(), "alice", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if path != "/ledger-users/_search" {
		t.Fatalf("path = %s", path)
	}
	if len(got) != 1 || got[0].Email != "a@x.com" {
		t.Fatalf("hits = %+v", got)
	}
}

func TestReindexSendsBulkPairs(t *testing.T) {
	var lines int
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				lines++
			}
		}
		_, _ = w.Write([]byte(`{"errors":true,"items":[{"index":{"status":201}},{"index":{"status":400}}]}`))
	})
	users := []entity.User{{ID: "u1", Email: "a@x.com"}, {ID: "u2", Email: "b@x.com"}}
	n, err := x.Reindex(context.Background(), users)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if lines != 4 {
		t.Fatalf("bulk lines = %d, want 4", lines)
	}
	if n != 1 {
		t.Fatalf("accepted = %d, want 1", n)
	}
}

func TestRemoveIgnoresMissing(t *testing.T) {
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})
	if err := x.Remove(context.Background(), "u1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	})
	if _, err := x.Search(context.Background(), "a", 5); err == nil {
		t.Fatalf("expected error on 500")
	}
}
