package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_LabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /nodes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := Middleware(mux)

	counter := httpRequestsTotal.WithLabelValues("GET", "GET /nodes/{id}", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes/"+id, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("requests recorded under pattern = %v, want 3", got)
	}
}

func TestRecorders(t *testing.T) {
	success := importItemsTotal.WithLabelValues("success")
	failure := importItemsTotal.WithLabelValues("error")
	beforeOK, beforeErr := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordImport(4, true)
	RecordImport(2, false)

	if got := testutil.ToFloat64(success) - beforeOK; got != 4 {
		t.Errorf("success items = %v, want 4", got)
	}
	if got := testutil.ToFloat64(failure) - beforeErr; got != 2 {
		t.Errorf("error items = %v, want 2", got)
	}

	beforeDeleted := testutil.ToFloat64(deletedItemsTotal)
	RecordDeletedItems(5)
	if got := testutil.ToFloat64(deletedItemsTotal) - beforeDeleted; got != 5 {
		t.Errorf("deleted items = %v, want 5", got)
	}

	// Histograms only need to accept observations.
	ObserveTreeNodes(10)
	RecordTx("memory", time.Millisecond, true)
}
