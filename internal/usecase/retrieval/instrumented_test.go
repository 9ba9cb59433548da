package retrieval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/domain"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
	"github.com/kailas-cloud/omnisearch/internal/metrics"
)

func TestInstrumented_Success(t *testing.T) {
	before := testutil.ToFloat64(metrics.RetrievalsTotal.WithLabelValues("sitter", "ok"))
	candsBefore := testutil.ToFloat64(metrics.RetrievedCandidates.WithLabelValues("sitter"))

	inner := &stubRetriever{typ: entity.Sitter, cands: []candidate.Candidate{
		cand("s1", match.Exact, 1), cand("s2", match.Fuzzy, 0.5),
	}}
	r := NewInstrumented(inner, zap.NewNop())

	got, err := r.Retrieve(context.Background(), mustQuery(t, "maria", "me"), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}

	if v := testutil.ToFloat64(metrics.RetrievalsTotal.WithLabelValues("sitter", "ok")); v != before+1 {
		t.Errorf("retrievals_total ok = %f, want %f", v, before+1)
	}
	if v := testutil.ToFloat64(metrics.RetrievedCandidates.WithLabelValues("sitter")); v != candsBefore+2 {
		t.Errorf("retrieved_candidates_total = %f, want %f", v, candsBefore+2)
	}
}

func TestInstrumented_Error(t *testing.T) {
	before := testutil.ToFloat64(metrics.RetrievalsTotal.WithLabelValues("product", "timeout"))

	inner := &stubRetriever{typ: entity.Product, err: fmt.Errorf("search: %w", context.DeadlineExceeded)}
	r := NewInstrumented(inner, zap.NewNop())

	if _, err := r.Retrieve(context.Background(), mustQuery(t, "bottle", "me"), 10); err == nil {
		t.Fatal("expected error")
	}
	if v := testutil.ToFloat64(metrics.RetrievalsTotal.WithLabelValues("product", "timeout")); v != before+1 {
		t.Errorf("retrievals_total timeout = %f, want %f", v, before+1)
	}
}

func TestRetrievalOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("x: %w", domain.ErrRetrieverOpen), "open"},
		{context.DeadlineExceeded, "timeout"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range tests {
		if got := retrievalOutcome(tc.err); got != tc.want {
			t.Errorf("retrievalOutcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
