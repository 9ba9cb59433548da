package retrieval

import (
	"container/heap"
	"sort"

	"github.com/kailas-cloud/omnisearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/match"
)

// kindRank breaks base-score ties between match kinds; lower is stronger.
var kindRank = map[match.Kind]int{
	match.Phonetic: 0,
	match.Exact:    1,
	match.Prefix:   2,
	match.Fuzzy:    3,
}

// weaker is a strict total order for truncation: lower base, then weaker
// kind, then the later id.
func weaker(a, b *candidate.Candidate) bool {
	if a.Base() != b.Base() {
		return a.Base() < b.Base()
	}
	if a.Kind != b.Kind {
		return kindRank[a.Kind] > kindRank[b.Kind]
	}
	return a.Ref.ID > b.Ref.ID
}

// minHeap keeps the weakest retained candidate at the root.
type minHeap []candidate.Candidate

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return weaker(&h[i], &h[j]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) { *h = append(*h, x.(candidate.Candidate)) }

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// topK returns the limit strongest candidates, strongest first.
func topK(cands []candidate.Candidate, limit int) []candidate.Candidate {
	if limit <= 0 || len(cands) == 0 {
		return nil
	}

	h := make(minHeap, 0, min(limit, len(cands)))
	for i := range cands {
		if h.Len() < limit {
			heap.Push(&h, cands[i])
			continue
		}
		if weaker(&h[0], &cands[i]) {
			h[0] = cands[i]
			heap.Fix(&h, 0)
		}
	}

	out := []candidate.Candidate(h)
	sort.Slice(out, func(i, j int) bool { return weaker(&out[j], &out[i]) })
	return out
}
