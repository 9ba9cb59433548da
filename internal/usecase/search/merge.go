package search

import (
	"sort"

	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/result"
)

// merge combines per-type results into one ranking and cuts the requested page.
// Identity is (type, id); a duplicate keeps its higher score. Order is score
// descending, then type priority, then id ascending. Ranks are 0-based over
// the full ordering. total counts the merged results before paging.
func merge(perType map[entity.Type][]result.Result, page query.Page) (pageResults []result.Result, total int) {
	best := make(map[entity.Ref]result.Result)
	for _, results := range perType {
		for _, r := range results {
			if prev, ok := best[r.Ref()]; ok && prev.Score() >= r.Score() {
				continue
			}
			best[r.Ref()] = r
		}
	}

	all := make([]result.Result, 0, len(best))
	for _, r := range best {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return ranksBefore(&all[i], &all[j]) })

	total = len(all)
	if page.Offset >= total {
		return []result.Result{}, total
	}
	end := min(page.Offset+page.Size, total)

	pageResults = make([]result.Result, 0, end-page.Offset)
	for i := page.Offset; i < end; i++ {
		pageResults = append(pageResults, all[i].WithRank(i))
	}
	return pageResults, total
}

func ranksBefore(a, b *result.Result) bool {
	if a.Score() != b.Score() {
		return a.Score() > b.Score()
	}
	if pa, pb := a.Type().Priority(), b.Type().Priority(); pa != pb {
		return pa < pb
	}
	return a.ID() < b.ID()
}
