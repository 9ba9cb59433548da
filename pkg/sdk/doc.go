// Package omnisearch embeds the unified profile search pipeline in a Go
// program: one query fans out to parents, sitters and products stored in
// Redis and comes back as a single ranked page.
//
//	client, _ := omnisearch.New(ctx, omnisearch.WithRedis("localhost:6379", ""))
//	defer client.Close()
//	_ = client.EnsureSchema(ctx)
//
//	page, err := client.Search(ctx, omnisearch.SearchRequest{
//	    Query:       "jane",
//	    RequesterID: "u-42",
//	})
//	if err == nil && page.Partial {
//	    // some entity types failed; page.Failed names them
//	}
//
// Search never returns bio, phone or location of a private parent the
// requester does not follow.
package omnisearch
