package omnisearch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// UpsertProfile indexes or replaces a parent profile.
func (c *Client) UpsertProfile(ctx context.Context, p Profile) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert_profile", start, err) }()

	if p.ID == "" || p.Name == "" {
		return errors.New("omnisearch: profile id and name are required")
	}
	if err = c.profiles.Upsert(ctx, toProfile(&p)); err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}
	return nil
}

// UpsertSitters indexes or replaces sitters.
func (c *Client) UpsertSitters(ctx context.Context, items []Item) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert_sitters", start, err) }()

	return upsertItems(ctx, c.sitters, "sitters", items)
}

// UpsertProducts indexes or replaces products.
func (c *Client) UpsertProducts(ctx context.Context, items []Item) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert_products", start, err) }()

	return upsertItems(ctx, c.products, "products", items)
}

func upsertItems(ctx context.Context, w catalogWriter, kind string, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == "" || items[i].Name == "" {
			return fmt.Errorf("omnisearch: %s[%d]: id and name are required", kind, i)
		}
	}
	if err := w.UpsertBatch(ctx, toItems(items)); err != nil {
		return fmt.Errorf("upsert %s: %w", kind, err)
	}
	return nil
}

// Follow records that follower follows target.
func (c *Client) Follow(ctx context.Context, follower, target string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("follow", start, err) }()

	if err = checkEdge(follower, target); err != nil {
		return err
	}
	if err = c.graph.Follow(ctx, follower, target); err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

// Request records a pending follow request from requester to target.
func (c *Client) Request(ctx context.Context, requester, target string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("request", start, err) }()

	if err = checkEdge(requester, target); err != nil {
		return err
	}
	if err = c.graph.Request(ctx, requester, target); err != nil {
		return fmt.Errorf("request: %w", err)
	}
	return nil
}

func checkEdge(from, to string) error {
	if from == "" || to == "" {
		return errors.New("omnisearch: both user ids are required")
	}
	if from == to {
		return errors.New("omnisearch: self edge")
	}
	return nil
}
