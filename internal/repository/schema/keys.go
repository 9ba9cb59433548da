package schema

import (
	"github.com/kailas-cloud/omnisearch/internal/domain"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
)

// Keys builds Redis key names under a configurable namespace.
type Keys struct {
	prefix string
}

// NewKeys returns a key builder. An empty prefix falls back to domain.DefaultKeyPrefix.
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return Keys{prefix: prefix}
}

// Prefix returns the namespace, e.g. "omni:".
func (k Keys) Prefix() string { return k.prefix }

// EntityPrefix returns the hash key prefix of an entity type, e.g. "omni:parent:".
func (k Keys) EntityPrefix(t entity.Type) string { return k.prefix + string(t) + ":" }

// Entity returns the hash key of a single entity.
func (k Keys) Entity(t entity.Type, id string) string { return k.EntityPrefix(t) + id }

// Index returns the FT index name of an entity type.
func (k Keys) Index(t entity.Type) string { return k.prefix + string(t) + ":idx" }

// Following is the set of user ids that uid follows.
func (k Keys) Following(uid string) string { return k.prefix + "following:" + uid }

// Followers is the set of user ids following uid.
func (k Keys) Followers(uid string) string { return k.prefix + "followers:" + uid }

// Requested is the set of user ids uid has a pending follow request to.
func (k Keys) Requested(uid string) string { return k.prefix + "requested:" + uid }
