package schema

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/db"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
)

// nameWeight boosts name matches over username and description in store-side ranking.
const nameWeight = 2

// indexManager is the consumer interface for index lifecycle (ISP).
type indexManager interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Definitions returns the FT index definitions for every entity type.
func Definitions(k Keys) []*db.IndexDefinition {
	return []*db.IndexDefinition{
		db.NewIndex(k.Index(entity.Parent)).
			Prefix(k.EntityPrefix(entity.Parent)).
			NoStopwords().
			Name(FieldName, nameWeight).
			Name(FieldUsername, 1).
			Tag(FieldInitials).
			Tag(FieldPhoneDigits).
			Tag(FieldPhoneSearchable).
			Tag(FieldPrivacy).
			MustBuild(),
		db.NewIndex(k.Index(entity.Sitter)).
			Prefix(k.EntityPrefix(entity.Sitter)).
			NoStopwords().
			Name(FieldName, nameWeight).
			Name(FieldUsername, 1).
			Tag(FieldInitials).
			Text(FieldDescription).
			Numeric(FieldRating).
			MustBuild(),
		db.NewIndex(k.Index(entity.Product)).
			Prefix(k.EntityPrefix(entity.Product)).
			NoStopwords().
			Name(FieldName, nameWeight).
			Tag(FieldInitials).
			Text(FieldDescription).
			Numeric(FieldRating).
			MustBuild(),
	}
}

// Ensure creates every index that does not exist yet.
func Ensure(ctx context.Context, store indexManager, k Keys, log *zap.Logger) error {
	for _, def := range Definitions(k) {
		err := store.CreateIndex(ctx, def)
		switch {
		case err == nil:
			log.Info("index created", zap.String("index", def.Name))
		case errors.Is(err, db.ErrIndexExists):
			log.Debug("index exists", zap.String("index", def.Name))
		default:
			return fmt.Errorf("ensure index %s: %w", def.Name, err)
		}
	}
	return nil
}
