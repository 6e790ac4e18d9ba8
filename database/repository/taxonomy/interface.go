package taxonomyRepo

import (
	"context"

	"lexmarket/models"
)

// TaxonomyRepository reads and seeds reference data.
type TaxonomyRepository interface {
	// MissingIDs returns the subset of ids that do not exist for kind, in input order.
	MissingIDs(ctx context.Context, kind models.TaxonomyKind, ids []string) ([]string, error)
	// List returns every entry of a kind, sorted by name.
	List(ctx context.Context, kind models.TaxonomyKind) ([]models.TaxonomyItem, error)
	// UpsertMany inserts or replaces the given entries.
	UpsertMany(ctx context.Context, items []models.TaxonomyItem) error
}
