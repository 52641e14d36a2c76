package domain

import (
	"context"

	"glossrank/internal/core/ranking"
)

// Rejoin hydrates remote ids from approved items only, in remote order
// ids that are missing or not approved are dropped, missing scores become def
func Rejoin(ctx context.Context, store ItemReader, named []ranking.Scored, def float64, reason string) ([]ranking.Item, error) {
	found, err := store.ApprovedItems(ctx, ranking.IDs(named))
	if err != nil {
		return nil, err
	}
	known := make([]ranking.Item, 0, len(found))
	for _, it := range found {
		known = append(known, ranking.Item{
			ID:           it.ID,
			Abbreviation: it.Abbreviation,
			Meaning:      it.Meaning,
			Description:  it.Description,
			Category:     it.Category,
		})
	}
	return ranking.Rejoin(named, known, def, reason), nil
}
