package types

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Setup sets up indexes on collection, must be called at least
// Onetime during the life time of the collection. Indexes that already
// exist with the same keys are left as they are.
func Setup(ctx context.Context, db *mongo.Database, collection string, indexes []IndexSpec) ([]string, error) {
	col := db.Collection(collection)

	return col.Indexes().CreateMany(ctx, models(indexes))
}

func models(indexes []IndexSpec) []mongo.IndexModel {
	result := make([]mongo.IndexModel, 0, len(indexes))
	for _, spec := range indexes {
		result = append(result, spec.Model())
	}
	return result
}
