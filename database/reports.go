package database

import (
	"context"

	"github.com/suncar/seeder/models"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/mgo.v2/bson"
)

// --- Queries (read-only) ---

// CountDocuments counts documents whose field equals value. An empty field
// counts the whole collection.
func (w *WorkOrderCollection) CountDocuments(ctx context.Context, field string, value string) (int64, error) {
	match := bson.M{}
	if field != "" {
		match[field] = value
	}
	return w.coll().CountDocuments(ctx, match)
}

// Sample returns the first limit documents in natural order.
func (w *WorkOrderCollection) Sample(ctx context.Context, limit int64) ([]models.WorkOrder, error) {
	var orders []models.WorkOrder
	cursor, err := w.coll().Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
