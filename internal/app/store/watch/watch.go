// internal/app/store/watch/watch.go
//
// Package watch opens tenant-scoped change streams. Every live feed in
// the sync layer is driven by one of these; the stream is only used as
// a "something changed" signal (the subscriber re-reads the full list
// on every event), so the pipeline also passes delete events, which
// carry no fullDocument to filter on.
package watch

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Tenant opens a change stream on c restricted to documents whose
// school_id matches, plus all deletes.
func Tenant(ctx context.Context, c *mongo.Collection, schoolID primitive.ObjectID) (*mongo.ChangeStream, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$or": bson.A{
				bson.M{"fullDocument.school_id": schoolID},
				bson.M{"operationType": "delete"},
			},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	return c.Watch(ctx, pipeline, opts)
}

// Filtered opens a change stream with an arbitrary fullDocument match,
// plus all deletes. Keys in match must already carry the
// "fullDocument." prefix.
func Filtered(ctx context.Context, c *mongo.Collection, match bson.M) (*mongo.ChangeStream, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$or": bson.A{
				match,
				bson.M{"operationType": "delete"},
			},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	return c.Watch(ctx, pipeline, opts)
}
