// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection's index set is
reconciled idempotently; errors are aggregated so every problem is
visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	sets := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{"users", []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_users_email")},
			{Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "role", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_users_school_role")},
			{Keys: bson.D{{Key: "parent_id", Value: 1}},
				Options: options.Index().SetName("idx_users_parent")},
			{Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "full_name_ci", Value: 1}},
				Options: options.Index().SetName("idx_users_school_name")},
		}},
		{"schools", []mongo.IndexModel{
			{Keys: bson.D{{Key: "name_ci", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_schools_name")},
		}},
		{"assignments", []mongo.IndexModel{
			{Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "created_at", Value: 1}},
				Options: options.Index().SetName("idx_assignments_school_created")},
		}},
		{"chat_messages", []mongo.IndexModel{
			{Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "timestamp", Value: 1}},
				Options: options.Index().SetName("idx_chat_school_ts")},
		}},
		{"conversations", []mongo.IndexModel{
			{Keys: bson.D{{Key: "participants", Value: 1}, {Key: "last_timestamp", Value: -1}},
				Options: options.Index().SetName("idx_conversations_participant")},
		}},
		{"direct_messages", []mongo.IndexModel{
			{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "timestamp", Value: 1}},
				Options: options.Index().SetName("idx_dm_conversation_ts")},
		}},
		{"alerts", []mongo.IndexModel{
			{Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "resolved", Value: 1}, {Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_alerts_school_active")},
			{Keys: bson.D{{Key: "student_id", Value: 1}},
				Options: options.Index().SetName("idx_alerts_student")},
		}},
		{"yearbook_entries", []mongo.IndexModel{
			{Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "grade", Value: 1}, {Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_yearbook_school_grade")},
		}},
		{"announcements", []mongo.IndexModel{
			{Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_announcements_school")},
		}},
		{"calendar_events", []mongo.IndexModel{
			{Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("idx_events_school_date")},
		}},
		{"user_state", []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_user_state_user")},
		}},
	}

	for _, set := range sets {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				// Same keys and uniqueness already in place.
				continue
			}
			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
