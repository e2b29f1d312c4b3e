// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context, *mongo.Database) error) {
		if err := fn(ctx, db); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", ensureUsers)
	ensure("classes", ensureClasses)
	ensure("enrollments", ensureEnrollments)
	ensure("videos", ensureVideos)
	ensure("announcements", ensureAnnouncements)
	ensure("assignments", ensureAssignments)
	ensure("notes", ensureNotes)
	ensure("attendance", ensureAttendance)
	ensure("progress", ensureProgress)
	ensure("credit_transactions", ensureCreditTransactions)
	ensure("invoices", ensureInvoices)
	ensure("schedules", ensureSchedules)
	ensure("oauth_states", ensureOAuthStates)

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

func boolOf(p *bool) bool { return p != nil && *p }

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()), zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	var errs []string
	for _, m := range models {
		var wantName string
		var wantUnique bool
		if m.Options != nil {
			if m.Options.Name != nil {
				wantName = *m.Options.Name
			}
			wantUnique = boolOf(m.Options.Unique)
		}
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok {
			if boolOf(ex.Unique) == wantUnique {
				continue // already in place
			}
			// Options changed (e.g. upgrading to unique): drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), wantName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", wantName),
				zap.String("keys", sig),
				zap.Bool("unique", wantUnique),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), wantName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", wantName),
			zap.String("keys", sig),
			zap.Bool("unique", wantUnique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_userid"),
		},
		// Email must be unique across all users.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Role listings (e.g. all teachers for schedules).
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_users_role_created"),
		},
	})
}

func ensureClasses(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("classes"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_classes_classid"),
		},
		// Teacher dashboard: classes owned by one teacher.
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_classes_teacher_created"),
		},
	})
}

func ensureEnrollments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("enrollments"), []mongo.IndexModel{
		// One enrollment per (student, class). Backstop for the
		// check-then-insert race on concurrent enroll requests.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "class_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_enroll_user_class"),
		},
		// Roster lookups and cascade deletes by class.
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}},
			Options: options.Index().SetName("idx_enroll_class"),
		},
	})
}

func ensureVideos(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("videos"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "video_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_videos_videoid"),
		},
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_videos_class_created"),
		},
	})
}

func ensureAnnouncements(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("announcements"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "announcement_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_annc_anncid"),
		},
		// Class feed, latest first.
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_annc_class_created"),
		},
	})
}

func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("assignments"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "assignment_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_assign_assignid"),
		},
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_assign_class_created"),
		},
	})
}

func ensureNotes(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("notes"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "note_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_notes_noteid"),
		},
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notes_class_created"),
		},
	})
}

func ensureAttendance(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("attendance"), []mongo.IndexModel{
		// One sheet per class session; writes upsert on this pair.
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}, {Key: "session_date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_attend_class_date"),
		},
	})
}

func ensureProgress(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("progress"), []mongo.IndexModel{
		// One progress record per (class, student); writes upsert on this pair.
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}, {Key: "student_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_progress_class_student"),
		},
	})
}

func ensureCreditTransactions(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("credit_transactions"), []mongo.IndexModel{
		// Per-student history, latest first.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_txn_user_created"),
		},
	})
}

func ensureInvoices(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("invoices"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "invoice_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_invoices_invoiceid"),
		},
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_invoices_student_created"),
		},
	})
}

func ensureSchedules(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("schedules"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "schedule_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_sched_schedid"),
		},
		// Teacher calendar, chronological.
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("idx_sched_teacher_start"),
		},
	})
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("oauth_states"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_oauth_state"),
		},
		// TTL cleanup of abandoned flows.
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_oauth_ttl"),
		},
	})
}
