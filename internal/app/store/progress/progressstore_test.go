package progressstore_test

import (
	"testing"

	progressstore "github.com/dalemusser/classhub/internal/app/store/progress"
	"github.com/dalemusser/classhub/internal/testutil"
)

func TestStore_Upsert_OneRecordPerStudent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := progressstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Upsert(ctx, "class_1", "user_s1", 72.5, "needs work", "user_teacher")
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if first.ProgressID == "" {
		t.Error("expected ProgressID to be assigned")
	}

	second, err := store.Upsert(ctx, "class_1", "user_s1", 88, "improving", "user_teacher")
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.ProgressID != first.ProgressID {
		t.Errorf("ProgressID changed across upserts: %q vs %q", second.ProgressID, first.ProgressID)
	}
	if second.Score != 88 || second.Remarks != "improving" {
		t.Errorf("record not replaced: %+v", second)
	}

	all, err := store.ListByClass(ctx, "class_1")
	if err != nil {
		t.Fatalf("ListByClass failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("records for class+student: got %d, want 1", len(all))
	}
}

func TestStore_ListByClassAndStudent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := progressstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Upsert(ctx, "class_1", "user_s1", 90, "", "user_teacher"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := store.Upsert(ctx, "class_1", "user_s2", 60, "", "user_teacher"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	own, err := store.ListByClassAndStudent(ctx, "class_1", "user_s1")
	if err != nil {
		t.Fatalf("ListByClassAndStudent failed: %v", err)
	}
	if len(own) != 1 || own[0].StudentID != "user_s1" {
		t.Errorf("student filter leaked rows: %+v", own)
	}
}
