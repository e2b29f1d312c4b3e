package attendancestore_test

import (
	"testing"

	attendancestore "github.com/dalemusser/classhub/internal/app/store/attendance"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/classhub/internal/testutil"
)

func TestStore_Upsert_OneDocPerSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Upsert(ctx, "class_1", "2026-08-28", []models.AttendanceEntry{
		{StudentID: "user_s1", Present: true},
		{StudentID: "user_s2", Present: false},
	}, "user_teacher")
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if first.AttendanceID == "" {
		t.Error("expected AttendanceID to be assigned")
	}

	// Resubmission for the same class+date replaces the records.
	second, err := store.Upsert(ctx, "class_1", "2026-08-28", []models.AttendanceEntry{
		{StudentID: "user_s1", Present: true},
		{StudentID: "user_s2", Present: true},
	}, "user_teacher")
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.AttendanceID != first.AttendanceID {
		t.Errorf("AttendanceID changed across upserts: %q vs %q", second.AttendanceID, first.AttendanceID)
	}

	sheets, err := store.ListByClass(ctx, "class_1")
	if err != nil {
		t.Fatalf("ListByClass failed: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheets for class+date: got %d, want 1", len(sheets))
	}
	if len(sheets[0].Records) != 2 || !sheets[0].Records[1].Present {
		t.Errorf("records not replaced: %+v", sheets[0].Records)
	}
}

func TestStore_Upsert_SeparateDates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, date := range []string{"2026-08-27", "2026-08-28"} {
		if _, err := store.Upsert(ctx, "class_1", date, nil, "user_teacher"); err != nil {
			t.Fatalf("Upsert(%s) failed: %v", date, err)
		}
	}

	sheets, err := store.ListByClass(ctx, "class_1")
	if err != nil {
		t.Fatalf("ListByClass failed: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("sheets: got %d, want 2", len(sheets))
	}
	// Most recent session first.
	if sheets[0].SessionDate != "2026-08-28" {
		t.Errorf("sort: got first %q, want 2026-08-28", sheets[0].SessionDate)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sheet, err := store.Upsert(ctx, "class_1", "2026-08-28", nil, "user_teacher")
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := store.Delete(ctx, "class_1", sheet.AttendanceID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "class_1", sheet.AttendanceID); err == nil {
		t.Error("expected error deleting twice")
	}
}
