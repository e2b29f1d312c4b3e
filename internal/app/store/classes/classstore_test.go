package classstore_test

import (
	"errors"
	"sync"
	"testing"

	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := store.Create(ctx, models.Class{
		Title:       "Algebra I",
		TeacherID:   "user_teacher0001",
		TeacherName: "Ms. Noether",
		StartTime:   "09:00",
		EndTime:     "10:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if cls.ClassID == "" {
		t.Error("expected ClassID to be assigned")
	}
	if cls.MaxStudents != classstore.DefaultMaxStudents {
		t.Errorf("MaxStudents: got %d, want default %d", cls.MaxStudents, classstore.DefaultMaxStudents)
	}
	if cls.EnrolledCount != 0 {
		t.Errorf("EnrolledCount: got %d, want 0", cls.EnrolledCount)
	}
}

func TestStore_IncrementEnrolled_Capacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := store.Create(ctx, models.Class{Title: "Tiny", TeacherID: "user_t", MaxStudents: 2})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := store.IncrementEnrolled(ctx, cls.ClassID); err != nil {
			t.Fatalf("increment %d failed: %v", i, err)
		}
	}
	if err := store.IncrementEnrolled(ctx, cls.ClassID); !errors.Is(err, classstore.ErrClassFull) {
		t.Errorf("expected ErrClassFull at capacity, got %v", err)
	}

	got, err := store.GetByID(ctx, cls.ClassID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.EnrolledCount != 2 {
		t.Errorf("EnrolledCount: got %d, want 2", got.EnrolledCount)
	}
}

func TestStore_IncrementEnrolled_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := store.Create(ctx, models.Class{Title: "Popular", TeacherID: "user_t", MaxStudents: 5})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.IncrementEnrolled(ctx, cls.ClassID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 5 {
		t.Errorf("successful increments: got %d, want exactly 5", succeeded)
	}
	got, err := store.GetByID(ctx, cls.ClassID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.EnrolledCount != 5 {
		t.Errorf("EnrolledCount: got %d, want max_students 5", got.EnrolledCount)
	}
}

func TestStore_ListByTeacherAndIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, models.Class{Title: "A", TeacherID: "user_t1"})
	b, _ := store.Create(ctx, models.Class{Title: "B", TeacherID: "user_t1"})
	if _, err := store.Create(ctx, models.Class{Title: "C", TeacherID: "user_t2"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mine, err := store.ListByTeacher(ctx, "user_t1")
	if err != nil {
		t.Fatalf("ListByTeacher failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("ListByTeacher: got %d classes, want 2", len(mine))
	}

	byIDs, err := store.ListByIDs(ctx, []string{a.ClassID, b.ClassID, "class_missing"})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(byIDs) != 2 {
		t.Errorf("ListByIDs: got %d classes, want 2", len(byIDs))
	}

	empty, err := store.ListByIDs(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("ListByIDs(nil): got %v, %v", empty, err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := store.Create(ctx, models.Class{Title: "Doomed", TeacherID: "user_t"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, cls.ClassID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, cls.ClassID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("second delete: expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_SetLinks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := store.Create(ctx, models.Class{Title: "Linked", TeacherID: "user_t"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetMeetLink(ctx, cls.ClassID, "https://meet.google.com/abcdef1234"); err != nil {
		t.Fatalf("SetMeetLink failed: %v", err)
	}
	if err := store.SetRecordingLink(ctx, cls.ClassID, "https://example.com/rec"); err != nil {
		t.Fatalf("SetRecordingLink failed: %v", err)
	}

	got, err := store.GetByID(ctx, cls.ClassID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.MeetLink != "https://meet.google.com/abcdef1234" || got.RecordingLink != "https://example.com/rec" {
		t.Errorf("links not persisted: %+v", got)
	}

	if err := store.SetMeetLink(ctx, "class_missing", "x"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing class: expected ErrNoDocuments, got %v", err)
	}
}
