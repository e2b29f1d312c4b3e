package enrollments_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/classhub/internal/app/features/enrollments"
	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	enrollmentstore "github.com/dalemusser/classhub/internal/app/store/enrollments"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/indexes"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.uber.org/zap"
)

type enrollFixture struct {
	router      http.Handler
	classes     *classstore.Store
	enrollments *enrollmentstore.Store
}

func setupEnroll(t *testing.T) *enrollFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	f := &enrollFixture{
		classes:     classstore.New(db),
		enrollments: enrollmentstore.New(db),
	}
	h := enrollments.NewHandler(f.enrollments, f.classes, zap.NewNop())
	f.router = enrollments.Routes(h)
	return f
}

func do(t *testing.T, router http.Handler, method, target string, su *auth.SessionUser, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if su != nil {
		req = auth.WithTestUser(req, su)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error body: %v", err)
	}
	return body.Detail
}

func TestEnroll_Succeeds(t *testing.T) {
	f := setupEnroll(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := f.classes.Create(ctx, models.Class{Title: "Math", TeacherID: "teacher-1", MaxStudents: 5})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}

	su := &auth.SessionUser{ID: "student-1", Role: "student"}
	rec := do(t, f.router, "POST", "/", su, `{"class_id": "`+cls.ClassID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	stored, err := f.classes.GetByID(ctx, cls.ClassID)
	if err != nil {
		t.Fatalf("reload class: %v", err)
	}
	if stored.EnrolledCount != 1 {
		t.Errorf("enrolled_count: got %d, want 1", stored.EnrolledCount)
	}
}

func TestEnroll_OnlyStudents(t *testing.T) {
	f := setupEnroll(t)

	su := &auth.SessionUser{ID: "teacher-1", Role: "teacher"}
	rec := do(t, f.router, "POST", "/", su, `{"class_id": "whatever"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
	if got := detail(t, rec); got != "Only students can enroll" {
		t.Errorf("detail: got %q", got)
	}
}

func TestEnroll_ClassNotFound(t *testing.T) {
	f := setupEnroll(t)

	su := &auth.SessionUser{ID: "student-1", Role: "student"}
	rec := do(t, f.router, "POST", "/", su, `{"class_id": "missing"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	if got := detail(t, rec); got != "Class not found" {
		t.Errorf("detail: got %q", got)
	}
}

func TestEnroll_DuplicateConflict(t *testing.T) {
	f := setupEnroll(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := f.classes.Create(ctx, models.Class{Title: "Art", TeacherID: "teacher-1", MaxStudents: 5})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}

	su := &auth.SessionUser{ID: "student-1", Role: "student"}
	body := `{"class_id": "` + cls.ClassID + `"}`

	if rec := do(t, f.router, "POST", "/", su, body); rec.Code != http.StatusOK {
		t.Fatalf("first enroll: got %d", rec.Code)
	}
	rec := do(t, f.router, "POST", "/", su, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
	if got := detail(t, rec); got != "Already enrolled" {
		t.Errorf("detail: got %q", got)
	}

	// The failed attempt must not consume a seat.
	stored, err := f.classes.GetByID(ctx, cls.ClassID)
	if err != nil {
		t.Fatalf("reload class: %v", err)
	}
	if stored.EnrolledCount != 1 {
		t.Errorf("enrolled_count: got %d, want 1", stored.EnrolledCount)
	}
}

func TestEnroll_ClassFull(t *testing.T) {
	f := setupEnroll(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := f.classes.Create(ctx, models.Class{Title: "Tiny", TeacherID: "teacher-1", MaxStudents: 1})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	body := `{"class_id": "` + cls.ClassID + `"}`

	first := &auth.SessionUser{ID: "student-1", Role: "student"}
	if rec := do(t, f.router, "POST", "/", first, body); rec.Code != http.StatusOK {
		t.Fatalf("first enroll: got %d", rec.Code)
	}

	second := &auth.SessionUser{ID: "student-2", Role: "student"}
	rec := do(t, f.router, "POST", "/", second, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
	if got := detail(t, rec); got != "Class is full" {
		t.Errorf("detail: got %q", got)
	}

	// An already-enrolled student on a full class reads as a duplicate,
	// not as a capacity problem.
	rec = do(t, f.router, "POST", "/", first, body)
	if got := detail(t, rec); got != "Already enrolled" {
		t.Errorf("detail: got %q", got)
	}
}

func TestList_OwnEnrollmentsOnly(t *testing.T) {
	f := setupEnroll(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := f.classes.Create(ctx, models.Class{Title: "Shared", TeacherID: "teacher-1", MaxStudents: 5})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	if _, err := f.enrollments.Create(ctx, "student-1", cls.ClassID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := f.enrollments.Create(ctx, "student-2", cls.ClassID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	su := &auth.SessionUser{ID: "student-1", Role: "student"}
	rec := do(t, f.router, "GET", "/", su, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var list []models.Enrollment
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("parse list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("enrollments: got %d, want 1", len(list))
	}
	if list[0].UserID != "student-1" {
		t.Errorf("user_id: got %q", list[0].UserID)
	}
}
