package announcements_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/classhub/internal/app/features/announcements"
	announcementstore "github.com/dalemusser/classhub/internal/app/store/announcements"
	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/classhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type anncFixture struct {
	router  http.Handler
	classes *classstore.Store
	store   *announcementstore.Store
}

// setupAnnouncements mounts the subrouter the way the classes router does,
// so {classID} resolves.
func setupAnnouncements(t *testing.T) *anncFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)

	f := &anncFixture{
		classes: classstore.New(db),
		store:   announcementstore.New(db),
	}
	h := announcements.NewHandler(f.store, f.classes, zap.NewNop())

	root := chi.NewRouter()
	root.Mount("/{classID}/announcements", announcements.Routes(h))
	f.router = root
	return f
}

func (f *anncFixture) do(t *testing.T, method, target string, su *auth.SessionUser, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if su != nil {
		req = auth.WithTestUser(req, su)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreate_SanitizesContent(t *testing.T) {
	f := setupAnnouncements(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := f.classes.Create(ctx, models.Class{Title: "Lit", TeacherID: "teacher-1"})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}

	su := &auth.SessionUser{ID: "teacher-1", Role: "teacher"}
	rec := f.do(t, "POST", "/"+cls.ClassID+"/announcements", su,
		`{"title": "Exam", "content": "<p>Friday</p><script>alert(1)</script>"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var annc models.Announcement
	if err := json.Unmarshal(rec.Body.Bytes(), &annc); err != nil {
		t.Fatalf("parse announcement: %v", err)
	}
	if strings.Contains(annc.Content, "<script>") {
		t.Errorf("content not sanitized: %q", annc.Content)
	}
	if !strings.Contains(annc.Content, "<p>Friday</p>") {
		t.Errorf("benign markup stripped: %q", annc.Content)
	}
	if annc.CreatedBy != "teacher-1" {
		t.Errorf("created_by: got %q", annc.CreatedBy)
	}
}

func TestCreate_StudentForbidden(t *testing.T) {
	f := setupAnnouncements(t)

	su := &auth.SessionUser{ID: "student-1", Role: "student"}
	rec := f.do(t, "POST", "/some-class/announcements", su, `{"title": "Hi"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Only teachers and admins can post announcements") {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestCreate_ClassMustExist(t *testing.T) {
	f := setupAnnouncements(t)

	su := &auth.SessionUser{ID: "teacher-1", Role: "teacher"}
	rec := f.do(t, "POST", "/missing/announcements", su, `{"title": "Hi"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestListAndDelete(t *testing.T) {
	f := setupAnnouncements(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cls, err := f.classes.Create(ctx, models.Class{Title: "Sci", TeacherID: "teacher-1"})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	annc, err := f.store.Create(ctx, models.Announcement{
		ClassID: cls.ClassID, Title: "Lab", CreatedBy: "teacher-1",
	})
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}

	student := &auth.SessionUser{ID: "student-1", Role: "student"}
	rec := f.do(t, "GET", "/"+cls.ClassID+"/announcements", student, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var list []models.Announcement
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("parse list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("announcements: got %d, want 1", len(list))
	}

	teacher := &auth.SessionUser{ID: "teacher-1", Role: "teacher"}
	rec = f.do(t, "DELETE", "/"+cls.ClassID+"/announcements/"+annc.AnnouncementID, teacher, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: got %d, body %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, "DELETE", "/"+cls.ClassID+"/announcements/"+annc.AnnouncementID, teacher, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: got %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Announcement not found") {
		t.Errorf("body: %s", rec.Body.String())
	}
}
