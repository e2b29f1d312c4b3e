package videos_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/classhub/internal/app/features/videos"
	videostore "github.com/dalemusser/classhub/internal/app/store/videos"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/testutil"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"go.uber.org/zap"
)

// newVideoRouter builds the /videos surface with su already resolved, the
// way WithTestUser-based tests bypass the cookie path.
func newVideoRouter(t *testing.T, su *auth.SessionUser) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	h := videos.NewHandler(videostore.New(db), zap.NewNop())
	routes := videos.Routes(h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routes.ServeHTTP(w, auth.WithTestUser(r, su))
	})
}

func TestCreate_TeacherUploads(t *testing.T) {
	teacher := &auth.SessionUser{ID: "user_t1aaaa111111", Role: "teacher"}
	router := newVideoRouter(t, teacher)

	apitest.New().
		Handler(router).
		Post("/").
		JSON(`{"class_id": "class_a1aaaa1111", "title": "Week 1", "video_url": "https://cdn.example.com/w1.mp4"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present(`$.video_id`)).
		Assert(jsonpath.Equal(`$.class_id`, "class_a1aaaa1111")).
		Assert(jsonpath.Equal(`$.title`, "Week 1")).
		Assert(jsonpath.Equal(`$.uploaded_by`, teacher.ID)).
		End()
}

func TestCreate_StudentForbidden(t *testing.T) {
	student := &auth.SessionUser{ID: "user_s1bbbb111111", Role: "student"}
	router := newVideoRouter(t, student)

	apitest.New().
		Handler(router).
		Post("/").
		JSON(`{"class_id": "class_a1aaaa1111", "title": "Week 1"}`).
		Expect(t).
		Status(http.StatusForbidden).
		Assert(jsonpath.Equal(`$.detail`, "Only teachers and admins can upload videos")).
		End()
}

func TestCreate_MissingFields(t *testing.T) {
	teacher := &auth.SessionUser{ID: "user_t1aaaa111111", Role: "teacher"}
	router := newVideoRouter(t, teacher)

	apitest.New().
		Handler(router).
		Post("/").
		JSON(`{"class_id": "class_a1aaaa1111"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.detail`, "class_id and title are required")).
		End()
}

func TestList_FilterByClass(t *testing.T) {
	teacher := &auth.SessionUser{ID: "user_t1aaaa111111", Role: "teacher"}
	router := newVideoRouter(t, teacher)

	apitest.New().Handler(router).Post("/").
		JSON(`{"class_id": "class_a1aaaa1111", "title": "Algebra intro"}`).
		Expect(t).Status(http.StatusOK).End()
	apitest.New().Handler(router).Post("/").
		JSON(`{"class_id": "class_b2bbbb2222", "title": "Biology intro"}`).
		Expect(t).Status(http.StatusOK).End()

	apitest.New().
		Handler(router).
		Get("/").
		Query("class_id", "class_a1aaaa1111").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		Assert(jsonpath.Equal(`$[0].title`, "Algebra intro")).
		End()

	// No filter returns everything.
	apitest.New().
		Handler(router).
		Get("/").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 2)).
		End()
}
