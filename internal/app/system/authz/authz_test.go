package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/domain/models"
)

func reqWithUser(id, role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return auth.WithTestUser(r, &auth.SessionUser{ID: id, Role: role})
}

func TestUserCtx_Anonymous(t *testing.T) {
	role, id, ok := UserCtx(httptest.NewRequest(http.MethodGet, "/", nil))
	if ok || id != "" || role != "visitor" {
		t.Errorf("anonymous: got role=%q id=%q ok=%v", role, id, ok)
	}
}

func TestRolePredicates(t *testing.T) {
	admin := reqWithUser("user_a", "admin")
	teacher := reqWithUser("user_t", "teacher")
	student := reqWithUser("user_s", "student")

	if !IsAdmin(admin) || IsAdmin(teacher) || IsAdmin(student) {
		t.Error("IsAdmin misclassified a role")
	}
	if !IsTeacher(teacher) || IsTeacher(admin) {
		t.Error("IsTeacher misclassified a role")
	}
	if !IsStudent(student) || IsStudent(teacher) {
		t.Error("IsStudent misclassified a role")
	}
	if !CanCreateClass(teacher) || !CanCreateClass(admin) || CanCreateClass(student) {
		t.Error("CanCreateClass misclassified a role")
	}
}

func TestCanManageClass(t *testing.T) {
	class := &models.Class{ClassID: "class_1", TeacherID: "user_t"}

	if !CanManageClass(reqWithUser("user_t", "teacher"), class) {
		t.Error("owning teacher should manage the class")
	}
	if CanManageClass(reqWithUser("user_other", "teacher"), class) {
		t.Error("a different teacher must not manage the class")
	}
	if !CanManageClass(reqWithUser("user_a", "admin"), class) {
		t.Error("admin should manage any class")
	}
	if CanManageClass(httptest.NewRequest(http.MethodGet, "/", nil), class) {
		t.Error("anonymous must not manage the class")
	}
}
