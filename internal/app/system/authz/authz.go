// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), ID, and a found flag.
// ok=true means a valid, authenticated user is present in context.
func UserCtx(r *http.Request) (role string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", false
	}
	return strings.ToLower(user.Role), user.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsTeacher reports whether the current request's user is a teacher.
func IsTeacher(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "teacher"
}

// IsStudent reports whether the current request's user is a student.
func IsStudent(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "student"
}

// CanCreateClass reports whether the user may create classes or class
// records (videos, announcements, assignments, notes, attendance,
// progress): teachers and admins.
func CanCreateClass(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && (role == "teacher" || role == "admin")
}

// CanManageClass reports whether the user owns the class or is an admin.
// Used for delete, meet-link, and recording updates.
func CanManageClass(r *http.Request, class *models.Class) bool {
	role, userID, ok := UserCtx(r)
	if !ok {
		return false
	}
	return role == "admin" || class.TeacherID == userID
}
