package authapi_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/classhub/internal/app/features/authapi"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/indexes"
	"github.com/dalemusser/classhub/internal/app/system/token"
	"github.com/dalemusser/classhub/internal/testutil"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"go.uber.org/zap"
)

// newAuthRouter builds the /auth surface against a real test database, with
// session middleware applied the way BuildHandler applies it.
func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	issuer := token.New([]byte("test-secret"), 0)
	sm := auth.NewSessionManager(issuer, "", false, zap.NewNop())
	sm.SetUserFetcher(userstore.NewFetcher(db))

	h := authapi.NewHandler(userstore.New(db), sm, zap.NewNop())
	return sm.LoadSessionUser(authapi.Routes(h))
}

func TestRegister_CreatesStudent(t *testing.T) {
	router := newAuthRouter(t)

	apitest.New().
		Handler(router).
		Post("/register").
		JSON(`{"email": "Ana@Example.com", "name": "Ana", "password": "s3cret"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.email`, "ana@example.com")).
		Assert(jsonpath.Equal(`$.role`, "student")).
		Assert(jsonpath.Present(`$.user_id`)).
		Assert(jsonpath.NotPresent(`$.password`)).
		End()
}

func TestRegister_MissingFields(t *testing.T) {
	router := newAuthRouter(t)

	apitest.New().
		Handler(router).
		Post("/register").
		JSON(`{"email": "ana@example.com"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.detail`, "Email, name, and password are required")).
		End()
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newAuthRouter(t)

	body := `{"email": "dup@example.com", "name": "First", "password": "pw"}`
	apitest.New().Handler(router).Post("/register").JSON(body).
		Expect(t).Status(http.StatusOK).End()

	apitest.New().
		Handler(router).
		Post("/register").
		JSON(`{"email": "DUP@example.com", "name": "Second", "password": "pw"}`).
		Expect(t).
		Status(http.StatusConflict).
		Assert(jsonpath.Equal(`$.detail`, "Email already registered")).
		End()
}

func TestLogin_SetsCookieAndReturnsToken(t *testing.T) {
	router := newAuthRouter(t)

	apitest.New().Handler(router).Post("/register").
		JSON(`{"email": "bo@example.com", "name": "Bo", "password": "hunter2"}`).
		Expect(t).Status(http.StatusOK).End()

	apitest.New().
		Handler(router).
		Post("/login").
		JSON(`{"email": "bo@example.com", "password": "hunter2"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.token_type`, "bearer")).
		Assert(jsonpath.Present(`$.access_token`)).
		Assert(jsonpath.Equal(`$.user.email`, "bo@example.com")).
		CookiePresent(auth.CookieName).
		End()
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newAuthRouter(t)

	apitest.New().Handler(router).Post("/register").
		JSON(`{"email": "cy@example.com", "name": "Cy", "password": "right"}`).
		Expect(t).Status(http.StatusOK).End()

	// Wrong password and unknown email produce the same response.
	apitest.New().
		Handler(router).
		Post("/login").
		JSON(`{"email": "cy@example.com", "password": "wrong"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.detail`, "Invalid credentials")).
		End()

	apitest.New().
		Handler(router).
		Post("/login").
		JSON(`{"email": "nobody@example.com", "password": "right"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.detail`, "Invalid credentials")).
		End()
}

func TestMe_RequiresSession(t *testing.T) {
	router := newAuthRouter(t)

	apitest.New().
		Handler(router).
		Get("/me").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.detail`, "Not authenticated")).
		End()
}

func TestMe_WithBearerToken(t *testing.T) {
	router := newAuthRouter(t)

	apitest.New().Handler(router).Post("/register").
		JSON(`{"email": "di@example.com", "name": "Di", "password": "pw"}`).
		Expect(t).Status(http.StatusOK).End()

	result := apitest.New().Handler(router).Post("/login").
		JSON(`{"email": "di@example.com", "password": "pw"}`).
		Expect(t).Status(http.StatusOK).End()

	var login struct {
		AccessToken string `json:"access_token"`
	}
	result.JSON(&login)
	if login.AccessToken == "" {
		t.Fatal("login returned no access token")
	}

	apitest.New().
		Handler(router).
		Get("/me").
		Header("Authorization", "Bearer "+login.AccessToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.email`, "di@example.com")).
		End()
}

func TestLogout_ClearsCookie(t *testing.T) {
	router := newAuthRouter(t)

	// Logout never requires a session; logging out twice is fine.
	apitest.New().
		Handler(router).
		Post("/logout").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.message`, "Logged out successfully")).
		End()
}
