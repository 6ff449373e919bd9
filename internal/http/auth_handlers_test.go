package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/GungunSharma0502/Expense-tracker/internal/auth"
	"github.com/GungunSharma0502/Expense-tracker/internal/user"
)

var testSecret = []byte("test-secret")

type fakeUserStore struct {
	users map[string]*user.User // keyed by id
	next  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*user.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	f.next++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", f.next)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func newAuthApp(store *fakeUserStore) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	h := NewAuthHandler(store, testSecret, 24*time.Hour, false)
	app.Post("/signup", h.Signup)
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)

	protected := app.Group("", auth.Middleware(testSecret, store))
	protected.Get("/profile", h.Profile)
	protected.Get("/check-auth", h.CheckAuth)
	return app
}

func doPost(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}, []string) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded, resp.Header.Values("Set-Cookie")
}

func signupPayload() map[string]interface{} {
	return map[string]interface{}{
		"firstName": "Ann",
		"emailId":   "a@x.com",
		"password":  "Str0ng!Pass",
	}
}

func sessionCookie(cookies []string) string {
	for _, c := range cookies {
		if strings.HasPrefix(c, auth.CookieName+"=") {
			return c
		}
	}
	return ""
}

func TestSignupCreatesUserAndSession(t *testing.T) {
	app := newAuthApp(newFakeUserStore())

	status, body, cookies := doPost(t, app, "/signup", signupPayload())
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %v)", status, body)
	}

	cookie := sessionCookie(cookies)
	if cookie == "" {
		t.Fatal("session cookie not set")
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Errorf("cookie %q missing HttpOnly", cookie)
	}

	data := body["data"].(map[string]interface{})
	if data["emailId"] != "a@x.com" {
		t.Errorf("emailId = %v, want a@x.com", data["emailId"])
	}
	for _, forbidden := range []string{"password", "passwordHash", "password_hash"} {
		if _, ok := data[forbidden]; ok {
			t.Errorf("response leaks %q", forbidden)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := newAuthApp(newFakeUserStore())

	if status, _, _ := doPost(t, app, "/signup", signupPayload()); status != fiber.StatusCreated {
		t.Fatalf("first signup status = %d, want 201", status)
	}

	status, body, _ := doPost(t, app, "/signup", signupPayload())
	if status != fiber.StatusBadRequest {
		t.Fatalf("second signup status = %d, want 400", status)
	}
	if body["error"] != "User with this email already exists" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"short first name", func(p map[string]interface{}) { p["firstName"] = "Al" }},
		{"bad email", func(p map[string]interface{}) { p["emailId"] = "nope" }},
		{"weak password", func(p map[string]interface{}) { p["password"] = "password" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthApp(newFakeUserStore())
			payload := signupPayload()
			tt.mutate(payload)

			status, _, _ := doPost(t, app, "/signup", payload)
			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	app := newAuthApp(store)
	doPost(t, app, "/signup", signupPayload())

	status, body, _ := doPost(t, app, "/login", map[string]interface{}{
		"emailId":  "a@x.com",
		"password": "Wr0ng!Pass",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if body["error"] != "Invalid email or password" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	app := newAuthApp(newFakeUserStore())

	status, body, _ := doPost(t, app, "/login", map[string]interface{}{
		"emailId":  "nobody@x.com",
		"password": "Str0ng!Pass",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if body["error"] != "Invalid email or password" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestLoginThenProfile(t *testing.T) {
	store := newFakeUserStore()
	app := newAuthApp(store)
	doPost(t, app, "/signup", signupPayload())

	status, _, cookies := doPost(t, app, "/login", map[string]interface{}{
		"emailId":  "a@x.com",
		"password": "Str0ng!Pass",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}
	cookie := sessionCookie(cookies)
	if cookie == "" {
		t.Fatal("session cookie not set on login")
	}

	req := httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Cookie", strings.SplitN(cookie, ";", 2)[0])
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("profile status = %d, want 200", resp.StatusCode)
	}

	var body map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	data := body["data"].(map[string]interface{})
	if data["firstName"] != "Ann" {
		t.Errorf("firstName = %v, want Ann", data["firstName"])
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newAuthApp(newFakeUserStore())

	status, _, cookies := doPost(t, app, "/logout", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	cookie := sessionCookie(cookies)
	if cookie == "" {
		t.Fatal("logout did not touch the session cookie")
	}
	pair := strings.SplitN(strings.SplitN(cookie, ";", 2)[0], "=", 2)
	if len(pair) == 2 && pair[1] != "" {
		t.Errorf("cookie value = %q, want empty", pair[1])
	}
}

func TestCheckAuthWithoutSession(t *testing.T) {
	app := newAuthApp(newFakeUserStore())

	resp, err := app.Test(httptest.NewRequest("GET", "/check-auth", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}
