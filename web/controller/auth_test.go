package controller

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"blog/database"
	"blog/logger"
	"blog/web/entity"
	"blog/web/service"
	"blog/web/session"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

// TestMain initializes the package-level logger that service code logs
// through; without it logger calls panic on a nil logger.
func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("BLOG_DEBUG", "true")

	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.InitDB(dbPath); err != nil {
		t.Fatalf("init test db: %v", err)
	}
	t.Cleanup(func() {
		db, _ := database.GetDB().DB()
		db.Close()
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api")
	authService := service.NewAuthService(&service.DBSessionStore{})
	NewAuthController(api, authService)
	NewUserController(api, authService)
	NewPostController(api, authService)
	NewCommentController(api, authService)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, entity.Msg) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var msg entity.Msg
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, msg
}

func TestLoginLogoutFlow(t *testing.T) {
	engine := setupRouter(t)

	w, msg := doJSON(t, engine, http.MethodPost, "/api/users",
		`{"userid":"alice","nickname":"Alice","password":"Secret123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, msg.Success)

	w, msg = doJSON(t, engine, http.MethodPost, "/api/login",
		`{"username":"alice","password":"Secret123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, msg.Success)

	obj, ok := msg.Obj.(map[string]any)
	assert.True(t, ok)
	token, _ := obj["token"].(string)
	assert.NotEmpty(t, token)

	// The token also travels as the session cookie.
	cookies := w.Result().Cookies()
	var cookieToken string
	for _, ck := range cookies {
		if ck.Name == session.CookieName {
			cookieToken = ck.Value
			assert.True(t, ck.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
		}
	}
	assert.Equal(t, token, cookieToken)

	w, msg = doJSON(t, engine, http.MethodGet, "/api/me", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	user, ok := msg.Obj.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "alice", user["userid"])
	assert.Equal(t, "MEMBER", user["role"])

	w, _ = doJSON(t, engine, http.MethodPost, "/api/login",
		`{"username":"alice","password":"WrongPass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/logout", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/logout", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/me", "", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A broken store must never leak driver detail to the client.
func TestStorageFailureIsOpaque(t *testing.T) {
	engine := setupRouter(t)

	w, _ := doJSON(t, engine, http.MethodPost, "/api/users",
		`{"userid":"alice","nickname":"Alice","password":"Secret123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	db, err := database.GetDB().DB()
	assert.NoError(t, err)
	db.Close()

	w, msg := doJSON(t, engine, http.MethodGet, "/api/users/alice", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, msg.Success)
	assert.Equal(t, "internal error", msg.Msg)

	w, msg = doJSON(t, engine, http.MethodPost, "/api/login",
		`{"username":"alice","password":"Secret123"}`, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", msg.Msg)
}

func TestMutationsAreGuarded(t *testing.T) {
	engine := setupRouter(t)

	for _, userid := range []string{"alice", "bob"} {
		w, _ := doJSON(t, engine, http.MethodPost, "/api/users",
			`{"userid":"`+userid+`","nickname":"`+userid+`-nick","password":"Secret123"}`, "")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	_, msg := doJSON(t, engine, http.MethodPost, "/api/login",
		`{"username":"alice","password":"Secret123"}`, "")
	aliceToken := msg.Obj.(map[string]any)["token"].(string)
	_, msg = doJSON(t, engine, http.MethodPost, "/api/login",
		`{"username":"bob","password":"Secret123"}`, "")
	bobToken := msg.Obj.(map[string]any)["token"].(string)

	// Anonymous create is rejected.
	w, _ := doJSON(t, engine, http.MethodPost, "/api/posts",
		`{"title":"hello","content":"first"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, msg = doJSON(t, engine, http.MethodPost, "/api/posts",
		`{"title":"hello","content":"first"}`, aliceToken)
	assert.Equal(t, http.StatusOK, w.Code)
	postId := int(msg.Obj.(map[string]any)["id"].(float64))

	// Bob owns neither the post nor Alice's profile.
	w, _ = doJSON(t, engine, http.MethodDelete, "/api/posts/"+strconv.Itoa(postId), "", bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, engine, http.MethodDelete, "/api/users/alice", "", bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner may delete; a second delete finds nothing.
	w, _ = doJSON(t, engine, http.MethodDelete, "/api/posts/"+strconv.Itoa(postId), "", aliceToken)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, engine, http.MethodDelete, "/api/posts/"+strconv.Itoa(postId), "", aliceToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
