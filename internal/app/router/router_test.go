package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"user_backend/internal/app/di"
	"user_backend/internal/feature/user/transport/http/dto"
	"user_backend/internal/platform/db"
	"user_backend/internal/platform/password"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestServer builds the full router over an in-memory SQLite database.
// When withCache is true the repository is wrapped in a miniredis-backed cache.
func newTestServer(t *testing.T, withCache bool) *gin.Engine {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	var rdb *redis.Client
	if withCache {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}

	repo := di.NewUserRepository(rdb, gdb, 0)
	return NewRouter(di.NewUserHandler(repo, bcrypt.MinCost), sqlDB)
}

func call(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

var john = gin.H{"name": "John Doe", "email": "john@example.com", "password": "Password123!"}

func forEachBackend(t *testing.T, fn func(t *testing.T, r *gin.Engine)) {
	for _, tc := range []struct {
		name      string
		withCache bool
	}{{"database", false}, {"cached", true}} {
		t.Run(tc.name, func(t *testing.T) {
			fn(t, newTestServer(t, tc.withCache))
		})
	}
}

func TestUsers_CreateThenPreview(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *gin.Engine) {
		w := call(t, r, http.MethodPost, "/users/create", john)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Body.String())

		w = call(t, r, http.MethodGet, "/users/preview?email=john@example.com", nil)
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[dto.UserResponse](t, w)
		assert.NotEmpty(t, res.ID)
		require.NotNil(t, res.Name)
		require.NotNil(t, res.Email)
		assert.Equal(t, "John Doe", *res.Name)
		assert.Equal(t, "john@example.com", *res.Email)

		raw := "Password123!"
		ok, err := password.NewBcryptHasher(bcrypt.MinCost).Verify(&raw, &res.Password)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestUsers_CreateThenPreview_LongPassword(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *gin.Engine) {
		raw := "Aa1!" + strings.Repeat("a", 96)
		body := gin.H{"name": "Long Pass", "email": "long@example.com", "password": raw}

		w := call(t, r, http.MethodPost, "/users/create", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = call(t, r, http.MethodGet, "/users/preview?email=long@example.com", nil)
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[dto.UserResponse](t, w)
		ok, err := password.NewBcryptHasher(bcrypt.MinCost).Verify(&raw, &res.Password)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestUsers_DuplicateCreate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *gin.Engine) {
		require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/users/create", john).Code)

		w := call(t, r, http.MethodPost, "/users/create", john)

		assert.Equal(t, http.StatusConflict, w.Code)
		res := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, "Conflict", res.Error)
		assert.Equal(t, "User with email john@example.com already exists", res.Message)
	})
}

func TestUsers_UpdateBlankFieldsLeavesRecordUnchanged(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *gin.Engine) {
		require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/users/create", john).Code)
		before := decode[dto.UserResponse](t, call(t, r, http.MethodGet, "/users/preview?email=john@example.com", nil))

		w := call(t, r, http.MethodPut, "/users/update?email=john@example.com", gin.H{"name": "  ", "email": "", "password": "\t"})
		require.Equal(t, http.StatusOK, w.Code)

		after := decode[dto.UserResponse](t, call(t, r, http.MethodGet, "/users/preview?email=john@example.com", nil))
		assert.Equal(t, before, after)
	})
}

func TestUsers_UpdateChangesEmail(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *gin.Engine) {
		require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/users/create", john).Code)
		// 旧メールのキャッシュを温めておく
		require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/users/preview?email=john@example.com", nil).Code)

		w := call(t, r, http.MethodPut, "/users/update?email=john@example.com", gin.H{"name": "Johnny", "email": "johnny@example.com"})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, http.StatusNotFound, call(t, r, http.MethodGet, "/users/preview?email=john@example.com", nil).Code)
		res := decode[dto.UserResponse](t, call(t, r, http.MethodGet, "/users/preview?email=johnny@example.com", nil))
		assert.Equal(t, "Johnny", *res.Name)
	})
}

func TestUsers_UpdateOntoTakenEmail(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *gin.Engine) {
		require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/users/create", john).Code)
		jane := gin.H{"name": "Jane Smith", "email": "jane@example.com", "password": "Password123!"}
		require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/users/create", jane).Code)

		w := call(t, r, http.MethodPut, "/users/update?email=jane@example.com", gin.H{"email": "john@example.com"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUsers_DeleteThenPreview(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *gin.Engine) {
		require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/users/create", john).Code)
		require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/users/preview?email=john@example.com", nil).Code)

		w := call(t, r, http.MethodDelete, "/users/delete?email=john@example.com", nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = call(t, r, http.MethodGet, "/users/preview?email=john@example.com", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not Found", decode[dto.ErrorResponse](t, w).Error)
	})
}

func TestUsers_All(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *gin.Engine) {
		w := call(t, r, http.MethodGet, "/users/all", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/users/create", john).Code)
		jane := gin.H{"name": "Jane Smith", "email": "jane@example.com", "password": "Password123!"}
		require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/users/create", jane).Code)

		w = call(t, r, http.MethodGet, "/users/all", nil)
		require.Equal(t, http.StatusOK, w.Code)
		all := decode[[]dto.UserResponse](t, w)
		assert.Len(t, all, 2)
	})
}

func TestUsers_BadRequests(t *testing.T) {
	r := newTestServer(t, false)

	t.Run("delete without email", func(t *testing.T) {
		w := call(t, r, http.MethodDelete, "/users/delete", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[dto.ErrorResponse](t, w).Message, "Missing required parameter")
	})

	t.Run("preview with invalid email", func(t *testing.T) {
		w := call(t, r, http.MethodGet, "/users/preview?email=invalid-email", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		res := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, "Bad Request", res.Error)
		assert.Equal(t, "Invalid email format", res.Message)
		assert.Equal(t, "/users/preview", res.Path)
	})

	t.Run("create with invalid body", func(t *testing.T) {
		w := call(t, r, http.MethodPost, "/users/create", gin.H{"name": "J", "email": "invalid-email", "password": "weak"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		res := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, "Validation Failed", res.Error)
		assert.NotEmpty(t, res.Details)
	})

	t.Run("unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, call(t, r, http.MethodGet, "/users/none", nil).Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, call(t, r, http.MethodGet, "/users/create", nil).Code)
	})
}

func TestHealthz(t *testing.T) {
	r := newTestServer(t, false)

	w := call(t, r, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
