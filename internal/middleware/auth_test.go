package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessmate/chess-server-go/internal/model"
)

type mockVerifier struct {
	verifyFunc func(tokenString string) (string, error)
}

func (m *mockVerifier) VerifyAccessToken(tokenString string) (string, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(tokenString)
	}
	return "", errors.New("invalid token")
}

type mockUserFinder struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserFinder) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserFinder) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserFinder) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserFinder) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	return nil, nil
}

func (m *mockUserFinder) Update(ctx context.Context, id string, params model.UpdateUserParams) (*model.User, error) {
	return nil, nil
}

func (m *mockUserFinder) UpdateStatus(ctx context.Context, id string, status string) error {
	return nil
}

func (m *mockUserFinder) Search(ctx context.Context, term string, excludeUserID string, limit int) ([]model.UserSummary, error) {
	return nil, nil
}

func TestAuthMiddleware(t *testing.T) {
	testUser := &model.User{ID: "u1", Username: "alice", IsActive: true}

	verifierFor := func(userID string) *mockVerifier {
		return &mockVerifier{verifyFunc: func(tokenString string) (string, error) {
			if tokenString == "valid-token" {
				return userID, nil
			}
			return "", errors.New("invalid token")
		}}
	}

	t.Run("allows request with valid token", func(t *testing.T) {
		users := &mockUserFinder{findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			if id == "u1" {
				return testUser, nil
			}
			return nil, nil
		}}

		mw := NewAuthMiddleware(verifierFor("u1"), users)
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r.Context())
			require.NotNil(t, user)
			assert.Equal(t, "u1", user.ID)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects request without token", func(t *testing.T) {
		mw := NewAuthMiddleware(&mockVerifier{}, &mockUserFinder{})
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/test", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		mw := NewAuthMiddleware(verifierFor("u1"), &mockUserFinder{})
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects token for deleted user", func(t *testing.T) {
		mw := NewAuthMiddleware(verifierFor("gone"), &mockUserFinder{})
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects deactivated user", func(t *testing.T) {
		inactive := &model.User{ID: "u1", IsActive: false}
		users := &mockUserFinder{findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return inactive, nil
		}}

		mw := NewAuthMiddleware(verifierFor("u1"), users)
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		users := &mockUserFinder{findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, errors.New("database error")
		}}

		mw := NewAuthMiddleware(verifierFor("u1"), users)
		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("returns user from context", func(t *testing.T) {
		user := &model.User{ID: "test-id"}
		ctx := context.WithValue(context.Background(), UserContextKey, user)

		result := GetUser(ctx)

		require.NotNil(t, result)
		assert.Equal(t, "test-id", result.ID)
	})

	t.Run("returns nil when no user in context", func(t *testing.T) {
		result := GetUser(context.Background())
		assert.Nil(t, result)
	})
}
