package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/repository"
)

func TestUserRepository_ListAndGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			_ = json.NewEncoder(w).Encode([]entity.User{{ID: "1", Email: "jane@example.com"}})
		case "/users/1":
			_ = json.NewEncoder(w).Encode(entity.User{ID: "1", Email: "jane@example.com"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	repo := NewUserRepository(server.URL, 5*time.Second)
	ctx := context.Background()

	users, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	user, err := repo.GetByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		_ = json.NewEncoder(w).Encode([]entity.User{{ID: "1", Email: "jane@example.com"}})
	}))
	defer server.Close()

	repo := NewUserRepository(server.URL, 5*time.Second)

	users, err := repo.FindByEmail(context.Background(), "jane@example.com")
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_ReplaceSendsFullRecord(t *testing.T) {
	var received entity.User
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(received)
	}))
	defer server.Close()

	repo := NewUserRepository(server.URL, 5*time.Second)

	user := &entity.User{
		ID:       "1",
		FullName: "Jane",
		Email:    "jane@example.com",
		PurchasedLines: []entity.PurchaseLine{
			{ProductID: "p1", ProductName: "Widget", Quantity: 2, Price: 10},
		},
	}
	saved, err := repo.Replace(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, "Jane", saved.FullName)
	// The backend overwrites the record, so the purchase history must ride
	// along on every replace.
	assert.Len(t, received.PurchasedLines, 1)
	assert.Equal(t, "p1", received.PurchasedLines[0].ProductID)
}

func TestProductRepository_CreateAndDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/cards":
			var p entity.Product
			_ = json.NewDecoder(r.Body).Decode(&p)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(p)
		case r.Method == http.MethodDelete && r.URL.Path == "/cards/p1":
			_, _ = w.Write([]byte("{}"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	repo := NewProductRepository(server.URL, 5*time.Second)
	ctx := context.Background()

	saved, err := repo.Create(ctx, &entity.Product{ID: "p1", Title: "Widget", Quantity: 5})
	assert.NoError(t, err)
	assert.Equal(t, "Widget", saved.Title)

	assert.NoError(t, repo.Delete(ctx, "p1"))
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrNotFound)
}

func TestClient_ServerErrorMapsToRequestFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repo := NewProductRepository(server.URL, 5*time.Second)

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, repository.ErrRequestFailed)
}

func TestClient_UnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	repo := NewProductRepository(server.URL, time.Second)

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, repository.ErrRequestFailed)
}
