package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"account-service/internal/data/entity"
	"account-service/internal/dto/request"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUsers(t *testing.T, repo *fakeUserRepo, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), &entity.User{
			Name:         fmt.Sprintf("User %d", i+1),
			DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			Email:        fmt.Sprintf("user%d@x.com", i+1),
			PasswordHash: "$2a$10$fakehash",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		})
		require.NoError(t, err)
	}
}

func TestGetProfile(t *testing.T) {
	users := newFakeUserRepo()
	seedUsers(t, users, 1)
	svc := NewUserService(users, zap.NewNop())

	profile, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "user1@x.com", profile.Email)
	require.Equal(t, "1990-01-01", profile.DateOfBirth)

	_, err = svc.GetProfile(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers(t *testing.T) {
	users := newFakeUserRepo()
	seedUsers(t, users, 25)
	svc := NewUserService(users, zap.NewNop())

	resp, err := svc.ListUsers(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 10)
	require.Equal(t, int64(25), resp.Pagination.Total)
	require.Equal(t, 3, resp.Pagination.TotalPages)
	require.Equal(t, int64(1), resp.Data[0].ID)

	// credential fields never leave the service
	raw, err := json.Marshal(resp.Data[0])
	require.NoError(t, err)
	require.NotContains(t, string(raw), "password")
	require.NotContains(t, string(raw), "fakehash")

	// last page is a partial window
	resp, err = svc.ListUsers(context.Background(), &request.PaginatedRequest{Page: 3, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 5)
	require.Equal(t, int64(21), resp.Data[0].ID)

	// zero-value request falls back to defaults
	resp, err = svc.ListUsers(context.Background(), &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 10)
	require.Equal(t, 1, resp.Pagination.Page)
}
