package repo

import (
	"EvidenceKeeper/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newOfficer(username string) *model.User {
	return &model.User{
		Username:  username,
		Email:     username + "@ps.local",
		Password:  "hash",
		FirstName: "Ravi",
		LastName:  "Kumar",
		Rank:      "SI",
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	// успешное создание
	u, err := r.CreateUser(ctx, newOfficer("john"))
	assert.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, model.RoleOfficer, u.Role)

	// поиск по username и по email
	got, err := r.GetUserByLogin(ctx, "john")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = r.GetUserByLogin(ctx, "john@ps.local")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// уникальный логин — вторая вставка должна дать ErrDuplicate
	_, err = r.CreateUser(ctx, newOfficer("john"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))

	// поиск несуществующего — ожидаем gorm.ErrRecordNotFound
	got, err = r.GetUserByLogin(ctx, "doesnotexist")
	assert.Nil(t, got)
	assert.Error(t, err)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
	assert.True(t, IsNotFound(err))
}

func TestUserRepository_UpdateProfileAndCountCases(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	u, err := r.CreateUser(ctx, newOfficer("asha"))
	assert.NoError(t, err)

	upd, err := r.UpdateProfile(ctx, u.ID, map[string]any{"rank": "Inspector", "first_name": "Asha"})
	assert.NoError(t, err)
	assert.Equal(t, "Inspector", upd.Rank)
	assert.Equal(t, "Asha Kumar", upd.FullName())

	_, err = r.UpdateProfile(ctx, 9999, map[string]any{"rank": "x"})
	assert.True(t, IsNotFound(err))

	cases := NewCaseRepository(db)
	assert.NoError(t, cases.CreateWithProperties(ctx, newCase(u.ID, 2026)))

	n, err := r.CountCases(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
