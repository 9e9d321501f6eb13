package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
	"webook-smoke/internal/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap hashing keeps the tests fast
var testDatabaseConfig = &configs.DatabaseConfig{
	PasswordHash: configs.PasswordHashConfig{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	},
}

func TestInmemoryUsersInsertAndFind(t *testing.T) {
	ctx := context.Background()
	db := NewInmemoryUsers()

	u1, err := db.Insert(ctx, User{Email: "a@qq.com"})
	require.NoError(t, err)
	u2, err := db.Insert(ctx, User{Email: "b@qq.com"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), u1.Id)
	assert.Equal(t, int64(2), u2.Id)
	assert.False(t, u1.CreateTime.IsZero())

	found, err := db.FindByEmail(ctx, "b@qq.com")
	require.NoError(t, err)
	assert.Equal(t, u2.Id, found.Id)

	found, err = db.FindById(ctx, u1.Id)
	require.NoError(t, err)
	assert.Equal(t, "a@qq.com", found.Email)

	_, err = db.FindById(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = db.FindByEmail(ctx, "nobody@qq.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInmemoryUsersDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := NewInmemoryUsers()

	_, err := db.Insert(ctx, User{Email: "a@qq.com"})
	require.NoError(t, err)

	_, err = db.Insert(ctx, User{Email: "a@qq.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestInmemoryUsersConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	db := NewInmemoryUsers()

	var wg sync.WaitGroup
	var mtx sync.Mutex
	succeeded := 0

	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every email is contended by two goroutines
			_, err := db.Insert(ctx, User{Email: fmt.Sprintf("user%d@qq.com", i%25)})
			if err == nil {
				mtx.Lock()
				succeeded += 1
				mtx.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, succeeded)
}

func TestAccountsSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts(NewInmemoryUsers(), testDatabaseConfig)

	created, err := accounts.Signup(ctx, "173777777771@qq.com", "asjh123A&&")
	require.NoError(t, err)
	assert.NotEqual(t, "asjh123A&&", created.PasswordHash)

	_, err = accounts.Signup(ctx, "173777777771@qq.com", "other123A&&")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	logged, err := accounts.Login(ctx, "173777777771@qq.com", "asjh123A&&")
	require.NoError(t, err)
	assert.Equal(t, created.Id, logged.Id)

	_, err = accounts.Login(ctx, "173777777771@qq.com", "wrong123A&&")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.Login(ctx, "nobody@qq.com", "asjh123A&&")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	profile, err := accounts.Profile(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "173777777771@qq.com", profile.Email)
}

func TestInmemoryUsersUpdate(t *testing.T) {
	ctx := context.Background()
	db := NewInmemoryUsers()

	created, err := db.Insert(ctx, User{Email: "a@qq.com", PasswordHash: "hash"})
	require.NoError(t, err)

	birthday := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)
	err = db.Update(ctx, User{
		Id:           created.Id,
		Email:        "other@qq.com",
		PasswordHash: "other",
		Nickname:     "tom",
		Birthday:     birthday,
		Bio:          "hello",
	})
	require.NoError(t, err)

	found, err := db.FindById(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "tom", found.Nickname)
	assert.Equal(t, "hello", found.Bio)
	assert.True(t, birthday.Equal(found.Birthday))

	// only profile fields change
	assert.Equal(t, "a@qq.com", found.Email)
	assert.Equal(t, "hash", found.PasswordHash)

	byEmail, err := db.FindByEmail(ctx, "a@qq.com")
	require.NoError(t, err)
	assert.Equal(t, "tom", byEmail.Nickname)

	err = db.Update(ctx, User{Id: 42, Nickname: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccountsEdit(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts(NewInmemoryUsers(), testDatabaseConfig)

	created, err := accounts.Signup(ctx, "173777777771@qq.com", "asjh123A&&")
	require.NoError(t, err)

	birthday := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, accounts.Edit(ctx, created.Id, "smoke", birthday, "bio"))

	profile, err := accounts.Profile(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "smoke", profile.Nickname)
	assert.Equal(t, "bio", profile.Bio)
	assert.Equal(t, "2000-01-02", profile.Birthday.Format(time.DateOnly))

	// the password still works after an edit
	_, err = accounts.Login(ctx, "173777777771@qq.com", "asjh123A&&")
	assert.NoError(t, err)

	err = accounts.Edit(ctx, 42, "nobody", birthday, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
