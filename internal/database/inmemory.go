package database

import (
	"context"
	"sync"
	"time"
	"webook-smoke/internal/util"
)

type inmemoryUsers struct {
	mutex   sync.RWMutex
	lastId  int64
	byId    map[int64]User
	byEmail map[string]int64
}

func NewInmemoryUsers() Users {
	return &inmemoryUsers{
		byId:    make(map[int64]User),
		byEmail: make(map[string]int64),
	}
}

func (db *inmemoryUsers) Insert(ctx context.Context, user User) (User, error) {
	return util.WithWriteLock(&db.mutex, func() (User, error) {
		if _, ok := db.byEmail[user.Email]; ok {
			return User{}, ErrDuplicateEmail
		}

		db.lastId += 1
		user.Id = db.lastId
		user.CreateTime = time.Now()

		db.byId[user.Id] = user
		db.byEmail[user.Email] = user.Id
		return user, nil
	})
}

func (db *inmemoryUsers) FindByEmail(ctx context.Context, email string) (User, error) {
	return util.WithReadLock(&db.mutex, func() (User, error) {
		id, ok := db.byEmail[email]
		if !ok {
			return User{}, ErrUserNotFound
		}
		return db.byId[id], nil
	})
}

func (db *inmemoryUsers) FindById(ctx context.Context, id int64) (User, error) {
	return util.WithReadLock(&db.mutex, func() (User, error) {
		user, ok := db.byId[id]
		if !ok {
			return User{}, ErrUserNotFound
		}
		return user, nil
	})
}

func (db *inmemoryUsers) Update(ctx context.Context, user User) error {
	_, err := util.WithWriteLock(&db.mutex, func() (struct{}, error) {
		stored, ok := db.byId[user.Id]
		if !ok {
			return struct{}{}, ErrUserNotFound
		}

		stored.Nickname = user.Nickname
		stored.Birthday = user.Birthday
		stored.Bio = user.Bio
		db.byId[user.Id] = stored
		return struct{}{}, nil
	})
	return err
}
