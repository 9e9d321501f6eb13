package database

import "time"

type User struct {
	Id           int64
	Email        string
	PasswordHash string
	Nickname     string
	Phone        string
	Bio          string
	Birthday     time.Time
	CreateTime   time.Time
}
