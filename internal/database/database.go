package database

import "context"

// Users is the account store behind the users API.
type Users interface {
	// Insert assigns the id and create time. Emails are unique.
	Insert(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindById(ctx context.Context, id int64) (User, error)
	// Update overwrites the profile fields (nickname, birthday, bio) of the
	// user with the same id. Email and password stay as they are.
	Update(ctx context.Context, user User) error
}
