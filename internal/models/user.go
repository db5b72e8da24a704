package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is one account document. The password hash and the session
// token list never leave the service in JSON form.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Age          *int               `bson:"age,omitempty" json:"age,omitempty"`
	Tokens       []string           `bson:"tokens" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Profile is the projection returned by GET /users/me.
type Profile struct {
	Name  string `json:"name"`
	Age   *int   `json:"age,omitempty"`
	Email string `json:"email"`
}

func (u *User) Profile() Profile {
	return Profile{Name: u.Name, Age: u.Age, Email: u.Email}
}

// HasToken reports whether token is still a live session for u.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}
