package account

import (
	"time"

	"philcali.me/movies/internal/data"
)

type User struct {
	Username    string    `json:"username"`
	Email       *string   `json:"email"`
	DisplayName *string   `json:"displayName"`
	CreateTime  time.Time `json:"createTime"`
	UpdateTime  time.Time `json:"updateTime"`
}

// Account mirrors the signed in identity; User is only present once registered.
type Account struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Registered bool   `json:"registered"`
	User       *User  `json:"user,omitempty"`
}

type AccountInput struct {
	DisplayName *string `json:"displayName"`
}

type ListStats struct {
	ListId    string `json:"listId"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	Movies    int    `json:"movies"`
}

type Stats struct {
	Lists  int         `json:"lists"`
	Movies int         `json:"movies"`
	Items  []ListStats `json:"items"`
}

func NewUser(user data.UserDTO) User {
	return User{
		Username:    user.SK,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreateTime:  user.CreateTime,
		UpdateTime:  user.UpdateTime,
	}
}
