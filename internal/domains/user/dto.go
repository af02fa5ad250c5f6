package user

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 30),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("must be a valid email"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 72),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Length(3, 30)),
		validation.Field(&r.Email, is.Email),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword,
			validation.Required,
			validation.Length(8, 72),
		),
	)
}

// AddListItemRequest adds a book snapshot to the wishlist or reading
// list.
type AddListItemRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author"`
	Cover  string `json:"cover"`
}

func (r AddListItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
	)
}

type UpdateProgressRequest struct {
	Progress int `json:"progress"`
}

func (r UpdateProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Progress, validation.Min(0), validation.Max(100)),
	)
}

// AuthResult carries the token pair issued on register/login/refresh.
type AuthResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Profile aggregates everything the profile page renders.
type Profile struct {
	User          *User             `json:"user"`
	Wishlist      []WishlistItem    `json:"wishlist"`
	ReadingList   []ReadingListItem `json:"readingList"`
	BorrowHistory interface{}       `json:"borrowHistory"`
}
