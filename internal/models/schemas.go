package models

import (
	"zephyr/internal/validation"
)

// UserCreate is the request body for creating a user. ProfilePicture is
// accepted for compatibility but the stored value is always the default.
type UserCreate struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

// Validate checks required fields, lengths and email syntax.
func (in UserCreate) Validate() error {
	errs := []error{
		validation.ValidateRequired("username", in.Username),
		validation.ValidateMaxLength("username", in.Username, validation.MaxUsernameLength),
	}
	if err := validation.ValidateRequired("email", in.Email); err != nil {
		errs = append(errs, err)
	} else {
		errs = append(errs, validation.ValidateEmail(in.Email))
	}
	errs = append(errs,
		validation.ValidateRequired("full_name", in.FullName),
		validation.ValidateMaxLength("full_name", in.FullName, validation.MaxFullNameLength),
	)
	if in.ProfilePicture != nil {
		errs = append(errs, validation.ValidateMaxLength("profile_picture", *in.ProfilePicture, validation.MaxURLLength))
	}
	return asValidationError(validation.Collect(errs...))
}

// ToUser builds the entity to persist.
func (in UserCreate) ToUser() *User {
	picture := DefaultProfilePicture
	return &User{
		Username:       in.Username,
		Email:          in.Email,
		FullName:       in.FullName,
		Bio:            in.Bio,
		ProfilePicture: &picture,
	}
}

// UserUpdate is a partial update; nil fields are left unchanged. An explicit
// JSON null decodes to nil and is therefore treated like an absent field.
type UserUpdate struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	FullName       *string `json:"full_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

// Validate checks the fields that are present.
func (in UserUpdate) Validate() error {
	var errs []error
	if in.Username != nil {
		errs = append(errs,
			validation.ValidateRequired("username", *in.Username),
			validation.ValidateMaxLength("username", *in.Username, validation.MaxUsernameLength),
		)
	}
	if in.Email != nil {
		if err := validation.ValidateRequired("email", *in.Email); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, validation.ValidateEmail(*in.Email))
		}
	}
	if in.FullName != nil {
		errs = append(errs,
			validation.ValidateRequired("full_name", *in.FullName),
			validation.ValidateMaxLength("full_name", *in.FullName, validation.MaxFullNameLength),
		)
	}
	if in.ProfilePicture != nil {
		errs = append(errs, validation.ValidateMaxLength("profile_picture", *in.ProfilePicture, validation.MaxURLLength))
	}
	return asValidationError(validation.Collect(errs...))
}

// ApplyTo copies every present field onto u.
func (in UserUpdate) ApplyTo(u *User) {
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Bio != nil {
		bio := *in.Bio
		u.Bio = &bio
	}
	if in.ProfilePicture != nil {
		picture := *in.ProfilePicture
		u.ProfilePicture = &picture
	}
}

// PostCreate is the request body for creating a post.
type PostCreate struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
	UserID   uint    `json:"user_id"`
}

// Validate checks required fields and lengths.
func (in PostCreate) Validate() error {
	errs := []error{
		validation.ValidateRequired("content", in.Content),
		validation.ValidateID("user_id", in.UserID),
	}
	if in.ImageURL != nil {
		errs = append(errs, validation.ValidateMaxLength("image_url", *in.ImageURL, validation.MaxURLLength))
	}
	return asValidationError(validation.Collect(errs...))
}

// PostUpdate is a partial update; nil fields are left unchanged.
type PostUpdate struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

// Validate checks the fields that are present.
func (in PostUpdate) Validate() error {
	var errs []error
	if in.Content != nil {
		errs = append(errs, validation.ValidateRequired("content", *in.Content))
	}
	if in.ImageURL != nil {
		errs = append(errs, validation.ValidateMaxLength("image_url", *in.ImageURL, validation.MaxURLLength))
	}
	return asValidationError(validation.Collect(errs...))
}

// ApplyTo copies every present field onto p.
func (in PostUpdate) ApplyTo(p *Post) {
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.ImageURL != nil {
		url := *in.ImageURL
		p.ImageURL = &url
	}
}

// CommentCreate is the request body for creating a comment.
type CommentCreate struct {
	Content string `json:"content"`
	UserID  uint   `json:"user_id"`
	PostID  uint   `json:"post_id"`
}

// Validate checks required fields.
func (in CommentCreate) Validate() error {
	return asValidationError(validation.Collect(
		validation.ValidateRequired("content", in.Content),
		validation.ValidateID("user_id", in.UserID),
		validation.ValidateID("post_id", in.PostID),
	))
}

// FriendRequest is the request body for adding or removing a friendship.
type FriendRequest struct {
	UserID   uint `json:"user_id"`
	FriendID uint `json:"friend_id"`
}

// Validate checks both ids are present and distinct.
func (in FriendRequest) Validate() error {
	if err := validation.Collect(
		validation.ValidateID("user_id", in.UserID),
		validation.ValidateID("friend_id", in.FriendID),
	); err != nil {
		return asValidationError(err)
	}
	if in.UserID == in.FriendID {
		return NewValidationError("Users cannot befriend themselves")
	}
	return nil
}

// FeedResponse wraps a window of feed posts.
type FeedResponse struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count"`
}

// UserSearchResponse wraps user search results.
type UserSearchResponse struct {
	Results []User `json:"results"`
	Count   int    `json:"count"`
}

// PostSearchResponse wraps post search results.
type PostSearchResponse struct {
	Results []Post `json:"results"`
	Count   int    `json:"count"`
}

// SearchResults holds combined search output. Only the categories that were
// searched are non-nil, so an empty category still serializes as [].
type SearchResults struct {
	Users *[]User `json:"users,omitempty"`
	Posts *[]Post `json:"posts,omitempty"`
}

// UploadResponse is returned after a file is stored.
type UploadResponse struct {
	Filename string `json:"filename"`
	FileURL  string `json:"file_url"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	return NewValidationError(err.Error())
}
