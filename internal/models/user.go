// Package models contains data structures for the application's domain models.
package models

import "time"

// DefaultProfilePicture is assigned to every newly created user.
const DefaultProfilePicture = "/uploads/profile_pictures/default.jpg"

// User represents an account in the social network.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName       string    `gorm:"size:100;not null" json:"full_name"`
	Bio            *string   `gorm:"type:text" json:"bio"`
	ProfilePicture *string   `gorm:"size:255" json:"profile_picture"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserWithFriends is a user profile with the public profiles of every friend embedded.
type UserWithFriends struct {
	User
	Friends []User `json:"friends"`
}
