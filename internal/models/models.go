package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
)

/** -------------------- ENTITIES -------------------- */

// User represents an account in the language-exchange app.
type User struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	FullName         string    `gorm:"not null" json:"fullName"`
	Email            string    `gorm:"unique;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"`
	Bio              string    `gorm:"default:''" json:"bio"`
	ProfilePic       string    `gorm:"default:''" json:"profilePic"`
	NativeLanguage   string    `gorm:"default:''" json:"nativeLanguage"`
	LearningLanguage string    `gorm:"default:''" json:"learningLanguage"`
	Location         string    `gorm:"default:''" json:"location"`
	IsOnboarded      bool      `gorm:"default:false" json:"isOnboarded"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// FriendRequest tracks a directional proposal between two users. Status only
// moves pending -> accepted; there is no reject or cancel transition.
type FriendRequest struct {
	ID          string              `gorm:"primaryKey;type:uuid" json:"id"`
	SenderID    string              `gorm:"not null;index" json:"sender"`
	RecipientID string              `gorm:"not null;index" json:"recipient"`
	Status      FriendRequestStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// Friendship is one directional edge of the mutual friends relation. Accepting
// a request inserts both directions; the composite unique index gives the pair
// set semantics, so replaying an accept never duplicates an edge.
type Friendship struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_user_friend" json:"userId"`
	FriendID  string    `gorm:"not null;uniqueIndex:idx_user_friend" json:"friendId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

/** -------------------- DTOs -------------------- */

// Request
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OnboardRequest struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profilePic"`
}

// Response
// Profile is the public projection of a user joined into friend and
// friend-request listings.
type Profile struct {
	ID               string `json:"id"`
	FullName         string `json:"fullName"`
	ProfilePic       string `json:"profilePic"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
}

// FriendRequestResponse is a request joined with the counterpart's profile.
type FriendRequestResponse struct {
	ID        string              `json:"id"`
	Sender    Profile             `json:"sender"`
	Recipient Profile             `json:"recipient"`
	Status    FriendRequestStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

// PublicProfile clears fields that must never leave the server.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:               u.ID,
		FullName:         u.FullName,
		ProfilePic:       u.ProfilePic,
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
	}
}
