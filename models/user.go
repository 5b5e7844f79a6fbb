package models

import "time"

// User holds the profile and onboarding attributes of an account. Sex and
// Age stay empty until onboarding completes; both are mandatory before the
// user may apply to a post.
type User struct {
	UserID       string   `json:"userId" dynamodbav:"userId"`
	Nickname     string   `json:"nickname" dynamodbav:"nickname"`
	Sex          Sex      `json:"sex,omitempty" dynamodbav:"sex,omitempty"`
	Age          AgeRange `json:"age,omitempty" dynamodbav:"age,omitempty"`
	FavoriteTeam Team     `json:"favoriteTeam,omitempty" dynamodbav:"favoriteTeam,omitempty"`
	Introduce    string   `json:"introduce,omitempty" dynamodbav:"introduce,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty" dynamodbav:"profileImage,omitempty"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// UsersTable is the DynamoDB table name for user profiles.
const UsersTable = "Users"

// Onboarded reports whether the matching dimensions are set.
func (u *User) Onboarded() bool {
	return u.Sex != "" && u.Age != ""
}
