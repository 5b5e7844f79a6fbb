package services

import (
	"context"
	"fmt"
	"time"

	"ballmate_server/errs"
	"ballmate_server/models"
	"ballmate_server/repositories"
)

// UserService owns onboarding and profile reads. Sex and age-range are
// optional search filters but mandatory applicant attributes, so
// onboarding is where a user becomes eligible to apply.
type UserService struct {
	Users repositories.UserRepository
	Now   func() time.Time
}

// NewUserService wires the service over the user store.
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{Users: users, Now: time.Now}
}

// OnboardingInput is the caller-supplied onboarding body.
type OnboardingInput struct {
	Nickname     string `json:"nickname"`
	Sex          string `json:"sex"`
	Age          string `json:"age"`
	FavoriteTeam string `json:"favoriteTeam"`
	Introduce    string `json:"introduce"`
	ProfileImage string `json:"profileImage"`
}

// SaveOnboarding creates or updates the user's profile attributes.
func (s *UserService) SaveOnboarding(ctx context.Context, userID string, input OnboardingInput) (*models.User, error) {
	if input.Nickname == "" {
		return nil, errs.Validation("nickname is required")
	}

	sex, err := models.ParseSex(input.Sex)
	if err != nil {
		return nil, errs.Validation(err.Error())
	}
	age, err := models.ParseAgeRange(input.Age)
	if err != nil {
		return nil, errs.Validation(err.Error())
	}
	if age == models.AgeAny {
		return nil, errs.Validation("age range must be a specific decade")
	}

	var team models.Team
	if input.FavoriteTeam != "" {
		if team, err = models.ParseTeam(input.FavoriteTeam); err != nil {
			return nil, errs.Validation(err.Error())
		}
	}

	now := s.Now().UTC()
	user := &models.User{
		UserID:       userID,
		Nickname:     input.Nickname,
		Sex:          sex,
		Age:          age,
		FavoriteTeam: team,
		Introduce:    input.Introduce,
		ProfileImage: input.ProfileImage,
		UpdatedAt:    now,
	}

	if existing, err := s.Users.FindByID(ctx, userID); err == nil {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
	}

	if err := s.Users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", userID, err)
	}
	return user, nil
}

// GetUser returns the stored profile.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.Users.FindByID(ctx, userID)
}
