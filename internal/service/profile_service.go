package service

import (
	"context"

	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/internal/validation"
	"github.com/edusekai/platform-api/pkg/util"
)

// ProfileService serves the caller's own profile. The email stays under the
// login identity; only personal fields are editable here.
type ProfileService struct {
	profiles  repository.ProfileRepository
	validator *validation.Validator
}

// NewProfileService builds the service.
func NewProfileService(profiles repository.ProfileRepository, validator *validation.Validator) *ProfileService {
	return &ProfileService{profiles: profiles, validator: validator}
}

// ProfileUpdateInput describes the self-service profile edit payload.
type ProfileUpdateInput struct {
	FirstName   string `json:"first_name" validate:"required,max=50"`
	MiddleName  string `json:"middle_name" validate:"omitempty,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female other"`
	Address     string `json:"address" validate:"omitempty,max=255"`
}

// MyProfile returns the profile attached to the caller's login.
func (s *ProfileService) MyProfile(ctx context.Context, orgID, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, orgID, userID)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("profile", nil)
	}
	return profile, err
}

// UpdateMyProfile edits the caller's personal fields.
func (s *ProfileService) UpdateMyProfile(ctx context.Context, orgID, userID string, input ProfileUpdateInput) (*domain.Profile, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	profile, err := s.MyProfile(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	profile.FirstName = input.FirstName
	profile.MiddleName = input.MiddleName
	profile.LastName = input.LastName
	profile.Phone = input.Phone
	profile.DateOfBirth = parseDate(input.DateOfBirth)
	profile.Gender = domain.Gender(input.Gender)
	profile.Address = input.Address

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
