package services

import (
	"context"
	"math"

	"flexzone/models"
)

const cmPerInch = 2.54

// ProfileService serves the signed-in user's profile
type ProfileService struct {
	current  currentUser
	profiles ProfileRepository
}

func NewProfileService(store SecureStore, users UserRepository, profiles ProfileRepository) *ProfileService {
	return &ProfileService{
		current:  currentUser{store: store, users: users},
		profiles: profiles,
	}
}

// Current returns the signed-in user with their profile, which is nil
// until onboarding has happened.
func (ps *ProfileService) Current(ctx context.Context) (*models.UserProfile, error) {
	email, err := ps.current.email(ctx)
	if err != nil {
		return nil, err
	}

	result, err := ps.profiles.GetUserAndProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrUserNotFound
	}
	return result, nil
}

// Onboard stores the onboarding answers as the user's profile. Height is
// converted from feet and inches to whole centimetres. Answers left out are
// stored as NULL. A profile that already exists is returned unchanged.
func (ps *ProfileService) Onboard(ctx context.Context, form models.OnboardingForm) (*models.Profile, error) {
	user, err := ps.current.user(ctx)
	if err != nil {
		return nil, err
	}

	newProfile := models.NewProfile{
		UserID: user.ID,
		Age:    optional(form.Age),
		Weight: optional(form.Weight),
		Height: onboardingHeight(form.HeightFeet, form.HeightInches),
	}
	if form.SkillLevel != "" {
		skill := form.SkillLevel
		newProfile.SkillLevel = &skill
	}

	return ps.profiles.Create(ctx, newProfile)
}

func HeightCM(feet, inches float64) float64 {
	return math.Round((feet*12 + inches) * cmPerInch)
}

// onboardingHeight returns nil when neither part of the height was given.
// A missing part counts as zero when the other one is present.
func onboardingHeight(feet, inches *float64) any {
	if feet == nil && inches == nil {
		return nil
	}

	var f, i float64
	if feet != nil {
		f = *feet
	}
	if inches != nil {
		i = *inches
	}
	return HeightCM(f, i)
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
