package services

import (
	"context"
	"testing"

	"flexzone/models"
	"flexzone/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Current(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		store         map[string]string
		mockSetup     func(*MockProfileRepository)
		expected      *models.UserProfile
		expectedError error
	}{
		{
			name:          "Not signed in",
			store:         nil,
			mockSetup:     func(*MockProfileRepository) {},
			expectedError: ErrNotSignedIn,
		},
		{
			name:  "Signed in user without profile",
			store: map[string]string{session.KeySession: "a@b.com"},
			mockSetup: func(repo *MockProfileRepository) {
				repo.On("GetUserAndProfileByEmail", ctx, "a@b.com").
					Return(&models.UserProfile{User: models.User{ID: 1, Email: "a@b.com"}}, nil)
			},
			expected: &models.UserProfile{User: models.User{ID: 1, Email: "a@b.com"}},
		},
		{
			name:  "Session email without a local user",
			store: map[string]string{session.KeySession: "gone@b.com"},
			mockSetup: func(repo *MockProfileRepository) {
				repo.On("GetUserAndProfileByEmail", ctx, "gone@b.com").Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := new(MockProfileRepository)
			tt.mockSetup(profiles)

			ps := NewProfileService(newMemoryStore(tt.store), new(MockUserRepository), profiles)
			result, err := ps.Current(ctx)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			profiles.AssertExpectations(t)
		})
	}
}

func TestProfileService_Onboard(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(map[string]string{session.KeySession: "a@b.com"})

	users := new(MockUserRepository)
	users.On("GetByEmail", ctx, "a@b.com").Return(&models.User{ID: 7, Email: "a@b.com"}, nil)

	t.Run("Converts height and passes skill level", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		saved := &models.Profile{ID: 1, UserID: 7, SkillLevel: "Advanced"}
		profiles.On("Create", ctx, mock.MatchedBy(func(p models.NewProfile) bool {
			return p.UserID == 7 && p.Height == 188.0 && p.Weight == 85.0 && p.Age == 21.0 &&
				p.SkillLevel != nil && *p.SkillLevel == "Advanced"
		})).Return(saved, nil)

		ps := NewProfileService(store, users, profiles)
		profile, err := ps.Onboard(ctx, models.OnboardingForm{
			HeightFeet: num(6), HeightInches: num(2), Weight: num(85), Age: num(21), SkillLevel: "Advanced",
		})
		require.NoError(t, err)
		assert.Equal(t, saved, profile)
		profiles.AssertExpectations(t)
	})

	t.Run("Omitted skill level is left to the default", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("Create", ctx, mock.MatchedBy(func(p models.NewProfile) bool {
			return p.SkillLevel == nil
		})).Return(&models.Profile{UserID: 7, SkillLevel: "Beginner"}, nil)

		ps := NewProfileService(store, users, profiles)
		_, err := ps.Onboard(ctx, models.OnboardingForm{HeightFeet: num(5), Weight: num(60), Age: num(30)})
		require.NoError(t, err)
		profiles.AssertExpectations(t)
	})

	t.Run("Omitted answers stay missing", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("Create", ctx, mock.MatchedBy(func(p models.NewProfile) bool {
			return p.Age == nil && p.Weight == nil && p.Height == nil
		})).Return(&models.Profile{UserID: 7, SkillLevel: "Beginner"}, nil)

		ps := NewProfileService(store, users, profiles)
		_, err := ps.Onboard(ctx, models.OnboardingForm{})
		require.NoError(t, err)
		profiles.AssertExpectations(t)
	})

	t.Run("Inches alone still give a height", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("Create", ctx, mock.MatchedBy(func(p models.NewProfile) bool {
			return p.Height == 25.0
		})).Return(&models.Profile{UserID: 7}, nil)

		ps := NewProfileService(store, users, profiles)
		_, err := ps.Onboard(ctx, models.OnboardingForm{HeightInches: num(10)})
		require.NoError(t, err)
		profiles.AssertExpectations(t)
	})
}

func TestHeightCM(t *testing.T) {
	assert.Equal(t, 188.0, HeightCM(6, 2))
	assert.Equal(t, 152.0, HeightCM(5, 0))
	assert.Equal(t, 0.0, HeightCM(0, 0))
}

func num(v float64) *float64 {
	return &v
}
