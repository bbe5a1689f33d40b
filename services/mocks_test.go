package services

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"

	"flexzone/database"
	"flexzone/models"

	"github.com/stretchr/testify/mock"
)

// ==================== MOCKS ====================

type MockUserRepository struct {
	mock.Mock
}

var _ UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByGoogleID(ctx context.Context, gID string) (*models.User, error) {
	args := m.Called(ctx, gID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserRegistrar struct {
	mock.Mock
}

var _ UserRegistrar = (*MockUserRegistrar)(nil)

func (m *MockUserRegistrar) RegisterUser(ctx context.Context, newUser models.NewUser) (*models.User, error) {
	args := m.Called(ctx, newUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

var _ ProfileRepository = (*MockProfileRepository)(nil)

func (m *MockProfileRepository) GetUserAndProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, newProfile models.NewProfile) (*models.Profile, error) {
	args := m.Called(ctx, newProfile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type MockWorkoutPlanRepository struct {
	mock.Mock
}

var _ WorkoutPlanRepository = (*MockWorkoutPlanRepository)(nil)

func (m *MockWorkoutPlanRepository) AddExerciseToWorkoutPlan(ctx context.Context, userID int64, planName, exerciseName, day string, sets, reps any) error {
	args := m.Called(ctx, userID, planName, exerciseName, day, sets, reps)
	return args.Error(0)
}

func (m *MockWorkoutPlanRepository) FetchPlanExercises(ctx context.Context, scope database.Scope, day string) ([]models.WorkoutExercise, error) {
	args := m.Called(ctx, scope, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkoutExercise), args.Error(1)
}

func (m *MockWorkoutPlanRepository) UpdatePlanExercise(ctx context.Context, scope database.Scope, name string, sets, reps any) error {
	args := m.Called(ctx, scope, name, sets, reps)
	return args.Error(0)
}

func (m *MockWorkoutPlanRepository) DeletePlanExercise(ctx context.Context, scope database.Scope, name string) error {
	args := m.Called(ctx, scope, name)
	return args.Error(0)
}

func (m *MockWorkoutPlanRepository) GetPlansByUser(ctx context.Context, userID int64) ([]models.WorkoutPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkoutPlan), args.Error(1)
}

type MockTokenVerifier struct {
	mock.Mock
}

var _ TokenVerifier = (*MockTokenVerifier)(nil)

func (m *MockTokenVerifier) Verify(ctx context.Context, idToken string) (*models.GoogleUser, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GoogleUser), args.Error(1)
}

type MockTokenExchanger struct {
	mock.Mock
}

var _ TokenExchanger = (*MockTokenExchanger)(nil)

func (m *MockTokenExchanger) ExchangeGoogleToken(ctx context.Context, idToken string) (string, error) {
	args := m.Called(ctx, idToken)
	return args.String(0), args.Error(1)
}

type MockPlanClient struct {
	mock.Mock
}

var _ PlanClient = (*MockPlanClient)(nil)

func (m *MockPlanClient) GetPlansByDay(ctx context.Context, googleID, day string) ([]models.RemotePlan, error) {
	args := m.Called(ctx, googleID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RemotePlan), args.Error(1)
}

func (m *MockPlanClient) CreatePlan(ctx context.Context, plan models.PlanInput) (*models.RemotePlan, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RemotePlan), args.Error(1)
}

func (m *MockPlanClient) UpdatePlan(ctx context.Context, id int64, plan models.PlanInput) (*models.RemotePlan, error) {
	args := m.Called(ctx, id, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RemotePlan), args.Error(1)
}

func (m *MockPlanClient) AddExerciseToPlan(ctx context.Context, planID int64, exercise models.PlanExerciseInput) error {
	args := m.Called(ctx, planID, exercise)
	return args.Error(0)
}

func (m *MockPlanClient) UpdateExerciseInPlan(ctx context.Context, planID int64, name string, sets, reps int) error {
	args := m.Called(ctx, planID, name, sets, reps)
	return args.Error(0)
}

func (m *MockPlanClient) DeleteExerciseFromPlan(ctx context.Context, planID int64, name string) error {
	args := m.Called(ctx, planID, name)
	return args.Error(0)
}

func (m *MockPlanClient) GetWorkouts(ctx context.Context, params url.Values) ([]models.CatalogExercise, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CatalogExercise), args.Error(1)
}

func (m *MockPlanClient) GetWorkoutDetail(ctx context.Context, id int64) (*models.CatalogExercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CatalogExercise), args.Error(1)
}

// memoryStore is an in-memory SecureStore
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

var _ SecureStore = (*memoryStore)(nil)

func newMemoryStore(values map[string]string) *memoryStore {
	if values == nil {
		values = map[string]string{}
	}
	return &memoryStore{values: values}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string {
	return &s
}
