package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"lingua-service/internal/models"
	"lingua-service/pkg/httperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthRepo is an in-memory AuthRepository for service tests.
type fakeAuthRepo struct {
	users map[string]*models.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[string]*models.User)}
}

func (f *fakeAuthRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeAuthRepo) Update(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

// fakeStreamClient records upserts and can be told to fail.
type fakeStreamClient struct {
	upserts []string
	fail    bool
}

func (f *fakeStreamClient) UpsertUser(ctx context.Context, id, name, image string) error {
	if f.fail {
		return errors.New("provider unreachable")
	}
	f.upserts = append(f.upserts, id)
	return nil
}

func (f *fakeStreamClient) CreateToken(userID string) (string, error) {
	return "stream-token-" + userID, nil
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *httperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.Status)
}

func signupReq() models.SignupRequest {
	return models.SignupRequest{
		FullName: "Ana",
		Email:    "ana@x.com",
		Password: "secret1",
	}
}

func TestSignupHashesPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, nil, nil, nil)

	user, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	assert.False(t, user.IsOnboarded)
	assert.NotEmpty(t, user.Password)
	assert.NotEqual(t, "secret1", user.Password)

	// The same plaintext must verify afterwards.
	loggedIn, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestSignupValidation(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, nil, nil, nil)

	cases := []struct {
		name string
		req  models.SignupRequest
	}{
		{"missing full name", models.SignupRequest{Email: "ana@x.com", Password: "secret1"}},
		{"missing email", models.SignupRequest{FullName: "Ana", Password: "secret1"}},
		{"missing password", models.SignupRequest{FullName: "Ana", Email: "ana@x.com"}},
		{"short password", models.SignupRequest{FullName: "Ana", Email: "ana@x.com", Password: "abc"}},
		{"bad email", models.SignupRequest{FullName: "Ana", Email: "not-an-email", Password: "secret1"}},
		{"email without tld", models.SignupRequest{FullName: "Ana", Email: "ana@x", Password: "secret1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.req)
			requireStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, nil, nil, nil)

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	// Other fields differing does not matter.
	dup := models.SignupRequest{FullName: "Another Ana", Email: "ana@x.com", Password: "different7"}
	_, err = svc.Signup(context.Background(), dup)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, nil, nil, nil)

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ana@x.com", Password: "wrong-1"})
	requireStatus(t, err, http.StatusUnauthorized)

	// Unknown email yields the same status and message shape.
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ghost@x.com", Password: "secret1"})
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestOnboardMissingFields(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, nil, nil, nil)

	user, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	req := models.OnboardRequest{
		FullName:         "Ana",
		NativeLanguage:   "spanish",
		LearningLanguage: "english",
		Location:         "Madrid",
	}
	_, err = svc.Onboard(context.Background(), user.ID, req)

	var appErr *httperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, []string{"bio"}, appErr.MissingFields)
}

func TestOnboardCompletesProfile(t *testing.T) {
	repo := newFakeAuthRepo()
	stream := &fakeStreamClient{}
	svc := NewAuthService(repo, stream, nil, nil)

	user, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	req := models.OnboardRequest{
		FullName:         "Ana",
		Bio:              "learning english",
		NativeLanguage:   "spanish",
		LearningLanguage: "english",
		Location:         "Madrid",
	}
	updated, err := svc.Onboard(context.Background(), user.ID, req)
	require.NoError(t, err)

	assert.True(t, updated.IsOnboarded)
	assert.Equal(t, "learning english", updated.Bio)
	// Identity mirrored to the provider on signup and again on onboarding.
	assert.Equal(t, []string{user.ID, user.ID}, stream.upserts)
}

func TestOnboardUnknownUser(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, nil, nil, nil)

	req := models.OnboardRequest{
		FullName:         "Ana",
		Bio:              "bio",
		NativeLanguage:   "spanish",
		LearningLanguage: "english",
		Location:         "Madrid",
	}
	_, err := svc.Onboard(context.Background(), uuid.New().String(), req)
	requireStatus(t, err, http.StatusNotFound)
}

func TestSignupSurvivesStreamFailure(t *testing.T) {
	repo := newFakeAuthRepo()
	stream := &fakeStreamClient{fail: true}
	svc := NewAuthService(repo, stream, nil, nil)

	// The provider mirror is best-effort; its failure never propagates.
	user, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)
	require.NotNil(t, user)
}
