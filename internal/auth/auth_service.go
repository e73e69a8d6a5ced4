package auth

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"regexp"

	"lingua-service/internal/chat"
	"lingua-service/internal/events"
	"lingua-service/internal/models"
	"lingua-service/internal/storage"
	"lingua-service/pkg/httperr"

	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	repo         AuthRepository
	streamClient chat.StreamClient
	publisher    events.Publisher
	uploader     storage.Uploader
}

func NewAuthService(repo AuthRepository, streamClient chat.StreamClient, publisher events.Publisher, uploader storage.Uploader) *AuthService {
	return &AuthService{
		repo:         repo,
		streamClient: streamClient,
		publisher:    publisher,
		uploader:     uploader,
	}
}

// Signup runs the explicit create pipeline: validate, hash, persist. The
// plaintext password never reaches the repository.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return nil, httperr.Validation("All fields are required")
	}
	if len(req.Password) < 6 {
		return nil, httperr.Validation("Password must be at least 6 characters long")
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, httperr.Validation("Invalid email format")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.Duplicate("Email already exists, please use a different one")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.syncStreamUser(ctx, user)

	if s.publisher != nil {
		if err := s.publisher.Publish(events.TypeUserRegistered, user.ID, user.PublicProfile()); err != nil {
			log.Printf("Error publishing user.registered event: %v", err)
		}
	}

	return user, nil
}

// Login verifies credentials against the stored hash. Unknown email and wrong
// password return the same message.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, httperr.Validation("All fields are required")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperr.Auth("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, httperr.Auth("Invalid email or password")
	}

	return user, nil
}

// Onboard completes the one-time profile step and marks the user onboarded.
func (s *AuthService) Onboard(ctx context.Context, userID string, req models.OnboardRequest) (*models.User, error) {
	missing := missingOnboardFields(req)
	if len(missing) > 0 {
		return nil, httperr.ValidationFields("All fields are required", missing)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperr.NotFound("User not found")
	}

	user.FullName = req.FullName
	user.Bio = req.Bio
	user.NativeLanguage = req.NativeLanguage
	user.LearningLanguage = req.LearningLanguage
	user.Location = req.Location
	if req.ProfilePic != "" {
		user.ProfilePic = req.ProfilePic
	}
	user.IsOnboarded = true

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.syncStreamUser(ctx, user)

	return user, nil
}

// UpdateAvatar stores an uploaded profile picture and records its URL.
func (s *AuthService) UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*models.User, error) {
	if s.uploader == nil {
		return nil, errors.New("avatar storage is not configured")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperr.NotFound("User not found")
	}

	url, err := s.uploader.UploadAvatar(ctx, userID, file)
	if err != nil {
		return nil, err
	}

	user.ProfilePic = url
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.syncStreamUser(ctx, user)

	return user, nil
}

// syncStreamUser mirrors identity into the chat provider. The provider is not
// authoritative, so failures are logged and swallowed; the primary operation
// already succeeded and must not be rolled back.
func (s *AuthService) syncStreamUser(ctx context.Context, user *models.User) {
	if s.streamClient == nil {
		return
	}
	if err := s.streamClient.UpsertUser(ctx, user.ID, user.FullName, user.ProfilePic); err != nil {
		log.Printf("Error upserting stream user %s: %v", user.ID, err)
		return
	}
	log.Printf("Stream user synced for %s", user.FullName)
}

func missingOnboardFields(req models.OnboardRequest) []string {
	var missing []string
	if req.FullName == "" {
		missing = append(missing, "fullName")
	}
	if req.Bio == "" {
		missing = append(missing, "bio")
	}
	if req.NativeLanguage == "" {
		missing = append(missing, "nativeLanguage")
	}
	if req.LearningLanguage == "" {
		missing = append(missing, "learningLanguage")
	}
	if req.Location == "" {
		missing = append(missing, "location")
	}
	return missing
}
