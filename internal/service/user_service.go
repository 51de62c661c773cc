package service

import (
	"context"
	"strings"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/storage"
	"chirp/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements account and profile operations.
type UserService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStore
}

// SignupInput carries a new account registration.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// UpdateProfileInput carries a profile update. Nil pointers leave the field
// untouched; password change requires both CurrentPassword and NewPassword.
type UpdateProfileInput struct {
	UserID          uint
	FullName        *string
	Email           *string
	Bio             *string
	Link            *string
	CurrentPassword string
	NewPassword     string

	Avatar            []byte
	AvatarContentType string
	Cover             []byte
	CoverContentType  string
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, store storage.ObjectStore) *UserService {
	return &UserService{userRepo: userRepo, store: store}
}

// Signup validates and registers a new account.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewInvalidOperationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewInvalidOperationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewInvalidOperationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		FullName: strings.TrimSpace(in.FullName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// Authenticate checks credentials and returns the user. The identifier may
// be a username or an email address. Credential failures are reported
// uniformly so usernames cannot be probed.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(ctx, identifier)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid username or password")
	}

	user.Password = ""
	return user, nil
}

// Profile loads a user profile with follower counts. currentUserID controls
// the computed "following" flag; anonymous lookups are cache-assisted.
func (s *UserService) Profile(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	if currentUserID == 0 {
		var user models.User
		err := cache.Aside(ctx, cache.ProfileKey(username), &user, cache.ProfileTTL, func() error {
			loaded, err := s.userRepo.GetProfileByUsername(ctx, username, 0)
			if err != nil {
				return err
			}
			user = *loaded
			return nil
		})
		if err != nil {
			return nil, err
		}
		user.Password = ""
		return &user, nil
	}

	user, err := s.userRepo.GetProfileByUsername(ctx, username, currentUserID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// Suggested returns up to four random users the viewer does not follow.
func (s *UserService) Suggested(ctx context.Context, userID uint) ([]models.User, error) {
	users, err := s.userRepo.Suggested(ctx, userID, 4)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// UpdateProfile applies a partial profile update. The user is loaded through
// an uncached read so the password hash is present for verification and is
// never overwritten with an empty value on save.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByIDUncached(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.CurrentPassword != "" || in.NewPassword != "" {
		if in.CurrentPassword == "" || in.NewPassword == "" {
			return nil, models.NewInvalidOperationError("Both current and new password are required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
			return nil, models.NewUnauthenticatedError("Current password is incorrect")
		}
		if err := validation.ValidatePassword(in.NewPassword); err != nil {
			return nil, models.NewInvalidOperationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewInvalidOperationError(err.Error())
		}
		user.Email = email
	}
	if in.Bio != nil {
		user.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Link != nil {
		user.Link = strings.TrimSpace(*in.Link)
	}

	if len(in.Avatar) > 0 {
		url, err := s.replaceImage(ctx, in.UserID, user.AvatarURL, in.Avatar, in.AvatarContentType)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = url
	}
	if len(in.Cover) > 0 {
		url, err := s.replaceImage(ctx, in.UserID, user.CoverURL, in.Cover, in.CoverContentType)
		if err != nil {
			return nil, err
		}
		user.CoverURL = url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// replaceImage destroys the previous stored image, then uploads the new one.
func (s *UserService) replaceImage(ctx context.Context, userID uint, oldURL string, content []byte, contentType string) (string, error) {
	if s.store == nil {
		return "", models.NewInvalidOperationError("Image uploads are not enabled")
	}
	if oldURL != "" {
		if id := storage.ObjectIDFromURL(oldURL); id != "" {
			_ = s.store.Destroy(ctx, id)
		}
	}
	url, err := s.store.Upload(ctx, userID, content, contentType)
	if err != nil {
		return "", models.NewInvalidOperationError(err.Error())
	}
	return url, nil
}
