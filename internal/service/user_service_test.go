package service

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validSignup() SignupInput {
	return SignupInput{
		Username: "jane_doe",
		Email:    "jane@example.com",
		Password: "SecurePass12!@",
		FullName: "Jane Doe",
	}
}

func TestSignupCreatesUserWithHashedPassword(t *testing.T) {
	t.Parallel()
	var created *models.User
	users := &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			created = u
			return nil
		},
	}
	svc := NewUserService(users, nil)

	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.Equal(t, "jane_doe", user.Username)
	assert.Empty(t, user.Password, "returned user must not expose the hash")

	require.NotNil(t, created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("SecurePass12!@")))
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	t.Parallel()
	svc := NewUserService(&userRepoStub{}, nil)

	in := validSignup()
	in.Password = "weak"
	_, err := svc.Signup(context.Background(), in)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInvalidOperation, appErr.Code)
}

func TestSignupDuplicateUsername(t *testing.T) {
	t.Parallel()
	users := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 9, Username: username}, nil
		},
	}
	svc := NewUserService(users, nil)

	_, err := svc.Signup(context.Background(), validSignup())
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()
	users := &userRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 9, Email: email}, nil
		},
	}
	svc := NewUserService(users, nil)

	_, err := svc.Signup(context.Background(), validSignup())
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	hashed, err := bcrypt.GenerateFromPassword([]byte("SecurePass12!@"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			if username != "jane_doe" {
				return nil, nil
			}
			return &models.User{ID: 1, Username: username, Password: string(hashed)}, nil
		},
	}
	svc := NewUserService(users, nil)

	user, err := svc.Authenticate(context.Background(), "jane_doe", "SecurePass12!@")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Empty(t, user.Password)

	_, err = svc.Authenticate(context.Background(), "jane_doe", "wrong-password")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthenticated, appErr.Code)

	// Unknown usernames report the same error as bad passwords.
	_, err = svc.Authenticate(context.Background(), "ghost", "whatever")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthenticated, appErr.Code)
}

func TestUpdateProfilePasswordNeedsBothFields(t *testing.T) {
	t.Parallel()
	svc := NewUserService(&userRepoStub{}, nil)

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:      1,
		NewPassword: "SecurePass12!@",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInvalidOperation, appErr.Code)
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	t.Parallel()
	hashed, err := bcrypt.GenerateFromPassword([]byte("OldPassword12!@"), bcrypt.DefaultCost)
	require.NoError(t, err)

	var saved *models.User
	users := &userRepoStub{
		getByIDUncachedFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "jane_doe", Password: string(hashed)}, nil
		},
		updateFn: func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		},
	}
	svc := NewUserService(users, nil)

	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:          1,
		CurrentPassword: "OldPassword12!@",
		NewPassword:     "NewPassword12!@",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("NewPassword12!@")))
}

func TestUpdateProfileWrongCurrentPassword(t *testing.T) {
	t.Parallel()
	hashed, err := bcrypt.GenerateFromPassword([]byte("OldPassword12!@"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := &userRepoStub{
		getByIDUncachedFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Password: string(hashed)}, nil
		},
	}
	svc := NewUserService(users, nil)

	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:          1,
		CurrentPassword: "wrong",
		NewPassword:     "NewPassword12!@",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthenticated, appErr.Code)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	t.Parallel()
	var saved *models.User
	users := &userRepoStub{
		getByIDUncachedFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FullName: "Old Name", Bio: "old bio", Link: "old.link"}, nil
		},
		updateFn: func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		},
	}
	svc := NewUserService(users, nil)

	bio := "new bio"
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "new bio", saved.Bio)
	assert.Equal(t, "Old Name", saved.FullName, "unset fields stay untouched")
	assert.Equal(t, "old.link", saved.Link)
}
