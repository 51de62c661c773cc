// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"strings"

	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:username
// @Summary Get a user profile by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID, _ := s.optionalUserID(c)

	user, err := s.userService.Profile(c.Context(), username, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me. Accepts JSON (with base64/data
// URL image payloads) or multipart form uploads for avatar and cover.
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	in := service.UpdateProfileInput{UserID: userID}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := s.parseProfileMultipart(c, &in); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidOperationError(err.Error()))
		}
	} else {
		if err := s.parseProfileJSON(c, &in); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidOperationError(err.Error()))
		}
	}

	user, err := s.userService.UpdateProfile(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

func (s *Server) parseProfileJSON(c *fiber.Ctx, in *service.UpdateProfileInput) error {
	var req struct {
		FullName        *string `json:"full_name"`
		Email           *string `json:"email"`
		Bio             *string `json:"bio"`
		Link            *string `json:"link"`
		CurrentPassword string  `json:"current_password"`
		NewPassword     string  `json:"new_password"`
		Avatar          string  `json:"avatar"`
		Cover           string  `json:"cover"`
	}
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	in.FullName = req.FullName
	in.Email = req.Email
	in.Bio = req.Bio
	in.Link = req.Link
	in.CurrentPassword = req.CurrentPassword
	in.NewPassword = req.NewPassword

	if req.Avatar != "" {
		raw, contentType, err := decodeImagePayload(req.Avatar)
		if err != nil {
			return err
		}
		in.Avatar = raw
		in.AvatarContentType = contentType
	}
	if req.Cover != "" {
		raw, contentType, err := decodeImagePayload(req.Cover)
		if err != nil {
			return err
		}
		in.Cover = raw
		in.CoverContentType = contentType
	}
	return nil
}

func (s *Server) parseProfileMultipart(c *fiber.Ctx, in *service.UpdateProfileInput) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}

	// Only fields present in the form are applied.
	field := func(name string) *string {
		if values, ok := form.Value[name]; ok && len(values) > 0 {
			v := values[0]
			return &v
		}
		return nil
	}
	in.FullName = field("full_name")
	in.Email = field("email")
	in.Bio = field("bio")
	in.Link = field("link")
	if v := field("current_password"); v != nil {
		in.CurrentPassword = *v
	}
	if v := field("new_password"); v != nil {
		in.NewPassword = *v
	}

	if raw, contentType, ferr := readMultipartImage(c, "avatar"); ferr == nil && len(raw) > 0 {
		in.Avatar = raw
		in.AvatarContentType = contentType
	}
	if raw, contentType, ferr := readMultipartImage(c, "cover"); ferr == nil && len(raw) > 0 {
		in.Cover = raw
		in.CoverContentType = contentType
	}
	return nil
}

// FollowToggle handles POST /api/users/:id/follow. Following and unfollowing
// are the same toggle; the response reports the resulting state.
// @Summary Follow or unfollow a user
// @Tags users
// @Produce json
// @Param id path int true "Target user ID"
// @Success 200 {object} object{following=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/follow [post]
func (s *Server) FollowToggle(c *fiber.Ctx) error {
	userID := currentUserID(c)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.Toggle(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers handles GET /api/users/:id/followers
// @Summary List a user's followers
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /users/{id}/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	followers, err := s.followService.Followers(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:id/following
// @Summary List the users someone follows
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /users/{id}/following [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	following, err := s.followService.Following(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(following)
}

// GetSuggestedUsers handles GET /api/users/suggested
// @Summary Suggest users to follow
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /users/suggested [get]
func (s *Server) GetSuggestedUsers(c *fiber.Ctx) error {
	userID := currentUserID(c)

	suggested, err := s.userService.Suggested(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(suggested)
}

// GetUserPosts handles GET /api/users/:username/posts
// @Summary List a user's posts, newest first
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)
	ctx, cancel := listContext(c)
	defer cancel()

	posts, err := s.postService.UserPosts(ctx, username, p.Limit, p.Offset, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetLikedPosts handles GET /api/users/:username/likes
// @Summary List the posts a user has liked
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/likes [get]
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)
	ctx, cancel := listContext(c)
	defer cancel()

	posts, err := s.postService.LikedPosts(ctx, username, p.Limit, p.Offset, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
