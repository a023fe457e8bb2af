package server

import (
	"zephyr/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListFriends godoc
// @Summary List a user's friends
// @Tags friends
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /friends/{id} [get]
func (s *Server) ListFriends(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friends, err := s.friendService.ListFriends(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// AddFriend godoc
// @Summary Befriend two users
// @Description Links both users in each direction
// @Tags friends
// @Accept json
// @Produce json
// @Param request body models.FriendRequest true "Pair to link"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /friends [post]
func (s *Server) AddFriend(c *fiber.Ctx) error {
	var req models.FriendRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.friendService.AddFriend(c.UserContext(), req); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{Message: "Friend added successfully"})
}

// RemoveFriend godoc
// @Summary Unfriend two users
// @Tags friends
// @Accept json
// @Param request body models.FriendRequest true "Pair to unlink"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /friends [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	var req models.FriendRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(c.UserContext(), req); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
