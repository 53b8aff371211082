package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type avatarRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Me returns the authenticated account.
//
// @Summary      Current account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateAvatar replaces the avatar URL on the authenticated account.
//
// @Summary      Update the avatar
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      avatarRequest  true  "Avatar URL"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req avatarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.UpdateAvatar(c.Request().Context(), user.Email, req.URL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}
