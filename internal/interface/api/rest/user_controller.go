package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory-api/internal/application/ports"
	domain "user-directory-api/internal/domain/user"
	"user-directory-api/internal/interface/api/rest/dto/user"
	"user-directory-api/internal/interface/api/rest/validator"
)

type UserController struct {
	directory ports.DirectoryService
	logger    *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	directory ports.DirectoryService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		directory: directory,
		logger:    logger,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)
	r.PUT(RouteUser, uc.UpdateUserHandler)
	r.PATCH(RouteUser, uc.PatchUserHandler)
	r.DELETE(RouteUser, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users, err := uc.directory.FindUsers(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("FindUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, err := validator.ValidateUserID(c.Param("user_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	u, err := uc.directory.FindUserByID(c.Request.Context(), id)
	if err != nil {
		if uc.replyKnown(c, err) {
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(u))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	u, err := uc.directory.CreateUser(c.Request.Context(), user.ToDomainUser(req))
	if err != nil {
		if uc.replyKnown(c, err) {
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a user"},
		)
		uc.logger.Error("CreateUser() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	id, err := validator.ValidateUserID(c.Param("user_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	var req user.Request
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	u, err := uc.directory.ReplaceUser(c.Request.Context(), id, user.ToDomainUser(req))
	if err != nil {
		if uc.replyKnown(c, err) {
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a user"},
		)
		uc.logger.Error("ReplaceUser() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(u))
}

func (uc *UserController) PatchUserHandler(c *gin.Context) {
	id, err := validator.ValidateUserID(c.Param("user_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	var p domain.Patch
	if err = c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	u, err := uc.directory.PatchUser(c.Request.Context(), id, p)
	if err != nil {
		if uc.replyKnown(c, err) {
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to patch a user"},
		)
		uc.logger.Error("PatchUser() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, err := validator.ValidateUserID(c.Param("user_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	if err = uc.directory.DeleteUser(c.Request.Context(), id); err != nil {
		if uc.replyKnown(c, err) {
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete user"},
		)
		uc.logger.Error("DeleteUser() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// replyKnown answers expected domain outcomes and reports whether the
// error was one of them. Anything unexpected stays with the caller.
func (uc *UserController) replyKnown(c *gin.Context, err error) bool {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Reason, "field": ve.Field})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		return false
	}

	return true
}
