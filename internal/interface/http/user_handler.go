package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aryawidjaya/user-accounts/internal/application"
	"github.com/aryawidjaya/user-accounts/internal/domain/errs"
	"github.com/aryawidjaya/user-accounts/pkg/response"
	"github.com/aryawidjaya/user-accounts/pkg/validation"
)

// UserHandler adapts HTTP requests to the user use cases and renders the
// uniform envelope. Domain errors map to 400/404/409; anything unexpected
// becomes a generic 500 with the detail kept in the log.
type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateRequest uses pointers so an omitted field is distinguishable from
// an empty one; nil means "leave unchanged".
type updateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logBindError(c, err)
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	u, err := h.Svc.RegisterUser(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.renderError(c, err, fmt.Sprintf("User with email %s already exists", req.Email))
		return
	}
	response.Success(c, http.StatusCreated, PresentUser(u))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.renderError(c, err, "")
		return
	}
	response.Success(c, http.StatusOK, PresentUserList(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err, "")
		return
	}
	if u == nil {
		response.Error(c, http.StatusNotFound, "User not found")
		return
	}
	response.Success(c, http.StatusOK, PresentUser(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logBindError(c, err)
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	u, err := h.Svc.UpdateUser(c.Request.Context(), id, application.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		msg := ""
		if req.Email != nil {
			msg = fmt.Sprintf("User with email %s already exists", *req.Email)
		}
		h.renderError(c, err, msg)
		return
	}
	response.Success(c, http.StatusOK, PresentUser(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		h.renderError(c, err, "")
		return
	}
	response.SuccessMessage(c, http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.Query("size"))
	results, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.renderError(c, err, "")
		return
	}
	response.Success(c, http.StatusOK, results)
}

func (h *UserHandler) logBindError(c *gin.Context, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.WithFields(logrus.Fields{
		"path":    c.FullPath(),
		"details": validation.ToDetails(err),
	}).Debug("request binding failed")
}

// renderError maps use-case errors onto the envelope. conflictMsg replaces
// the bare conflict sentinel so the response can name the offending email.
func (h *UserHandler) renderError(c *gin.Context, err error, conflictMsg string) {
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, errs.ErrConflict):
		if conflictMsg == "" {
			conflictMsg = "User already exists"
		}
		response.Error(c, http.StatusConflict, conflictMsg)
	case errors.Is(err, errs.ErrNotFound):
		response.Error(c, http.StatusNotFound, "User not found")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "Server error")
	}
}
