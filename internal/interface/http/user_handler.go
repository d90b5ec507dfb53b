package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

type UserHandler struct {
	Svc     *application.AccountService
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.AccountService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Password string `json:"password" binding:"required,pwd"`
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,uname"`
	FirstName string `json:"first_name" binding:"required,pname"`
	LastName  string `json:"last_name" binding:"required,pname"`
	Password  string `json:"password" binding:"required,pwd"`
}

// every field is optional; the service decides whether the request is empty
type updateRequest struct {
	Username    string `json:"username" binding:"omitempty,uname"`
	FirstName   string `json:"first_name" binding:"omitempty,pname"`
	LastName    string `json:"last_name" binding:"omitempty,pname"`
	OldPassword string `json:"old_password" binding:"omitempty,pwd"`
	NewPassword string `json:"new_password" binding:"omitempty,pwd"`
}

// userResponse is the public shape of a user; the password digest never leaves the service.
type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Login(c.Request.Context(), application.LoginRequest{Username: req.Username, Password: req.Password})
	if err != nil {
		h.fail(c, err, opRead)
		return
	}

	var meta any
	if h.JWT != nil {
		token, exp, err := h.JWT.GenerateAccessToken(u.ID, u.Username)
		if err != nil {
			h.fail(c, err, opRead)
			return
		}
		h.Cookies.SetAccess(c, token, exp)
		meta = map[string]any{"access_token": token, "access_expires_at": exp}
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "login successful", meta)
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterRequest{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(c, err, opCreate)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user registered", nil)
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.Svc.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, opRead)
		return
	}
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, opRead)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Update(c.Request.Context(), id, application.UpdateRequest{
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.fail(c, err, opUpdate)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, opDelete)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.fail(c, err, opRead)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return 0, false
	}
	return id, true
}
