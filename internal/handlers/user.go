package handlers

import (
	"EvidenceKeeper/internal/config"
	"EvidenceKeeper/internal/middleware"
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/service"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler — регистрация, вход и профиль сотрудника.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type signinRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

// login выпускает токен, ставит cookie и отдаёт токен в теле для CLI.
func (h *UserHandler) login(w http.ResponseWriter, user *model.User, msg string) {
	token, err := middleware.BuildToken(user.ID, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("token sign failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("cookie set failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Message: msg, Token: token, User: user})
}

// Signup регистрация сотрудника
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if !decodeJSON(w, r, h.Logger, "Signup", &req) {
		return
	}
	user, err := h.UserService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.Logger, "Signup", err)
		return
	}
	h.Logger.Infow("officer registered", "user_id", user.ID, "username", user.Username)
	h.login(w, user, "User created")
}

// Signin вход по email (или username) и паролю
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !decodeJSON(w, r, h.Logger, "Signin", &req) {
		return
	}
	login := req.Email
	if login == "" {
		login = req.Username
	}
	if login == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}
	user, err := h.UserService.Login(r.Context(), login, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, "Signin", err)
		return
	}
	h.login(w, user, "Signed in")
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.UpdateProfileInput
	if !decodeJSON(w, r, h.Logger, "UpdateProfile", &req) {
		return
	}
	user, err := h.UserService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, h.Logger, "UpdateProfile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "user": user})
}

func (h *UserHandler) Info(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	info, err := h.UserService.Info(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "Info", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": info})
}

// Status проверка авторизации
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	result := "anonymous"
	if uid, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		result = fmt.Sprintf("User ID = %d", uid)
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}
