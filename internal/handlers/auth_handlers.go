package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"kanbanBoard/internal/handlers/dto"
	"kanbanBoard/internal/logger"

	"go.uber.org/zap"
)

type AuthHandler struct {
	AuthService Auth
}

func NewAuthHandler(authService Auth) AuthHandler {
	return AuthHandler{
		AuthService: authService,
	}
}

func (s *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if request.Email == "" || request.Password == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "email/password"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "email и пароль обязательны")
		return
	}

	u, token, err := s.AuthService.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Auth", err,
			zap.String("operation", "login"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Вход выполнен",
		zap.String("email", u.Email),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.LoginResponse{User: u, Token: token})
}

func (s *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if err := s.AuthService.Logout(r.Context()); err != nil {
		logger.Error("HTTP: Ошибка Auth", err,
			zap.String("operation", "logout"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	responseWithJSON(w, http.StatusNoContent, nil)
}

func (s *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	u, err := s.AuthService.CurrentUser(r.Context())
	if err != nil {
		logger.Warn("HTTP: Пользователь не сохранён",
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusNotFound, "пользователь не найден")
		return
	}

	responseWithJSON(w, http.StatusOK, u)
}
