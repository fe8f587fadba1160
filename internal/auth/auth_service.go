package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanbanBoard/internal/logger"
	"kanbanBoard/internal/models/user"
	"kanbanBoard/internal/persistence"
	"kanbanBoard/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Демонстрационная заглушка: ровно две пары учётных данных,
// границей безопасности не является.
const adminEmail = "admin@kanban.com"
const userEmail = "user@kanban.com"
const demoPassword = "123456"

type AuthService struct {
	secret  []byte
	ttl     time.Duration
	adapter *persistence.Adapter
}

func NewAuthService(secret string, ttl time.Duration, adapter *persistence.Adapter) *AuthService {
	return &AuthService{
		secret:  []byte(secret),
		ttl:     ttl,
		adapter: adapter,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	valid := (email == adminEmail || email == userEmail) && password == demoPassword
	if !valid {
		logger.Warn("Auth: Неудачная попытка входа", zap.String("email", email))
		return nil, "", service.NewInvalidCredentials()
	}

	u := &user.User{
		Email: email,
		Name:  "Usuário Demo",
		Role:  user.RoleUser,
	}
	if email == adminEmail {
		u.Name = "Administrador Demo"
		u.Role = user.RoleAdmin
	}

	if err := s.adapter.SaveUser(ctx, u); err != nil {
		return nil, "", fmt.Errorf("сохранение пользователя: %w", err)
	}

	token, err := s.createToken(u)
	if err != nil {
		return nil, "", fmt.Errorf("выпуск токена: %w", err)
	}

	logger.Info("Auth: Вход выполнен", zap.String("email", email), zap.String("role", string(u.Role)))
	return u, token, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.adapter.ClearUser(ctx); err != nil {
		return fmt.Errorf("выход: %w", err)
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context) (*user.User, error) {
	return s.adapter.LoadUser(ctx)
}

func (s *AuthService) createToken(u *user.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": u.Email,
		"name":  u.Name,
		"role":  string(u.Role),
		"exp":   time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// VerifyToken проверяет подпись и срок токена, возвращает email владельца
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("разбор токена: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("недействительный токен")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("токен без email")
	}
	return email, nil
}
