package services

import (
	"errors"
	"time"

	"urbancard/models"

	"github.com/golang-jwt/jwt/v5"
)

// Издатель токенов сервиса
const tokenIssuer = "urbancard-api"

// Срок действия считается в фиксированном смещении, а не в локальной зоне
// сервера, чтобы истечение не зависело от региона развертывания
var tokenZone = time.FixedZone("-03:00", -3*60*60)

// TokenClaims представляет полезную нагрузку токена
type TokenClaims struct {
	UserID uint        `json:"userId"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет подписанные токены. Сервис не хранит
// состояния: любой экземпляр с тем же секретом проверит любой выданный токен.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService создает новый экземпляр TokenService
func NewTokenService(secret string, expiresInHours int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    time.Duration(expiresInHours) * time.Hour,
		now:    time.Now,
	}
}

// Generate выпускает токен для аутентифицированного пользователя
func (s *TokenService) Generate(user *models.User) (string, error) {
	now := s.now().In(tokenZone)

	claims := &TokenClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate проверяет подпись, издателя и срок действия токена.
// Любая ошибка возвращается как ErrInvalidToken без уточнения причины.
func (s *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
