package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/vitalog/internal/models"
	"gorm.io/gorm"
)

var (
	errMissingBearerToken = errors.New("missing bearer token")
	errInvalidToken       = errors.New("invalid token")
	errRevokedToken       = errors.New("token revoked")
)

func bearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errMissingBearerToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingBearerToken
	}
	return token, nil
}

func (handler *Handler) parseToken(tokenValue string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return handler.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if claims.UserID == 0 || strings.TrimSpace(claims.ID) == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}

// authenticateRequest resolves the bearer token to a live user. A storage
// failure is returned as is so the caller can tell it apart from a bad token.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, *authClaims, error) {
	tokenValue, err := bearerToken(c)
	if err != nil {
		return nil, nil, err
	}
	claims, err := handler.parseToken(tokenValue)
	if err != nil {
		return nil, nil, err
	}

	handler.ensureDependencies()
	revoked, err := handler.sessionService.IsRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, errRevokedToken
	}

	user, err := handler.authService.FindByID(c.UserContext(), claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, errInvalidToken
	}
	if err != nil {
		return nil, nil, err
	}
	return &user, claims, nil
}
