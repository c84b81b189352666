package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
)

// JwtCustomClaim carrega a identidade verificada usada em toda autorização:
// id do usuário, papel e setor atribuído (nulo para quem não é de produção).
type JwtCustomClaim struct {
	UserID         uint64  `json:"userId"`
	Role           string  `json:"role"`
	SectorID       *uint64 `json:"sectorId,omitempty"`
	IsRefreshToken bool    `json:"isRefresh"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID uint64, role string, sectorID *uint64) (string, string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	secretKey       string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	logger          *zap.Logger
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:       secretKey,
		accessTokenExp:  accessTokenExp,
		refreshTokenExp: refreshTokenExp,
		logger:          logger,
	}
}

func (s *jwtService) GenerateTokens(userID uint64, role string, sectorID *uint64) (string, string, error) {
	now := time.Now()

	accessClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		SectorID:       sectorID,
		IsRefreshToken: false,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExp)),
		},
	}

	refreshClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		SectorID:       sectorID,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTokenExp)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS512, accessClaims).SignedString([]byte(s.secretKey))
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshClaims).SignedString([]byte(s.secretKey))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.secretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		s.logger.Warn("Falha ao validar token", zap.Error(err))
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}
	if claims.IssuedAt != nil && claims.IssuedAt.Time.After(time.Now()) {
		return nil, apperrors.ErrTokenNotYetValid
	}

	return claims, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration  { return s.accessTokenExp }
func (s *jwtService) GetRefreshTokenTTL() time.Duration { return s.refreshTokenExp }
