package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	RefreshTokenCookieName = "refresh_token"
)

var (
	ErrWrongTokenType = errors.New("unexpected token type")
	ErrMissingClaim   = errors.New("token is missing a required claim")
)

type Service interface {
	GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// VerifyRefreshToken checks signature, expiry and type, and returns the subject user id.
	VerifyRefreshToken(token string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearRefreshTokenCookie() *http.Cookie
}

type JWTService struct {
	accessTokenExpiration  time.Duration
	refreshTokenExpiration time.Duration
	secureCookie           bool
	tokenAuth              *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService builds an HS256 signer. Expirations are Go duration strings ("1h", "168h").
func NewJWTService(secretKey, accessTokenExpiration, refreshTokenExpiration string, secureCookie bool) (Service, error) {
	accessExp, err := time.ParseDuration(accessTokenExpiration)
	if err != nil {
		return nil, err
	}
	refreshExp, err := time.ParseDuration(refreshTokenExpiration)
	if err != nil {
		return nil, err
	}

	return &JWTService{
		accessTokenExpiration:  accessExp,
		refreshTokenExpiration: refreshExp,
		secureCookie:           secureCookie,
		tokenAuth:              jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":     principal.UserID,
		"email":       principal.Email,
		"employee_id": principal.EmployeeID,
		"company_id":  principal.CompanyID,
		"role":        string(principal.Role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.refreshTokenExpiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
		// jti keeps two refresh tokens issued in the same second distinct
		"jti": uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) VerifyRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return "", ErrWrongTokenType
	}

	userID, ok := token.Get("user_id")
	if !ok {
		return "", ErrMissingClaim
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", ErrMissingClaim
	}
	return id, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshTokenCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     RefreshTokenCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// PrincipalFromClaims rebuilds the caller identity from access token claims.
func PrincipalFromClaims(claims map[string]interface{}) (user.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeAccess {
		return user.Principal{}, ErrWrongTokenType
	}

	userID, _ := claims["user_id"].(string)
	companyID, _ := claims["company_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || companyID == "" || !user.Role(role).IsValid() {
		return user.Principal{}, ErrMissingClaim
	}

	email, _ := claims["email"].(string)
	employeeID, _ := claims["employee_id"].(string)

	return user.Principal{
		UserID:     userID,
		Email:      email,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       user.Role(role),
	}, nil
}
