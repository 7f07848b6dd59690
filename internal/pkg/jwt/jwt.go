package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

const (
	claimEmployeeID = "employee_id"
	claimRole       = "role"
	claimDepartment = "department"
	claimType       = "type"

	tokenTypeAccess = "access"
)

type Service interface {
	GenerateAccessToken(p auth.Principal) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken issues a token the auth middleware resolves back to p.
func (j *JWTService) GenerateAccessToken(p auth.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]any{
		claimEmployeeID: p.EmployeeID,
		claimRole:       string(p.Role),
		claimType:       tokenTypeAccess,
		"exp":           expiresAt,
	}
	if p.Department != "" {
		claims[claimDepartment] = p.Department
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// PrincipalFromClaims rebuilds the caller identity from verified access token
// claims. Refresh or other token types are rejected.
func PrincipalFromClaims(claims map[string]any) (auth.Principal, error) {
	tokenType, _ := claims[claimType].(string)
	if tokenType != tokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	employeeID, _ := claims[claimEmployeeID].(string)
	role, _ := claims[claimRole].(string)
	if employeeID == "" || !user.Role(role).IsValid() {
		return auth.Principal{}, auth.ErrInvalidPrincipal
	}

	department, _ := claims[claimDepartment].(string)
	return auth.Principal{
		EmployeeID: employeeID,
		Role:       user.Role(role),
		Department: department,
	}, nil
}
