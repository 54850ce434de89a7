package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a token encodes
type SurveyUserClaims struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *SurveyUserClaims) IsAdmin() bool {
	return c.Role == "admin"
}

func GenerateNewSurveyUserToken(expiresIn time.Duration, id string, username string, role string, secretKey string) (tokenString string, err error) {
	claims := SurveyUserClaims{
		id,
		username,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateSurveyUserToken(tokenString string, secretKey string) (claims *SurveyUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SurveyUserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*SurveyUserClaims)
	valid = valid && token.Valid
	return
}
