package helper

import (
	"errors"
	"fmt"
	"time"

	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const sessionLocalsKey = "session"

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Session is the authenticated caller carried by an access token.
type Session struct {
	AccountID string
	Email     string
	Role      string
}

func (s Session) Actor() model.Actor {
	return model.Actor{AccountID: s.AccountID, Role: s.Role}
}

func GenerateAccessToken(secret string, ttl time.Duration, account *model.Account) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["accountId"] = account.ID
	claims["email"] = account.Email
	claims["role"] = account.Role
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
}

func SessionFromToken(token *jwt.Token) (Session, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, errors.New("invalid claims")
	}
	accountID, _ := claims["accountId"].(string)
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	if accountID == "" || role == "" {
		return Session{}, errors.New("token is missing account claims")
	}
	return Session{AccountID: accountID, Email: email, Role: role}, nil
}

func SetSession(c *fiber.Ctx, session Session) {
	c.Locals(sessionLocalsKey, session)
}

func SessionFromCtx(c *fiber.Ctx) (Session, bool) {
	session, ok := c.Locals(sessionLocalsKey).(Session)
	return session, ok
}
