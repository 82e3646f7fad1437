package utils

import (
	"github.com/gin-gonic/gin"
)

const TokenCookieName = "jwt"

// Success writes the standard success envelope: {"status":"success","data":...}.
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"status": "success",
		"data":   data,
	})
}

// SuccessMessage writes a success envelope carrying only a message.
func SuccessMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  "success",
		"message": message,
	})
}

// SuccessToken writes a success envelope carrying a freshly issued bearer
// token, optionally with a data payload (signup returns the created user,
// login returns the token alone).
func SuccessToken(c *gin.Context, code int, token string, data interface{}) {
	body := gin.H{
		"status": "success",
		"token":  token,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

// SetTokenCookie mirrors the bearer token into an httpOnly cookie so browser
// clients do not have to manage the Authorization header themselves. The
// secure flag is only set in production.
func SetTokenCookie(c *gin.Context, token string, maxAgeSeconds int, secure bool) {
	c.SetCookie(TokenCookieName, token, maxAgeSeconds, "/", "", secure, true)
}
