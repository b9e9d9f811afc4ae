package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roomrent/dto"
	"roomrent/middleware"
	"roomrent/response"
	"roomrent/services"
	"roomrent/validator"
)

type AuthController struct {
	auth         *services.AuthService
	tokenTTL     time.Duration
	cookieSecure bool
}

func NewAuthController(auth *services.AuthService, tokenTTL time.Duration, cookieSecure bool) *AuthController {
	return &AuthController{auth: auth, tokenTTL: tokenTTL, cookieSecure: cookieSecure}
}

func (a *AuthController) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return
	}
	if err := validator.ValidateRegister(&input); err != nil {
		response.FromError(c, err)
		return
	}

	res, err := a.auth.Register(c.Request.Context(), &input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	a.setTokenCookie(c, res.Token, int(a.tokenTTL.Seconds()))
	response.Created(c, res)
}

func (a *AuthController) Signin(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return
	}

	res, err := a.auth.SignIn(c.Request.Context(), &input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	a.setTokenCookie(c, res.Token, int(a.tokenTTL.Seconds()))
	response.Success(c, res)
}

// Signout clears the cookie; it needs no token
func (a *AuthController) Signout(c *gin.Context) {
	a.setTokenCookie(c, "", -1)
	response.Success(c, gin.H{"message": "signed out"})
}

func (a *AuthController) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", a.cookieSecure, true)
}
