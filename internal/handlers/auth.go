package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/requestdata"
	"github.com/jobdam/jobdam-backend/internal/services"
	"github.com/jobdam/jobdam-backend/internal/types"
)

const refreshCookieName = "refresh_token"
const refreshCookiePath = "/auth/reissue"

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) setTokenPair(c *gin.Context, pair *services.TokenPair) {
	c.Header("Authorization", "Bearer "+pair.AccessToken)
	maxAge := int(ah.authService.GetRefreshTTL().Seconds())
	c.SetCookie(refreshCookieName, pair.RefreshToken, maxAge, refreshCookiePath, "", true, true)
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
		RealName string `json:"realName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	user := types.User{
		Name:     req.Name,
		Password: req.Password,
		RealName: req.RealName,
	}
	if err := ah.authService.RegisterUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "name": user.Name})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	pair, err := ah.authService.LoginUser(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	ah.setTokenPair(c, pair)
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Reissue(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		respondError(c, apierr.Unauthorized("refresh token is missing"))
		return
	}
	pair, err := ah.authService.ReissueTokens(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	ah.setTokenPair(c, pair)
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	if err := ah.authService.LogoutUser(c.Request.Context(), rd.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ah *AuthHandler) Profile(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	user, err := ah.authService.GetProfile(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ah *AuthHandler) UpdateInterests(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	var req struct {
		Interests string `json:"interests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	user, err := ah.authService.UpdateInterests(c.Request.Context(), rd.UserID, req.Interests)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
