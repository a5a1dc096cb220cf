package web

import (
	"net/http"

	"github.com/ShardBotStudio/ShardDashGo/pkg/auth"
	"github.com/gin-gonic/gin"
)

const stateCookie = "oauth_state"

// authURLHandler issues the Discord consent URL plus a CSRF state cookie
func (api *API) authURLHandler(c *gin.Context) {
	url, state := api.OAuth.AuthorizeURL()
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type loginRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
}

// loginHandler trades an authorization code for a session token
func (api *API) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code or state"})
		return
	}

	expectedState, err := c.Cookie(stateCookie)
	if err != nil || expectedState == "" || expectedState != req.State {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	token, err := api.OAuth.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization code rejected"})
		return
	}

	identity, err := api.OAuth.FetchUser(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to load Discord identity"})
		return
	}

	user, err := api.Users.UpsertFromLogin(c.Request.Context(),
		identity.ID, identity.Username, identity.Email, identity.Avatar)
	if err != nil {
		serviceError(c, err)
		return
	}

	session, err := api.JWT.Issue(user.DiscordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": session,
		"user":  user.Profile(),
	})
}

// meHandler returns the authenticated user's profile
func (api *API) meHandler(c *gin.Context) {
	user, err := api.Users.FindByDiscordID(c.Request.Context(), auth.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Profile()})
}

// logoutHandler clears the state cookie. Session tokens are stateless, so
// the client simply drops its copy.
func (api *API) logoutHandler(c *gin.Context) {
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
