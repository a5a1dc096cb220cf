package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Discord OAuth2 endpoints
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/api/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

const discordAPIBase = "https://discord.com/api/v10"

// DiscordUser is the identity payload returned by /users/@me
type DiscordUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Email         string `json:"email"`
}

// OAuthFlow wraps the Discord authorization-code flow used by the
// dashboard login
type OAuthFlow struct {
	config *oauth2.Config
}

// NewOAuthFlow creates an OAuthFlow for the registered application
func NewOAuthFlow(clientID, clientSecret, redirectURI string) *OAuthFlow {
	return &OAuthFlow{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"identify", "email", "guilds"},
			Endpoint:     discordEndpoint,
		},
	}
}

// AuthorizeURL returns the Discord consent URL plus the CSRF state token
// the caller must persist (cookie) and verify on callback
func (f *OAuthFlow) AuthorizeURL() (url, state string) {
	state = uuid.NewString()
	return f.config.AuthCodeURL(state), state
}

// Exchange trades an authorization code for an access token
func (f *OAuthFlow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return f.config.Exchange(ctx, code)
}

// FetchUser loads the authenticated user's identity from the Discord API
func (f *OAuthFlow) FetchUser(ctx context.Context, token *oauth2.Token) (*DiscordUser, error) {
	client := f.config.Client(ctx, token)

	resp, err := client.Get(discordAPIBase + "/users/@me")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord identity request failed: %s", resp.Status)
	}

	var user DiscordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
