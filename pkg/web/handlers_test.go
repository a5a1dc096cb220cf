package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ShardBotStudio/ShardDashGo/pkg/auth"
	"github.com/ShardBotStudio/ShardDashGo/pkg/database"
	"github.com/ShardBotStudio/ShardDashGo/pkg/discord"
	"github.com/gin-gonic/gin"
)

// stubAdapter records which sync calls a handler makes
type stubAdapter struct {
	calls []string
}

func (a *stubAdapter) record(name string) { a.calls = append(a.calls, name) }

func (a *stubAdapter) GetGuildChannels(ctx context.Context, guildID string) ([]discord.RemoteChannel, error) {
	a.record("GetGuildChannels")
	return nil, nil
}

func (a *stubAdapter) CreateGuildChannel(ctx context.Context, guildID string, params discord.ChannelParams) (*discord.RemoteChannel, error) {
	a.record("CreateGuildChannel")
	return &discord.RemoteChannel{}, nil
}

func (a *stubAdapter) UpdateGuildChannel(ctx context.Context, guildID, channelID string, params discord.ChannelParams) (*discord.RemoteChannel, error) {
	a.record("UpdateGuildChannel")
	return &discord.RemoteChannel{}, nil
}

func (a *stubAdapter) DeleteGuildChannel(ctx context.Context, guildID, channelID, reason string) error {
	a.record("DeleteGuildChannel")
	return nil
}

func (a *stubAdapter) UpdateChannelPermissions(ctx context.Context, guildID, channelID, roleID string, allow, deny int64) error {
	a.record("UpdateChannelPermissions")
	return nil
}

func (a *stubAdapter) GetGuildRoles(ctx context.Context, guildID string) ([]discord.RemoteRole, error) {
	a.record("GetGuildRoles")
	return nil, nil
}

func (a *stubAdapter) CreateGuildRole(ctx context.Context, guildID string, params discord.RoleParams) (*discord.RemoteRole, error) {
	a.record("CreateGuildRole")
	return &discord.RemoteRole{}, nil
}

func (a *stubAdapter) UpdateGuildRole(ctx context.Context, guildID, roleID string, params discord.RoleParams) (*discord.RemoteRole, error) {
	a.record("UpdateGuildRole")
	return &discord.RemoteRole{}, nil
}

func (a *stubAdapter) DeleteGuildRole(ctx context.Context, guildID, roleID string) error {
	a.record("DeleteGuildRole")
	return nil
}

func (a *stubAdapter) GetGuildRoleMembers(ctx context.Context, guildID, roleID string) ([]discord.RemoteMember, error) {
	a.record("GetGuildRoleMembers")
	return nil, nil
}

func (a *stubAdapter) BanGuildMember(ctx context.Context, guildID, userID string, params discord.BanParams) error {
	a.record("BanGuildMember")
	return nil
}

func (a *stubAdapter) UnbanGuildMember(ctx context.Context, guildID, userID string) error {
	a.record("UnbanGuildMember")
	return nil
}

// newTestAPI wires the handlers over a disconnected store, so every local
// write or lookup fails with ErrNotConnected before any Discord call
func newTestAPI(adapter discord.SyncAdapter) *API {
	return NewAPI(database.NewDatabase(), adapter,
		auth.NewJWTManager("test-secret", "sharddash"),
		auth.NewOAuthFlow("", "", ""), nil)
}

func recordedContext(method, url string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, url, nil)
	return c, w
}

func TestUnbanWritesLocallyBeforeDiscord(t *testing.T) {
	adapter := &stubAdapter{}
	api := newTestAPI(adapter)

	c, w := recordedContext("POST", "/api/guilds/g1/users/u1/unban")
	c.Params = gin.Params{{Key: "guildId", Value: "g1"}, {Key: "userId", Value: "u1"}}

	api.unbanUserHandler(c)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if len(adapter.calls) != 0 {
		t.Errorf("Discord was called before the local write: %v", adapter.calls)
	}
}

func TestSettingsRolesChecksGuildFirst(t *testing.T) {
	adapter := &stubAdapter{}
	api := newTestAPI(adapter)

	c, w := recordedContext("GET", "/api/guilds/g1/settings/roles")
	c.Params = gin.Params{{Key: "guildId", Value: "g1"}}

	api.settingsRolesHandler(c)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if len(adapter.calls) != 0 {
		t.Errorf("Discord was called before the guild lookup: %v", adapter.calls)
	}
}

func TestSettingsChannelsChecksGuildFirst(t *testing.T) {
	adapter := &stubAdapter{}
	api := newTestAPI(adapter)

	c, w := recordedContext("GET", "/api/guilds/g1/settings/channels")
	c.Params = gin.Params{{Key: "guildId", Value: "g1"}}

	api.settingsChannelsHandler(c)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if len(adapter.calls) != 0 {
		t.Errorf("Discord was called before the guild lookup: %v", adapter.calls)
	}
}

func TestServiceErrorHidesDetail(t *testing.T) {
	c, w := recordedContext("GET", "/x")
	serviceError(c, errors.New("dial tcp 10.0.0.1:27017: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	body := w.Body.String()
	if strings.Contains(body, "dial tcp") {
		t.Errorf("response leaks the internal error: %s", body)
	}
	if !strings.Contains(body, "Internal server error") {
		t.Errorf("expected a generic message, got %s", body)
	}
}

func TestServiceErrorNotFound(t *testing.T) {
	c, w := recordedContext("GET", "/x")
	serviceError(c, database.ErrNotFound)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAdapterErrorHidesDetail(t *testing.T) {
	c, w := recordedContext("POST", "/x")
	adapterError(c, "Failed to ban user", errors.New("HTTP 403 Forbidden, missing permissions"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	body := w.Body.String()
	if strings.Contains(body, "403") {
		t.Errorf("response leaks the Discord error: %s", body)
	}
	if !strings.Contains(body, "Failed to ban user") {
		t.Errorf("expected the generic message, got %s", body)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer()
	s.Engine().GET("/boom", func(c *gin.Context) {
		panic("unreachable state")
	})

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "Internal server error") {
		t.Errorf("expected a generic body, got %s", w.Body.String())
	}
}
