// Package discordapi performs the oauth2 authorization-code exchange against
// the Discord REST API and derives the callers admin-accessible guild list.
package discordapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/musik-cafe/dashboard/state"
	"github.com/musik-cafe/dashboard/types"

	"github.com/bwmarrin/discordgo"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UpstreamError is a failed call to Discord itself. The exchange endpoint
// maps these to a 400 with the message as-is; anything else is a 500
type UpstreamError struct {
	Message string
}

func (u UpstreamError) Error() string {
	return u.Message
}

// IconURL resolves a Discord icon hash to a CDN URL, preferring the animated
// variant for a_ prefixed hashes.
//
// https://github.com/bwmarrin/discordgo/blob/master/util.go#L111
func IconURL(iconHash, staticIconURL, animatedIconURL, size string) string {
	var URL string
	if iconHash == "" {
		return ""
	} else if strings.HasPrefix(iconHash, "a_") {
		URL = animatedIconURL
	} else {
		URL = staticIconURL
	}

	if size != "" {
		return URL + "?size=" + size
	}
	return URL
}

type oauthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
}

// Exchange trades an oauth2 authorization code for a bearer token, fetches
// the callers profile and guild list and filters the guilds down to those
// where the caller is owner or holds the administrator permission.
//
// Every upstream call is single-attempt; the first failure fails the whole
// exchange.
func Exchange(ctx context.Context, code string) (*types.UserLogin, error) {
	httpResp, err := http.PostForm(state.Config.DiscordAuth.APIUrl+"/oauth2/token", url.Values{
		"client_id":     {state.Config.DiscordAuth.ClientID},
		"client_secret": {state.Config.DiscordAuth.ClientSecret},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {state.Config.DiscordAuth.RedirectURI},
	})

	if err != nil {
		state.Logger.Error("Failed to send oauth2 token request to discord", zap.Error(err))
		return nil, UpstreamError{Message: "Failed to get token from Discord"}
	}

	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)

	if err != nil {
		state.Logger.Error("Failed to read oauth2 token response from discord", zap.Error(err))
		return nil, err
	}

	if httpResp.StatusCode != http.StatusOK {
		state.Logger.Error("Discord token endpoint returned an error", zap.Int("status", httpResp.StatusCode), zap.ByteString("body", body))
		return nil, UpstreamError{Message: "Failed to get token from Discord"}
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}

	err = json.Unmarshal(body, &token)

	if err != nil {
		state.Logger.Error("Failed to parse oauth2 token response from discord", zap.Error(err))
		return nil, err
	}

	if token.AccessToken == "" {
		state.Logger.Error("No access token provided by discord")
		return nil, UpstreamError{Message: "Failed to get token from Discord"}
	}

	var user oauthUser

	err = bearerGet(ctx, token.AccessToken, "/users/@me", &user)

	if err != nil {
		state.Logger.Error("Failed to fetch user profile from discord", zap.Error(err))
		return nil, UpstreamError{Message: "Failed to get user info"}
	}

	var guilds []*discordgo.UserGuild

	err = bearerGet(ctx, token.AccessToken, "/users/@me/guilds", &guilds)

	if err != nil {
		state.Logger.Error("Failed to fetch user guilds from discord", zap.Error(err))
		return nil, UpstreamError{Message: "Failed to get guilds"}
	}

	return &types.UserLogin{
		Success: true,
		Token:   token.AccessToken,
		User: &types.UserProfile{
			ID:       user.ID,
			Username: user.Username,
			Avatar:   IconURL(user.Avatar, discordgo.EndpointUserAvatar(user.ID, user.Avatar), discordgo.EndpointUserAvatarAnimated(user.ID, user.Avatar), "128"),
			Email:    user.Email,
			Guilds:   AdminGuilds(guilds),
		},
	}, nil
}

// AdminGuilds keeps only the guilds where the user is owner or has the
// administrator bit set
func AdminGuilds(guilds []*discordgo.UserGuild) []types.Guild {
	adminGuilds := []types.Guild{}

	for _, guild := range guilds {
		if !guild.Owner && (guild.Permissions&discordgo.PermissionAdministrator) != discordgo.PermissionAdministrator {
			continue
		}

		adminGuilds = append(adminGuilds, types.Guild{
			ID:          guild.ID,
			Name:        guild.Name,
			Icon:        IconURL(guild.Icon, discordgo.EndpointGuildIcon(guild.ID, guild.Icon), discordgo.EndpointGuildIconAnimated(guild.ID, guild.Icon), "64"),
			Owner:       guild.Owner,
			Permissions: guild.Permissions,
		})
	}

	return adminGuilds
}

func bearerGet(ctx context.Context, token string, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", state.Config.DiscordAuth.APIUrl+path, nil)

	if err != nil {
		return err
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)

	cli := &http.Client{}

	httpResp, err := cli.Do(httpReq)

	if err != nil {
		return err
	}

	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return UpstreamError{Message: "Discord returned status " + httpResp.Status}
	}

	return json.NewDecoder(httpResp.Body).Decode(out)
}
