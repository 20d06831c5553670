// Package botapi is the client for the bot-control API that owns all
// persisted per-guild configuration.
//
// The bot-control API speaks snake_case fields and 0-100 integer volumes.
// This package is the only place that wire shape exists; everything above it
// uses types.ServerConfig with a 0-1 fractional volume.
package botapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/musik-cafe/dashboard/types"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned when the bot-control API responds with a non-OK
// status. The status is kept so proxy endpoints can mirror it to the caller.
type StatusError struct {
	Status int
}

func (s StatusError) Error() string {
	return fmt.Sprintf("bot api returned status %d", s.Status)
}

type wireConfig struct {
	DefaultVolume float64  `json:"default_volume"`
	DefaultPrefix string   `json:"default_prefix"`
	DJRoles       []string `json:"dj_roles"`
	MusicChannels []string `json:"music_channels"`
	VoiceChannels []string `json:"voice_channels"`
}

type wireServerData struct {
	Channels []types.GuildChannel `json:"channels"`
	Roles    []types.GuildRole    `json:"roles"`
}

// fromWire normalizes the upstream config to the canonical shape. Volumes
// above 1 are 0-100 percentages from older bot versions
func fromWire(w *wireConfig) *types.ServerConfig {
	volume := w.DefaultVolume

	if volume > 1 {
		volume = volume / 100
	}

	cfg := &types.ServerConfig{
		DefaultVolume: volume,
		DefaultPrefix: w.DefaultPrefix,
		DJRoles:       w.DJRoles,
		MusicChannels: w.MusicChannels,
		VoiceChannels: w.VoiceChannels,
	}

	if cfg.DJRoles == nil {
		cfg.DJRoles = []string{}
	}

	if cfg.MusicChannels == nil {
		cfg.MusicChannels = []string{}
	}

	if cfg.VoiceChannels == nil {
		cfg.VoiceChannels = []string{}
	}

	return cfg
}

func toWire(c *types.ServerConfig) *wireConfig {
	w := &wireConfig{
		DefaultVolume: math.Round(c.DefaultVolume * 100),
		DefaultPrefix: c.DefaultPrefix,
		DJRoles:       c.DJRoles,
		MusicChannels: c.MusicChannels,
		VoiceChannels: c.VoiceChannels,
	}

	if w.DJRoles == nil {
		w.DJRoles = []string{}
	}

	if w.MusicChannels == nil {
		w.MusicChannels = []string{}
	}

	if w.VoiceChannels == nil {
		w.VoiceChannels = []string{}
	}

	return w
}

// DefaultConfig is what a guild gets before it has ever been configured
func DefaultConfig() *types.ServerConfig {
	return &types.ServerConfig{
		DefaultVolume: 1,
		DefaultPrefix: ".",
		DJRoles:       []string{},
		MusicChannels: []string{},
		VoiceChannels: []string{},
	}
}

type Client struct {
	BaseURL string
	Logger  *zap.Logger
	Client  *http.Client
}

func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		Logger:  logger,
		Client:  &http.Client{},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var buf *bytes.Buffer

	if body != nil {
		bodyBytes, err := json.Marshal(body)

		if err != nil {
			return err
		}

		buf = bytes.NewBuffer(bodyBytes)
	} else {
		buf = &bytes.Buffer{}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, buf)

	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.Client.Do(httpReq)

	if err != nil {
		return err
	}

	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return StatusError{Status: httpResp.StatusCode}
	}

	if out != nil {
		err = json.NewDecoder(httpResp.Body).Decode(out)

		if err != nil {
			return err
		}
	}

	return nil
}

// GetConfig fetches a guilds configuration. A 404 from the bot-control API
// means the guild was never configured and yields the defaults, not an error
func (c *Client) GetConfig(ctx context.Context, serverID string) (*types.ServerConfig, error) {
	var w wireConfig

	err := c.do(ctx, "GET", "/config/"+serverID, nil, &w)

	if err != nil {
		var serr StatusError

		if errors.As(err, &serr) && serr.Status == http.StatusNotFound {
			return DefaultConfig(), nil
		}

		return nil, err
	}

	return fromWire(&w), nil
}

// SaveConfig performs a full replace of a guilds configuration
func (c *Client) SaveConfig(ctx context.Context, serverID string, cfg *types.ServerConfig) (*types.ServerConfig, error) {
	var w wireConfig

	err := c.do(ctx, "POST", "/config/"+serverID, toWire(cfg), &w)

	if err != nil {
		return nil, err
	}

	return fromWire(&w), nil
}

func (c *Client) GetServerData(ctx context.Context, serverID string) (*types.ServerData, error) {
	var w wireServerData

	err := c.do(ctx, "GET", "/server/"+serverID, nil, &w)

	if err != nil {
		return nil, err
	}

	data := &types.ServerData{
		Success:  true,
		Channels: w.Channels,
		Roles:    w.Roles,
	}

	if data.Channels == nil {
		data.Channels = []types.GuildChannel{}
	}

	if data.Roles == nil {
		data.Roles = []types.GuildRole{}
	}

	return data, nil
}

func (c *Client) CreateRole(ctx context.Context, serverID string, name string) (*types.GuildRole, error) {
	var role types.GuildRole

	err := c.do(ctx, "POST", "/create-role/"+serverID, map[string]string{"name": name}, &role)

	if err != nil {
		return nil, err
	}

	return &role, nil
}
