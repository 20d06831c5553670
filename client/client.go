// Package client is the Go client for the dashboard's own API.
//
// The browser frontend consumes the same surface; this client exists so the
// session, guild-picker and config-editor flows are real, testable code. All
// calls take a context so a closing view can cancel its in-flight requests.
package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/musik-cafe/dashboard/types"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError is a non-OK response from the dashboard API
type APIError struct {
	Status  int
	Message string
}

func (a APIError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", a.Status, a.Message)
}

type Client struct {
	BaseURL string
	Client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
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
		var apiErr types.ApiError

		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil {
			return APIError{Status: httpResp.StatusCode}
		}

		return APIError{Status: httpResp.StatusCode, Message: apiErr.Message}
	}

	if out != nil {
		return json.NewDecoder(httpResp.Body).Decode(out)
	}

	return nil
}

// ExchangeCode resolves an oauth2 authorization code into a bearer token and
// the callers profile with the filtered guild list
func (c *Client) ExchangeCode(ctx context.Context, code string) (*types.UserLogin, error) {
	var login types.UserLogin

	err := c.do(ctx, "GET", "/api/auth/discord?code="+url.QueryEscape(code), nil, &login)

	if err != nil {
		return nil, err
	}

	return &login, nil
}

func (c *Client) GetConfig(ctx context.Context, serverID string) (*types.ServerConfig, error) {
	var resp types.ServerConfigResponse

	err := c.do(ctx, "GET", "/api/config/"+serverID, nil, &resp)

	if err != nil {
		return nil, err
	}

	return resp.Config, nil
}

func (c *Client) SaveConfig(ctx context.Context, serverID string, cfg *types.ServerConfig) (*types.ServerConfig, error) {
	var resp types.ServerConfigResponse

	err := c.do(ctx, "POST", "/api/config/"+serverID, cfg, &resp)

	if err != nil {
		return nil, err
	}

	return resp.Config, nil
}

func (c *Client) GetServerData(ctx context.Context, serverID string) (*types.ServerData, error) {
	var resp types.ServerData

	err := c.do(ctx, "GET", "/api/server/"+serverID, nil, &resp)

	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) CreateRole(ctx context.Context, serverID string, name string) (*types.GuildRole, error) {
	var resp types.CreateRoleResponse

	err := c.do(ctx, "POST", "/api/create-role/"+serverID, types.CreateRoleRequest{Name: name}, &resp)

	if err != nil {
		return nil, err
	}

	return resp.Role, nil
}
