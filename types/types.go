package types

// ApiError is the common error payload returned by all endpoints
type ApiError struct {
	Context map[string]string `json:"context,omitempty" description:"Context of the error. Usually used for validation error contexts"`
	Message string            `json:"message" description:"Message of the error"`
}

// Guild is a guild the logged-in user administers.
//
// The list a user receives at login time is pre-filtered to guilds where the
// user is owner or holds the administrator permission.
type Guild struct {
	ID          string `json:"id" description:"The ID of the guild"`
	Name        string `json:"name" description:"The name of the guild"`
	Icon        string `json:"icon" description:"The icon URL of the guild, if any"`
	Owner       bool   `json:"owner" description:"Whether the user owns this guild"`
	Permissions int64  `json:"permissions,string" description:"The user's permission bitmask in this guild"`
}

type UserProfile struct {
	ID       string  `json:"id" description:"The users ID"`
	Username string  `json:"username" description:"The users username"`
	Avatar   string  `json:"avatar" description:"The users avatar URL, if any"`
	Email    string  `json:"email,omitempty" description:"The users email, if the email scope was granted"`
	Guilds   []Guild `json:"guilds" description:"The guilds the user administers. Snapshot taken at login"`
}

// UserLogin is the response of a successful oauth2 code exchange
type UserLogin struct {
	Success bool         `json:"success"`
	Token   string       `json:"token" description:"The users Discord bearer token"`
	User    *UserProfile `json:"user" description:"The users profile, including the filtered guild list"`
}

// ServerConfig is the canonical per-guild bot configuration.
//
// DefaultVolume is always a fraction in [0, 1] here. The bot-control API
// speaks 0-100 percentages; that conversion lives in the botapi adapter and
// nowhere else.
type ServerConfig struct {
	DefaultVolume float64  `json:"defaultVolume" description:"Default playback volume as a fraction between 0 and 1"`
	DefaultPrefix string   `json:"defaultPrefix" description:"Command prefix, 1-5 characters"`
	DJRoles       []string `json:"djRoles" description:"Role IDs allowed to control playback"`
	MusicChannels []string `json:"musicChannels" description:"Text channel IDs where commands are allowed. Empty means all"`
	VoiceChannels []string `json:"voiceChannels" description:"Voice channel IDs the bot may join. Empty means all"`
}

const (
	ChannelTypeText  = "text"
	ChannelTypeVoice = "voice"
)

type GuildChannel struct {
	ID   string `json:"id" description:"The ID of the channel"`
	Name string `json:"name" description:"The name of the channel"`
	Type string `json:"type" description:"Either 'text' or 'voice'"`
}

type GuildRole struct {
	ID   string `json:"id" description:"The ID of the role"`
	Name string `json:"name" description:"The name of the role"`
}

// ServerData is the live channel/role catalog of a guild, fetched fresh per
// config-editor visit. Never cached
type ServerData struct {
	Success  bool           `json:"success"`
	Channels []GuildChannel `json:"channels" description:"The guilds channels"`
	Roles    []GuildRole    `json:"roles" description:"The guilds roles"`
}

type ServerConfigResponse struct {
	Success bool          `json:"success"`
	Config  *ServerConfig `json:"config" description:"The guilds bot configuration"`
}

type CreateRoleRequest struct {
	Name string `json:"name" validate:"required" msg:"A role name is required" description:"The name of the role to create"`
}

type CreateRoleResponse struct {
	Success bool       `json:"success"`
	Role    *GuildRole `json:"role" description:"The created role"`
}
