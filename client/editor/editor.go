// Package editor implements the per-visit state machine of the server
// configuration view: loading the config and the channel/role catalog,
// draft-and-commit multi-select editing, role creation and saving.
package editor

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/musik-cafe/dashboard/types"

	"go.uber.org/zap"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// API is the slice of the dashboard API the editor needs. *client.Client
// satisfies it
type API interface {
	GetConfig(ctx context.Context, serverID string) (*types.ServerConfig, error)
	SaveConfig(ctx context.Context, serverID string, cfg *types.ServerConfig) (*types.ServerConfig, error)
	GetServerData(ctx context.Context, serverID string) (*types.ServerData, error)
	CreateRole(ctx context.Context, serverID string, name string) (*types.GuildRole, error)
}

var (
	ErrNoServerID    = errors.New("no server id provided")
	ErrInvalidPrefix = errors.New("Prefix must be 1-5 characters")
	ErrInvalidRole   = errors.New("Invalid role name")
)

// Success feedback fades at 3s and fully clears at 4s. Vars so tests can
// shrink them
var (
	SavedFadeDelay  = 3 * time.Second
	SavedClearDelay = 4 * time.Second
)

type Editor struct {
	mu sync.Mutex

	api      API
	serverID string
	logger   *zap.Logger

	state      State
	saving     bool
	saved      bool
	fading     bool
	saveErr    string
	catalogErr error

	config  types.ServerConfig
	catalog types.ServerData

	// saveGen invalidates banner timers from a previous save cycle
	saveGen    int
	fadeTimer  *time.Timer
	clearTimer *time.Timer
}

func New(api API, serverID string, logger *zap.Logger) (*Editor, error) {
	if serverID == "" {
		return nil, ErrNoServerID
	}

	return &Editor{
		api:      api,
		serverID: serverID,
		logger:   logger,
		state:    StateLoading,
	}, nil
}

// Load fetches the config and the channel/role catalog. A config failure is
// fatal to the visit; a catalog failure is logged and editing continues with
// ids shown unresolved
func (e *Editor) Load(ctx context.Context) error {
	config, err := e.api.GetConfig(ctx, e.serverID)

	if err != nil {
		e.mu.Lock()
		e.state = StateError
		e.mu.Unlock()
		return err
	}

	catalog, catalogErr := e.api.GetServerData(ctx, e.serverID)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.config = *config
	e.config.DefaultVolume = NormalizeVolume(e.config.DefaultVolume)

	if catalogErr != nil {
		e.logger.Warn("Failed to load server catalog", zap.Error(catalogErr), zap.String("serverId", e.serverID))
		e.catalogErr = catalogErr
	} else {
		e.catalog = *catalog
	}

	e.state = StateReady
	return nil
}

// NormalizeVolume maps a loaded volume to the internal 0-1 fraction. Values
// above 1 are 0-100 percentages from older configs
func NormalizeVolume(v float64) float64 {
	if v > 1 {
		return v / 100
	}

	return v
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Saved reports whether the success banner shows and whether it has begun
// fading
func (e *Editor) Saved() (visible bool, fading bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saved, e.fading
}

// SaveError is the persistent error banner. It never auto-clears
func (e *Editor) SaveError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveErr
}

// CatalogError reports the non-fatal catalog load failure, if any
func (e *Editor) CatalogError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalogErr
}

func (e *Editor) Config() types.ServerConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

func (e *Editor) Catalog() types.ServerData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog
}

// VolumePercent is the user-facing percentage label
func (e *Editor) VolumePercent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return int(math.Round(e.config.DefaultVolume * 100))
}

func (e *Editor) SetVolume(fraction float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.DefaultVolume = fraction
}

func (e *Editor) SetPrefix(prefix string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.DefaultPrefix = prefix
}

// RoleName resolves a role id to its catalog name, or the raw id if the
// catalog has no entry for it
func (e *Editor) RoleName(id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, role := range e.catalog.Roles {
		if role.ID == id {
			return role.Name
		}
	}

	return id
}

// ChannelName resolves a channel id to its catalog name, or the raw id
func (e *Editor) ChannelName(id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, channel := range e.catalog.Channels {
		if channel.ID == id {
			return channel.Name
		}
	}

	return id
}

// CreateRole creates a role through the bot, appends it to the in-memory
// catalog and adds it to the drafts DJ roles. It does not save; the user
// must still hit Save
func (e *Editor) CreateRole(ctx context.Context, name string) (*types.GuildRole, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, ErrInvalidRole
	}

	role, err := e.api.CreateRole(ctx, e.serverID, name)

	if err != nil {
		e.mu.Lock()
		e.saveErr = "Failed to create role"
		e.mu.Unlock()
		return nil, err
	}

	e.mu.Lock()
	e.catalog.Roles = append(e.catalog.Roles, *role)
	e.config.DJRoles = append(e.config.DJRoles, role.ID)
	e.mu.Unlock()

	return role, nil
}

// Save validates the prefix, then performs a full-replace save. Validation
// failure never reaches the network. A save may fire at any time regardless
// of the banner fade state
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()

	// Runes, not bytes: multibyte prefixes count by character
	if n := utf8.RuneCountInString(e.config.DefaultPrefix); n < 1 || n > 5 {
		e.saveErr = ErrInvalidPrefix.Error()
		e.mu.Unlock()
		return ErrInvalidPrefix
	}

	// A new save cycle invalidates the previous banner timers
	e.stopTimersLocked()
	e.saveGen++
	gen := e.saveGen

	e.saving = true
	e.saved = false
	e.fading = false

	config := e.config
	e.mu.Unlock()

	saved, err := e.api.SaveConfig(ctx, e.serverID, &config)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.saving = false

	if err != nil {
		e.saveErr = "Failed to save configuration"
		return err
	}

	e.config = *saved
	e.config.DefaultVolume = NormalizeVolume(e.config.DefaultVolume)
	e.saveErr = ""
	e.saved = true

	e.fadeTimer = time.AfterFunc(SavedFadeDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.saveGen != gen {
			return
		}

		e.fading = true
	})

	e.clearTimer = time.AfterFunc(SavedClearDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.saveGen != gen {
			return
		}

		e.saved = false
		e.fading = false
	})

	return nil
}

// Close cancels the banner timers. Views call this on teardown
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimersLocked()
	e.saveGen++
}

func (e *Editor) stopTimersLocked() {
	if e.fadeTimer != nil {
		e.fadeTimer.Stop()
		e.fadeTimer = nil
	}

	if e.clearTimer != nil {
		e.clearTimer.Stop()
		e.clearTimer = nil
	}
}
