package config

type Config struct {
	DiscordAuth DiscordAuth `yaml:"discord_auth" validate:"required"`
	BotAPI      BotAPI      `yaml:"bot_api" validate:"required"`
	Meta        Meta        `yaml:"meta" validate:"required"`
}

type DiscordAuth struct {
	ClientID     string `yaml:"client_id" comment:"Discord Client ID" validate:"required"`
	ClientSecret string `yaml:"client_secret" comment:"Discord Client Secret" validate:"required"`
	RedirectURI  string `yaml:"redirect_uri" default:"https://www.musik-cafe.site/auth/callback" comment:"OAuth2 Redirect URI" validate:"required,httporhttps"`
	APIUrl       string `yaml:"api_url" default:"https://discord.com/api/v10" comment:"Discord API base URL" validate:"required,httporhttps"`
}

type BotAPI struct {
	Url string `yaml:"url" default:"http://localhost:10340" comment:"Bot-control API base URL" validate:"required,httporhttps"`
}

type Meta struct {
	Port                 int    `yaml:"port" default:"8019" comment:"Port to run the server on" validate:"required"`
	RedisURL             string `yaml:"redis_url" default:"redis://localhost:6379" comment:"Redis URL" validate:"required"`
	FrontendURL          string `yaml:"frontend_url" default:"https://www.musik-cafe.site" comment:"Frontend URL" validate:"required,httporhttps"`
	WebDisableRatelimits bool   `yaml:"web_disable_ratelimits" comment:"Disable ratelimits for the web server"`
}
