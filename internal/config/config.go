package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

// Config holds all runtime configuration for the bot and the session
// engine. Values come from the environment, optionally seeded from a
// .env file.
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`
	// GuildID scopes command registration to one guild during development
	GuildID string `env:"GUILD_ID"`

	LavalinkHost     string `env:"LAVALINK_HOST" envDefault:"localhost"`
	LavalinkPort     int    `env:"LAVALINK_PORT" envDefault:"2333"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD" envDefault:"youshallnotpass"`
	LavalinkSecure   bool   `env:"LAVALINK_SECURE" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	EmbedColor int `env:"EMBED_COLOR" envDefault:"9160424"` // 0x8BC6E8

	// IntroClipPath points at the DCA-encoded clip played over the
	// native transport before a guild's first node connection. Empty
	// disables the intro entirely.
	IntroClipPath string        `env:"INTRO_CLIP_PATH"`
	IntroClipCap  time.Duration `env:"INTRO_CLIP_CAP" envDefault:"10s"`

	PlaylistLimit int `env:"PLAYLIST_LIMIT" envDefault:"100"`
	QueuePageSize int `env:"QUEUE_PAGE_SIZE" envDefault:"10"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zlog.Debug().Msg("no .env file found, using system environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// LavalinkAddr returns the host:port of the audio node
func (c *Config) LavalinkAddr() string {
	return fmt.Sprintf("%s:%d", c.LavalinkHost, c.LavalinkPort)
}
