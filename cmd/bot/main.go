package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dopplerdeck/dopplerdeck/internal/common/clock"
	"github.com/dopplerdeck/dopplerdeck/internal/config"
	"github.com/dopplerdeck/dopplerdeck/internal/handlers/discord"
	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
	"github.com/dopplerdeck/dopplerdeck/internal/repositories/restriction"
	"github.com/dopplerdeck/dopplerdeck/internal/services/session"
	"github.com/dopplerdeck/dopplerdeck/internal/voice"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		zlog.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to Redis")
	}

	restrictionRepo, err := restriction.NewRedis(&restriction.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create restriction repository")
	}

	discordSession, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create Discord session")
	}

	node, err := lavalink.New(&lavalink.Config{
		Addr:     cfg.LavalinkAddr(),
		Password: cfg.LavalinkPassword,
		Secure:   cfg.LavalinkSecure,
		Discord:  discordSession,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create node client")
	}

	renderer := &discord.Renderer{EmbedColor: cfg.EmbedColor}

	var intro session.IntroTransport
	if cfg.IntroClipPath != "" {
		transport, err := voice.New(&voice.Config{
			Discord:  discordSession,
			ClipPath: cfg.IntroClipPath,
		})
		if err != nil {
			zlog.Fatal().Err(err).Msg("failed to create intro transport")
		}
		intro = transport
	}

	sessionService, err := session.New(&session.Config{
		Node:            node,
		RestrictionRepo: restrictionRepo,
		Notifier:        discord.NewChannelNotifier(discordSession, renderer),
		Occupancy:       discord.NewStateOccupancy(discordSession),
		Intro:           intro,
		Clock:           &clock.DefaultClock{},
		PlaylistLimit:   cfg.PlaylistLimit,
		IntroClipCap:    cfg.IntroClipCap,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create session service")
	}

	bot, err := discord.New(&discord.Config{
		Session:         discordSession,
		ApplicationID:   cfg.ApplicationID,
		GuildID:         cfg.GuildID,
		SessionService:  sessionService,
		Node:            node,
		RestrictionRepo: restrictionRepo,
		EmbedColor:      cfg.EmbedColor,
		QueuePageSize:   cfg.QueuePageSize,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		zlog.Fatal().Err(err).Msg("failed to start Discord bot")
	}

	// The node needs our gateway user id, so it connects after the bot
	if err := node.Open(); err != nil {
		zlog.Fatal().Err(err).Str("addr", cfg.LavalinkAddr()).Msg("failed to connect to audio node")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := node.Close(); err != nil {
		zlog.Warn().Err(err).Msg("error closing node connection")
	}
	if err := bot.Stop(); err != nil {
		zlog.Warn().Err(err).Msg("error stopping bot")
	}

	zlog.Info().Msg("bot has been shut down")
}
