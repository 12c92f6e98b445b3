package cmd

import (
	"context"
	"fmt"
	"time"

	"logia/bot"
	"logia/config"
	"logia/infrastructure"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting logia bot...")

	// Load configuration
	cfg := config.Get()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	// Forward committed events to NATS when configured
	if cfg.NATSServers != "" {
		natsClient, err := startEventForwarding(ctx, cfg.NATSServers, a)
		if err != nil {
			log.WithError(err).Warn("Event forwarding disabled")
		} else {
			defer natsClient.Close()
		}
	}

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:         cfg.DiscordToken,
		GuildID:       cfg.GuildID,
		Lodge:         lodgeFromConfig(cfg),
		TempleAddress: cfg.TempleAddress,
	}
	discordBot, err := bot.New(botConfig, a.services)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	return nil
}

// startEventForwarding connects to NATS, ensures the lodge stream and
// subscribes the forwarder to the event bus
func startEventForwarding(ctx context.Context, servers string, a *app) (*infrastructure.NATSClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	natsClient := infrastructure.NewNATSClient(servers)
	if err := natsClient.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := infrastructure.EnsureLodgeEventStream(natsClient, mapper); err != nil {
		natsClient.Close()
		return nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}

	infrastructure.NewNATSEventForwarder(natsClient, mapper).Attach(a.eventBus)
	log.WithField("servers", servers).Info("Forwarding lodge events to NATS")

	return natsClient, nil
}
