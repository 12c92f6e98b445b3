package bot

import (
	"fmt"

	"logia/bot/features/attendance"
	"logia/bot/features/brothers"
	"logia/bot/features/meetings"
	"logia/bot/features/overview"
	"logia/bot/features/positions"
	"logia/bot/features/reports"
	"logia/export"
	"logia/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token         string
	GuildID       string
	Lodge         export.Lodge
	TempleAddress string
}

// Services groups the application services the bot commands call into
type Services struct {
	Brothers   service.BrotherService
	Meetings   service.MeetingService
	Attendance service.AttendanceService
	Positions  service.PositionService
	Overview   service.OverviewService
}

// Bot manages the Discord bot and all feature modules
type Bot struct {
	// Core components
	config   Config
	session  *discordgo.Session
	services Services

	// Feature modules
	attendance *attendance.Feature
	brothers   *brothers.Feature
	meetings   *meetings.Feature
	positions  *positions.Feature
	overview   *overview.Feature
	reports    *reports.Feature
}

// New creates a new bot instance with all features
func New(config Config, services Services) (*Bot, error) {
	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	// Create bot instance
	bot := &Bot{
		config:   config,
		session:  dg,
		services: services,
	}

	// Create feature modules
	bot.attendance = attendance.NewFeature(services.Attendance, services.Meetings)
	bot.brothers = brothers.NewFeature(services.Brothers)
	bot.meetings = meetings.NewFeature(services.Meetings, config.Lodge, config.TempleAddress)
	bot.positions = positions.NewFeature(services.Positions)
	bot.overview = overview.NewFeature(services.Overview)
	bot.reports = reports.NewFeature(services.Attendance, services.Brothers, config.Lodge)

	// Register handlers
	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Bot is connected to Discord")
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.routeCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	}
}

func (b *Bot) routeCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	log.WithField("command", name).Debug("Handling command")

	switch name {
	case "asistencias", "asistencia":
		b.attendance.HandleCommand(s, i)
	case "hermanos":
		b.brothers.HandleCommand(s, i)
	case "tenidas", "convocatoria":
		b.meetings.HandleCommand(s, i)
	case "cuadro", "cargo":
		b.positions.HandleCommand(s, i)
	case "resumen", "buscar":
		b.overview.HandleCommand(s, i)
	case "exportar":
		b.reports.HandleCommand(s, i)
	default:
		log.WithField("command", name).Warn("Unknown command")
	}
}
