package cmd

import (
	"context"
	"fmt"

	"logia/bot"
	"logia/config"
	"logia/database"
	"logia/events"
	"logia/export"
	"logia/repository"
	"logia/service"

	log "github.com/sirupsen/logrus"
)

// app holds the shared components built from configuration
type app struct {
	db       *database.DB
	eventBus *events.Bus
	services bot.Services
}

// newApp connects to the database and builds the services
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	return &app{
		db:       db,
		eventBus: eventBus,
		services: bot.Services{
			Brothers:   service.NewBrotherService(uowFactory),
			Meetings:   service.NewMeetingService(uowFactory),
			Attendance: service.NewAttendanceService(uowFactory),
			Positions:  service.NewPositionService(uowFactory),
			Overview:   service.NewOverviewService(uowFactory, cfg.UpcomingLimit),
		},
	}, nil
}

func (a *app) close() {
	log.Info("Closing database connection...")
	a.db.Close()
}

// lodgeFromConfig collects the lodge details printed on reports and letters
func lodgeFromConfig(cfg *config.Config) export.Lodge {
	return export.Lodge{
		Name:             cfg.LodgeName,
		Number:           cfg.LodgeNumber,
		Installed:        cfg.LodgeInstalled,
		GrandLodge:       cfg.GrandLodge,
		Rite:             cfg.Rite,
		Orient:           cfg.Orient,
		WorshipfulMaster: cfg.WorshipfulMaster,
		Secretary:        cfg.Secretary,
		MeetingTime:      cfg.MeetingTime,
	}
}
