package main

import (
	"context"
	"fmt"

	"fambalance/internal/catalog"
	"fambalance/internal/config"
	"fambalance/internal/models"
	"fambalance/internal/recommend"
	"fambalance/internal/repository"
	"fambalance/internal/service"
	"fambalance/internal/store"

	"github.com/rs/zerolog"
)

// app holds the wired services for one CLI invocation
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	catalog *catalog.Catalog
	close   func() error

	auth       *service.AuthService
	mood       *service.MoodService
	mission    *service.MissionService
	journal    *service.JournalService
	connection *service.ConnectionService
	report     *service.ReportService
	backup     *service.BackupService
}

// openApp opens the configured store and wires every service on top of it
func openApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	s, closeFn, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a, err := wireApp(ctx, cfg, log, s)
	if err != nil {
		closeFn()
		return nil, err
	}
	a.close = closeFn
	return a, nil
}

func wireApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, s store.Store) (*app, error) {
	cat := catalog.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(s)
	familyRepo := repository.NewFamilyRepository(s)
	sessionRepo := repository.NewSessionRepository(s)
	moodRepo := repository.NewMoodRepository(s)
	userMissionRepo := repository.NewUserMissionRepository(s)
	journalRepo := repository.NewJournalRepository(s)
	connectionRepo := repository.NewConnectionRepository(s)
	reportRepo := repository.NewReportRepository(s)

	emailService, err := service.NewEmailService(ctx, cfg.SES.AWSRegion, cfg.SES.FromEmail, cfg.SES.FromName, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email service: %w", err)
	}

	// a nil *GeminiClient must not end up inside the interface
	var recommender recommend.Recommender
	if cfg.AI.Enabled() {
		gemini, err := recommend.NewGeminiClient(ctx, cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("AI recommendations disabled")
		} else {
			recommender = gemini
		}
	}

	authService := service.NewAuthService(userRepo, familyRepo, sessionRepo, emailService, nil, log)
	authService.TrialDays = cfg.TrialDays
	authService.BirthdayWindowDays = cfg.BirthdayWindowDays
	if len(cat.DefaultAvatars) > 0 {
		authService.DefaultAvatar = cat.DefaultAvatars[0]
	}

	missionService := service.NewMissionService(cat, userRepo, familyRepo, moodRepo, userMissionRepo, nil, log)
	missionService.FreeMissionLimit = cfg.FreeMissionLimit

	connectionService := service.NewConnectionService(connectionRepo, userRepo, cat.ConnectionSuggestions, service.RandomPicker, nil, log)
	connectionService.Reward = cfg.ConnectionReward
	connectionService.Mode = service.PointsMode(cfg.ConnectionPointsMode)

	reportService := service.NewReportService(reportRepo, moodRepo, familyRepo, userRepo, recommender, cat.FallbackRecommendations, nil, log)
	reportService.WindowDays = cfg.ReportWindowDays

	return &app{
		cfg:        cfg,
		log:        log,
		catalog:    cat,
		close:      func() error { return nil },
		auth:       authService,
		mood:       service.NewMoodService(moodRepo, nil, log),
		mission:    missionService,
		journal:    service.NewJournalService(journalRepo, nil, log),
		connection: connectionService,
		report:     reportService,
		backup:     service.NewBackupService(s, nil, log),
	}, nil
}

// session resolves the logged-in user and family
func (a *app) session(ctx context.Context) (*models.User, *models.Family, error) {
	return a.auth.CurrentSession(ctx)
}
