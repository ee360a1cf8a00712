package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"lab-timesheet/internal/config"
	"lab-timesheet/internal/database"
	"lab-timesheet/internal/dialog"
	"lab-timesheet/internal/llm"
	"lab-timesheet/internal/model"
	"lab-timesheet/internal/pdf"
	"lab-timesheet/internal/services"
	"lab-timesheet/internal/storage"
	"lab-timesheet/internal/telegram"
	"lab-timesheet/internal/utils"
)

type Application struct {
	config     *config.Config
	backend    *backend
	bot        *telegram.Bot
	services   *services.ServiceManager
	scheduler  *cronScheduler
	cancelFunc context.CancelFunc
	ctx        context.Context
}

// backend is the persistence chosen by configuration.
type backend struct {
	persistence services.Persistence
	reminders   services.ReminderStore
	db          *database.Database
}

func openBackend(cfg *config.Config) (*backend, error) {
	switch cfg.Database.Backend {
	case config.BackendJSON:
		return &backend{persistence: storage.NewFileStore(cfg.Database.JSONPath)}, nil
	default:
		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		repo := database.NewRepository(db)
		return &backend{persistence: repo, reminders: repo, db: db}, nil
	}
}

func (b *backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func serviceOptions(cfg *config.Config, b *backend, location *time.Location) services.Options {
	opts := services.Options{
		Persistence: b.persistence,
		Reminders:   b.reminders,
		Renderer:    pdf.NewRenderer(cfg.Timesheet.Title),
		Profile:     model.Profile{Name: cfg.Student.Name, ID: cfg.Student.ID},
		Location:    location,
	}
	if cfg.Anthropic.APIKey != "" {
		opts.Summarizer = llm.NewAnthropic(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.BaseURL, nil)
	} else {
		log.Println("ℹ️ ANTHROPIC_API_KEY not set, timesheets use the fallback summary")
	}
	return opts
}

// OpenServices builds the store and timesheet services without the bot,
// for one-shot commands. The returned func releases the backend.
func OpenServices(cfg *config.Config) (*services.ServiceManager, func(), error) {
	b, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}

	sm := services.NewServiceManager(serviceOptions(cfg, b, utils.LoadLocation(cfg.Timezone)))
	return sm, func() {
		if err := b.Close(); err != nil {
			log.Printf("⚠️ Error closing database: %v", err)
		}
	}, nil
}

func New(cfg *config.Config) (*Application, error) {
	if err := cfg.RequireTelegram(); err != nil {
		return nil, err
	}

	location := utils.LoadLocation(cfg.Timezone)
	b, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}

	scheduler := newCronScheduler(location)
	opts := serviceOptions(cfg, b, location)
	opts.Scheduler = scheduler
	serviceManager := services.NewServiceManager(opts)

	machine := dialog.New(dialog.Deps{
		Store:      serviceManager.Activities,
		Timesheets: serviceManager.Timesheet,
		Reminders:  serviceManager.Reminders,
		Location:   location,
	})

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, machine)
	if err != nil {
		b.Close()
		return nil, err
	}

	serviceManager.SetNotificationSender(bot)
	ctx, cancel := context.WithCancel(context.Background())

	return &Application{
		config:     cfg,
		backend:    b,
		bot:        bot,
		services:   serviceManager,
		scheduler:  scheduler,
		cancelFunc: cancel,
		ctx:        ctx,
	}, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Starting application...")

	restored, err := a.services.Reminders.Restore(a.ctx)
	if err != nil {
		return fmt.Errorf("starting application: %w", err)
	}
	a.scheduler.Start()

	go a.bot.Start(a.ctx)

	if a.config.Telegram.ChatID != 0 {
		a.sendWelcomeMessage()
	}

	log.Printf("✅ Application started. Bot: @%s, reminders restored: %d", a.bot.GetUsername(), restored)
	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Stopping application...")

	a.cancelFunc()
	a.scheduler.Stop()

	if err := a.backend.Close(); err != nil {
		log.Printf("⚠️ Error closing database: %v", err)
	}

	log.Println("✅ Application stopped")
	return nil
}

func (a *Application) sendWelcomeMessage() {
	message := "🧪 <b>Lab Timesheet</b> is running.\n\nSend what you worked on today, or /help for the menu."
	if err := a.bot.SendText(a.config.Telegram.ChatID, message); err != nil {
		log.Printf("⚠️ Welcome message failed: %v", err)
	}
}
