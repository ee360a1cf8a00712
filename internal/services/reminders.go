package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"lab-timesheet/internal/model"
	"lab-timesheet/internal/utils"
)

var ErrInvalidReminder = errors.New("invalid reminder time")

// ReminderWeekdays are the days a daily reminder fires on.
var ReminderWeekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// Scheduler runs named jobs at a fixed time of day.
type Scheduler interface {
	ScheduleDaily(name string, hour, minute int, weekdays []time.Weekday, job func()) error
	Cancel(name string)
}

type NotificationSender interface {
	SendText(chatID int64, text string) error
}

// ReminderStore persists reminder settings across restarts.
type ReminderStore interface {
	SaveReminder(ctx context.Context, setting model.ReminderSetting) error
	ListReminders(ctx context.Context) ([]model.ReminderSetting, error)
}

// DayReader reports what is already logged on a date.
type DayReader interface {
	ActivitiesOn(ctx context.Context, date time.Time) ([]model.Activity, error)
}

type ReminderService struct {
	scheduler Scheduler
	store     ReminderStore
	days      DayReader
	sender    NotificationSender
	now       func() time.Time
	location  *time.Location

	mu       sync.Mutex
	settings map[int64]model.ReminderSetting
}

func NewReminderService(scheduler Scheduler, store ReminderStore, days DayReader, now func() time.Time, location *time.Location) *ReminderService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		scheduler: scheduler,
		store:     store,
		days:      days,
		now:       now,
		location:  location,
		settings:  make(map[int64]model.ReminderSetting),
	}
}

// SetSender wires the transport once it exists.
func (rs *ReminderService) SetSender(sender NotificationSender) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.sender = sender
}

func JobName(chatID int64) string {
	return fmt.Sprintf("reminder:%d", chatID)
}

// Set schedules the weekday reminder of chatID, replacing any previous one.
func (rs *ReminderService) Set(ctx context.Context, chatID int64, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidReminder, hour, minute)
	}

	setting := model.ReminderSetting{ChatID: chatID, Hour: hour, Minute: minute, Enabled: true}
	if err := rs.schedule(setting); err != nil {
		return err
	}
	if err := rs.persist(ctx, setting); err != nil {
		return err
	}

	log.Printf("⏰ Reminder set: chat=%d, time=%02d:%02d", chatID, hour, minute)
	return nil
}

// Disable cancels the reminder of chatID. It reports false when no
// reminder was active.
func (rs *ReminderService) Disable(ctx context.Context, chatID int64) (bool, error) {
	rs.mu.Lock()
	setting, ok := rs.settings[chatID]
	active := ok && setting.Enabled
	setting.ChatID = chatID
	setting.Enabled = false
	rs.settings[chatID] = setting
	rs.mu.Unlock()

	rs.scheduler.Cancel(JobName(chatID))
	if !active {
		return false, nil
	}
	if err := rs.persist(ctx, setting); err != nil {
		return true, err
	}

	log.Printf("🔕 Reminder disabled: chat=%d", chatID)
	return true, nil
}

// Get returns the reminder of chatID and whether it is enabled.
func (rs *ReminderService) Get(chatID int64) (model.ReminderSetting, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	setting, ok := rs.settings[chatID]
	return setting, ok && setting.Enabled
}

// Restore reschedules every enabled reminder found in the store.
func (rs *ReminderService) Restore(ctx context.Context) (int, error) {
	if rs.store == nil {
		return 0, nil
	}

	settings, err := rs.store.ListReminders(ctx)
	if err != nil {
		return 0, fmt.Errorf("restoring reminders: %w", err)
	}

	restored := 0
	for _, setting := range settings {
		if !setting.Enabled {
			continue
		}
		if err := rs.schedule(setting); err != nil {
			log.Printf("⚠️ Failed to restore reminder for chat %d: %v", setting.ChatID, err)
			continue
		}
		restored++
	}
	return restored, nil
}

func (rs *ReminderService) schedule(setting model.ReminderSetting) error {
	chatID := setting.ChatID
	err := rs.scheduler.ScheduleDaily(JobName(chatID), setting.Hour, setting.Minute, ReminderWeekdays, func() {
		rs.remind(chatID)
	})
	if err != nil {
		return fmt.Errorf("scheduling reminder for chat %d: %w", chatID, err)
	}

	rs.mu.Lock()
	rs.settings[chatID] = setting
	rs.mu.Unlock()
	return nil
}

func (rs *ReminderService) persist(ctx context.Context, setting model.ReminderSetting) error {
	if rs.store == nil {
		return nil
	}
	if err := rs.store.SaveReminder(ctx, setting); err != nil {
		return fmt.Errorf("saving reminder for chat %d: %w", setting.ChatID, err)
	}
	return nil
}

func (rs *ReminderService) remind(chatID int64) {
	rs.mu.Lock()
	sender := rs.sender
	rs.mu.Unlock()
	if sender == nil {
		log.Printf("⚠️ Reminder for chat %d skipped: no sender", chatID)
		return
	}

	text, err := rs.ReminderText(context.Background())
	if err != nil {
		log.Printf("❌ Reminder for chat %d: %v", chatID, err)
		return
	}
	if err := sender.SendText(chatID, text); err != nil {
		log.Printf("❌ Failed to send reminder to chat %d: %v", chatID, err)
	}
}

// ReminderText is the message a reminder sends, mentioning how much is
// already logged today.
func (rs *ReminderService) ReminderText(ctx context.Context) (string, error) {
	today := utils.Today(rs.now(), rs.location)
	activities, err := rs.days.ActivitiesOn(ctx, today)
	if err != nil {
		return "", err
	}

	switch len(activities) {
	case 0:
		return "⏰ <b>Lab log reminder</b>\n\nNothing logged for today yet. Send me what you worked on, e.g. <i>Ran PCR samples. 3 hours</i>", nil
	case 1:
		return "⏰ <b>Lab log reminder</b>\n\nYou have 1 activity logged for today. Anything else to add?", nil
	default:
		return fmt.Sprintf("⏰ <b>Lab log reminder</b>\n\nYou have %d activities logged for today. Anything else to add?", len(activities)), nil
	}
}
