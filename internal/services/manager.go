package services

import (
	"time"

	"lab-timesheet/internal/model"
)

type ServiceManager struct {
	Activities *ActivityService
	Timesheet  *TimesheetService
	Reminders  *ReminderService
}

// Options collects the collaborators the services are built from.
type Options struct {
	Persistence Persistence
	Reminders   ReminderStore
	Scheduler   Scheduler
	Summarizer  Summarizer
	Renderer    Renderer
	Profile     model.Profile
	Now         func() time.Time
	Location    *time.Location
}

func NewServiceManager(opts Options) *ServiceManager {
	activities := NewActivityService(opts.Persistence, opts.Now)

	sm := &ServiceManager{
		Activities: activities,
		Timesheet:  NewTimesheetService(activities, opts.Summarizer, opts.Renderer, opts.Profile),
	}
	if opts.Scheduler != nil {
		sm.Reminders = NewReminderService(opts.Scheduler, opts.Reminders, activities, opts.Now, opts.Location)
	}
	return sm
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	if sm.Reminders != nil {
		sm.Reminders.SetSender(sender)
	}
}
