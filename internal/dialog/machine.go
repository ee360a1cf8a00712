// Package dialog turns chat messages into store operations. Every chat has
// its own session whose mode decides how the next message is read.
package dialog

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"lab-timesheet/internal/model"
	"lab-timesheet/internal/utils"
)

// Store is the activity store as the dialog sees it.
type Store interface {
	AddActivity(ctx context.Context, date time.Time, description string, hours *float64) (model.Activity, error)
	GetWeek(ctx context.Context, weekKey string) (model.WeekRecord, error)
	ListWeeks(ctx context.Context) ([]model.WeekTotals, error)
	DeleteWeek(ctx context.Context, weekKey string) (bool, error)
	DeleteActivity(ctx context.Context, weekKey, date string, index int) (bool, error)
}

type Timesheets interface {
	Generate(ctx context.Context, weekKey string) (*model.Timesheet, error)
}

type Reminders interface {
	Set(ctx context.Context, chatID int64, hour, minute int) error
	Disable(ctx context.Context, chatID int64) (bool, error)
	Get(chatID int64) (model.ReminderSetting, bool)
}

// MaxPastWeeks caps the week list offered for selection.
const MaxPastWeeks = 10

type Deps struct {
	Store      Store
	Timesheets Timesheets
	// Reminders is optional; without it the reminder command reports that
	// reminders are unavailable.
	Reminders Reminders
	Now       func() time.Time
	Location  *time.Location
}

type Machine struct {
	store      Store
	timesheets Timesheets
	reminders  Reminders
	now        func() time.Time
	location   *time.Location

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(deps Deps) *Machine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &Machine{
		store:      deps.Store,
		timesheets: deps.Timesheets,
		reminders:  deps.Reminders,
		now:        deps.Now,
		location:   deps.Location,
		sessions:   make(map[int64]*session),
	}
}

// Mode reports the current mode of chatID.
func (m *Machine) Mode(chatID int64) Mode {
	s := m.session(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.mode()
}

// Handle processes one inbound message of chatID and returns the replies
// to send, in order.
func (m *Machine) Handle(ctx context.Context, chatID int64, input string) []Reply {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	return m.withSession(chatID, func(s *session) []Reply {
		return m.dispatch(ctx, s, chatID, input)
	})
}

// HandleCallback processes the data of a pressed inline button. A button
// only acts on the prompt it belongs to; data the current mode does not
// expect is answered as expired and never logged as an activity.
func (m *Machine) HandleCallback(ctx context.Context, chatID int64, data string) []Reply {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil
	}

	return m.withSession(chatID, func(s *session) []Reply {
		if !expectsCallback(s.state, data) {
			log.Printf("⌛ Chat %d: stale button %q in %s", chatID, data, s.state.mode())
			return []Reply{plain(expiredButton)}
		}
		return m.dispatch(ctx, s, chatID, data)
	})
}

func (m *Machine) withSession(chatID int64, fn func(s *session) []Reply) []Reply {
	s := m.session(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state.mode()
	replies := fn(s)
	if after := s.state.mode(); after != before {
		log.Printf("💬 Chat %d: %s -> %s", chatID, before, after)
	}
	return replies
}

// expectsCallback reports whether button data fits the pending prompt.
func expectsCallback(st state, data string) bool {
	if isCancel(data) {
		return st.mode() != Idle
	}
	switch st.(type) {
	case pastWeekSelection:
		_, err := strconv.Atoi(data)
		return err == nil
	case pastWeekAction:
		return parsePastWeekVerb(data) != verbNone
	}
	return false
}

func (m *Machine) dispatch(ctx context.Context, s *session, chatID int64, input string) []Reply {
	if cmd, args, ok := parseCommand(input); ok {
		if action, ok := s.state.(pastWeekAction); ok && cmd == cmdGenerate {
			return m.generate(ctx, s, action.weekKey)
		}
		return m.command(ctx, s, chatID, cmd, args)
	}

	if isCancel(input) {
		if s.state.mode() == Idle {
			return []Reply{withMenu("Nothing to cancel.")}
		}
		s.state = idle{}
		return []Reply{withMenu("❌ Cancelled.")}
	}

	if isSlashCommand(input) {
		return []Reply{plain("❓ Unknown command. Send /help to see what I can do.")}
	}

	switch st := s.state.(type) {
	case backlogDate:
		return m.onBacklogDate(s, input)
	case backlogActivity:
		return m.onBacklogActivity(ctx, s, st, input)
	case bulkWeekDate:
		return m.onBulkWeekDate(s, input)
	case bulkWeekDays:
		return m.onBulkWeekDays(s, st, input)
	case bulkWeekActivity:
		return m.onBulkWeekActivity(ctx, s, st, input)
	case pastWeekSelection:
		return m.onPastWeekSelection(ctx, s, st, input)
	case pastWeekAction:
		return m.onPastWeekAction(ctx, s, st, input)
	case reminderTime:
		return m.onReminderTime(ctx, s, chatID, input)
	default:
		return m.logToday(ctx, input)
	}
}

func (m *Machine) command(ctx context.Context, s *session, chatID int64, cmd command, args string) []Reply {
	s.state = idle{}

	switch cmd {
	case cmdLog:
		return []Reply{withMenu(logPrompt)}
	case cmdWeek:
		return m.showWeek(ctx, utils.WeekKeyOf(m.today()), mainMenu(), false)
	case cmdBacklog:
		s.state = backlogDate{}
		return []Reply{withCancel(backlogDatePrompt)}
	case cmdBulk:
		s.state = bulkWeekDate{}
		return []Reply{withCancel(bulkWeekDatePrompt)}
	case cmdGenerate:
		return m.generate(ctx, s, utils.WeekKeyOf(m.today()))
	case cmdPastWeeks:
		return m.listPastWeeks(ctx, s)
	case cmdReminder:
		return m.startReminder(ctx, s, chatID, args)
	case cmdDelete:
		return m.deleteActivity(ctx, args)
	default:
		return []Reply{withMenu(helpText)}
	}
}

func (m *Machine) today() time.Time {
	return utils.Today(m.now(), m.location)
}

func (m *Machine) session(chatID int64) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		s = &session{state: idle{}}
		m.sessions[chatID] = s
	}
	return s
}
