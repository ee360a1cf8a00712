package dialog

import (
	"sync"
	"time"

	"lab-timesheet/internal/model"
)

type Mode int

const (
	Idle Mode = iota
	AwaitingBacklogDate
	AwaitingBacklogActivity
	AwaitingBulkWeekDate
	AwaitingBulkWeekDays
	AwaitingBulkWeekActivity
	AwaitingPastWeekSelection
	AwaitingPastWeekAction
	AwaitingReminderTime
)

var modeNames = map[Mode]string{
	Idle:                      "Idle",
	AwaitingBacklogDate:       "AwaitingBacklogDate",
	AwaitingBacklogActivity:   "AwaitingBacklogActivity",
	AwaitingBulkWeekDate:      "AwaitingBulkWeekDate",
	AwaitingBulkWeekDays:      "AwaitingBulkWeekDays",
	AwaitingBulkWeekActivity:  "AwaitingBulkWeekActivity",
	AwaitingPastWeekSelection: "AwaitingPastWeekSelection",
	AwaitingPastWeekAction:    "AwaitingPastWeekAction",
	AwaitingReminderTime:      "AwaitingReminderTime",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Unknown"
}

// state is the pending data of one mode. Each mode has its own type, so a
// session can only ever hold the fields that make sense for its mode.
type state interface {
	mode() Mode
}

type idle struct{}

type backlogDate struct{}

type backlogActivity struct {
	date time.Time
}

type bulkWeekDate struct{}

type bulkWeekDays struct {
	weekKey string
}

type bulkWeekActivity struct {
	weekKey string
	days    []time.Weekday
}

type pastWeekSelection struct {
	weeks []model.WeekTotals
}

type pastWeekAction struct {
	weekKey string
}

type reminderTime struct{}

func (idle) mode() Mode              { return Idle }
func (backlogDate) mode() Mode       { return AwaitingBacklogDate }
func (backlogActivity) mode() Mode   { return AwaitingBacklogActivity }
func (bulkWeekDate) mode() Mode      { return AwaitingBulkWeekDate }
func (bulkWeekDays) mode() Mode      { return AwaitingBulkWeekDays }
func (bulkWeekActivity) mode() Mode  { return AwaitingBulkWeekActivity }
func (pastWeekSelection) mode() Mode { return AwaitingPastWeekSelection }
func (pastWeekAction) mode() Mode    { return AwaitingPastWeekAction }
func (reminderTime) mode() Mode      { return AwaitingReminderTime }

// session is the dialog of one chat. mu serializes its messages.
type session struct {
	mu    sync.Mutex
	state state
}
