package model

// Profile identifies the student on the generated timesheet.
type Profile struct {
	Name string
	ID   string
}

// DayRow is one line of the timesheet table.
type DayRow struct {
	Label          string // "Monday, January 05"
	DateText       string // "01/05/2026"
	TimeIn         string
	TimeOut        string
	MentorInitials string // always blank, signed offline
}

// TimesheetDocument is everything the renderer needs for one week.
type TimesheetDocument struct {
	StudentName string
	StudentID   string
	WeekStart   string
	Days        []DayRow
	Summary     string
}

// Timesheet is a rendered document ready to be sent or written to disk.
type Timesheet struct {
	WeekKey  string
	FileName string
	Content  []byte
	Summary  string
}

// ReminderSetting is the daily reminder of one chat.
type ReminderSetting struct {
	ChatID  int64
	Hour    int
	Minute  int
	Enabled bool
}
