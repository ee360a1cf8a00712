package dialog

// Reply is one outbound chat message. Text is Telegram HTML.
type Reply struct {
	Text     string
	Document *Document
	Keyboard [][]Button
	// Inline keyboards send Button.Data back as a callback; reply
	// keyboards send Button.Label as a message.
	Inline bool
}

type Document struct {
	Name    string
	Content []byte
}

type Button struct {
	Label string
	Data  string
}

const (
	LabelLog       = "📝 Log Activity"
	LabelWeek      = "📊 This Week"
	LabelBacklog   = "📅 Backlog Day"
	LabelBulk      = "🗓 Bulk Backlog"
	LabelGenerate  = "📄 Generate Timesheet"
	LabelPastWeeks = "📚 Past Weeks"
	LabelReminder  = "⏰ Reminder"
	LabelHelp      = "❓ Help"
	LabelCancel    = "❌ Cancel"
	LabelView      = "👁 View Week"
	LabelDelete    = "🗑 Delete Week"
)

func mainMenu() [][]Button {
	return [][]Button{
		{{Label: LabelLog}, {Label: LabelWeek}},
		{{Label: LabelBacklog}, {Label: LabelBulk}},
		{{Label: LabelGenerate}, {Label: LabelPastWeeks}},
		{{Label: LabelReminder}, {Label: LabelHelp}},
	}
}

func cancelMenu() [][]Button {
	return [][]Button{{{Label: LabelCancel}}}
}

func pastWeekActions() [][]Button {
	return [][]Button{
		{{Label: LabelView, Data: "view"}, {Label: LabelGenerate, Data: "generate"}},
		{{Label: LabelDelete, Data: "delete"}, {Label: LabelCancel, Data: "cancel"}},
	}
}

func plain(body string) Reply {
	return Reply{Text: body}
}

func withMenu(body string) Reply {
	return Reply{Text: body, Keyboard: mainMenu()}
}

func withCancel(body string) Reply {
	return Reply{Text: body, Keyboard: cancelMenu()}
}
