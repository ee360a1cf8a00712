package dialog

import "strings"

type command int

const (
	cmdNone command = iota
	cmdLog
	cmdWeek
	cmdBacklog
	cmdBulk
	cmdGenerate
	cmdPastWeeks
	cmdReminder
	cmdHelp
	cmdDelete
)

var commandLabels = map[string]command{
	LabelLog:       cmdLog,
	LabelWeek:      cmdWeek,
	LabelBacklog:   cmdBacklog,
	LabelBulk:      cmdBulk,
	LabelGenerate:  cmdGenerate,
	LabelPastWeeks: cmdPastWeeks,
	LabelReminder:  cmdReminder,
	LabelHelp:      cmdHelp,
}

var slashCommands = map[string]command{
	"/log":      cmdLog,
	"/week":     cmdWeek,
	"/backlog":  cmdBacklog,
	"/bulk":     cmdBulk,
	"/generate": cmdGenerate,
	"/weeks":    cmdPastWeeks,
	"/reminder": cmdReminder,
	"/help":     cmdHelp,
	"/start":    cmdHelp,
	"/delete":   cmdDelete,
}

// parseCommand recognizes menu labels and slash commands. Slash commands
// may carry a @botname suffix and arguments.
func parseCommand(text string) (command, string, bool) {
	if cmd, ok := commandLabels[text]; ok {
		return cmd, "", true
	}
	if !strings.HasPrefix(text, "/") {
		return cmdNone, "", false
	}

	name, args, _ := strings.Cut(text, " ")
	name, _, _ = strings.Cut(strings.ToLower(name), "@")
	if cmd, ok := slashCommands[name]; ok {
		return cmd, strings.TrimSpace(args), true
	}
	return cmdNone, "", false
}

func isCancel(text string) bool {
	if text == LabelCancel {
		return true
	}
	lower := strings.ToLower(text)
	return lower == "cancel" || lower == "/cancel" || strings.HasPrefix(lower, "/cancel@")
}

func isSlashCommand(text string) bool {
	return strings.HasPrefix(text, "/")
}

type pastWeekVerb int

const (
	verbNone pastWeekVerb = iota
	verbView
	verbGenerate
	verbDelete
)

func parsePastWeekVerb(text string) pastWeekVerb {
	switch strings.ToLower(text) {
	case "view", strings.ToLower(LabelView):
		return verbView
	case "generate":
		return verbGenerate
	case "delete", strings.ToLower(LabelDelete):
		return verbDelete
	}
	return verbNone
}
