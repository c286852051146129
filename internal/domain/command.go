package domain

// CommandType classifies what the user wants to do at the prompt.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandList
	CommandShow
	CommandAdd
	CommandSearch
	CommandCategory
	CommandQuick // filter by maximum total time
	CommandTop
	CommandRate
	CommandTag
	CommandPlan
	CommandDay
	CommandShop
	CommandStats
	CommandHelp
	CommandQuit
)

// commandNames maps snake_case names to CommandType values.
var commandNames = map[string]CommandType{
	"unknown":  CommandUnknown,
	"list":     CommandList,
	"show":     CommandShow,
	"add":      CommandAdd,
	"search":   CommandSearch,
	"category": CommandCategory,
	"quick":    CommandQuick,
	"top":      CommandTop,
	"rate":     CommandRate,
	"tag":      CommandTag,
	"plan":     CommandPlan,
	"day":      CommandDay,
	"shop":     CommandShop,
	"stats":    CommandStats,
	"help":     CommandHelp,
	"quit":     CommandQuit,
}

// String returns the snake_case name of the command.
func (c CommandType) String() string {
	for name, t := range commandNames {
		if t == c {
			return name
		}
	}
	return "unknown"
}

// CommandFromString converts a command name to a CommandType.
// Returns CommandUnknown for unrecognized names.
func CommandFromString(name string) CommandType {
	if t, ok := commandNames[name]; ok {
		return t
	}
	return CommandUnknown
}

// Command represents a parsed prompt line.
type Command struct {
	Type CommandType
	Args []string // positional arguments after the keyword
	Raw  string
}

// Arg returns the i-th argument or "" when absent.
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
