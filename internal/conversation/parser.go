// Package conversation turns typed prompt lines into commands.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches the first word of a line against keyword patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

// textArity lists commands whose last argument is free text that may contain
// spaces. The value is the total number of arguments.
var textArity = map[domain.CommandType]int{
	domain.CommandSearch:   1,
	domain.CommandCategory: 1,
	domain.CommandTag:      2,
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(list|ls|all|recipes)$`), domain.CommandList},
		{regexp.MustCompile(`(?i)^(show|view|open)$`), domain.CommandShow},
		{regexp.MustCompile(`(?i)^(add|new|create)$`), domain.CommandAdd},
		{regexp.MustCompile(`(?i)^(search|find|s)$`), domain.CommandSearch},
		{regexp.MustCompile(`(?i)^(category|cat)$`), domain.CommandCategory},
		{regexp.MustCompile(`(?i)^(quick|time|under)$`), domain.CommandQuick},
		{regexp.MustCompile(`(?i)^(top|best)$`), domain.CommandTop},
		{regexp.MustCompile(`(?i)^(rate|rating)$`), domain.CommandRate},
		{regexp.MustCompile(`(?i)^(tag)$`), domain.CommandTag},
		{regexp.MustCompile(`(?i)^(plan|schedule)$`), domain.CommandPlan},
		{regexp.MustCompile(`(?i)^(day|meals)$`), domain.CommandDay},
		{regexp.MustCompile(`(?i)^(shop|shopping|groceries)$`), domain.CommandShop},
		{regexp.MustCompile(`(?i)^(stats|statistics)$`), domain.CommandStats},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q|bye)$`), domain.CommandQuit},
	}
	return p
}

// Parse converts a line into a command. Unrecognized input yields
// CommandUnknown with the line kept in Raw.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number shows that recipe from the last listing.
	if isDigits(trimmed) {
		return &domain.Command{Type: domain.CommandShow, Args: []string{trimmed}, Raw: trimmed}, nil
	}

	keyword, rest, _ := strings.Cut(trimmed, " ")
	rest = strings.TrimSpace(rest)

	for _, rule := range p.patterns {
		if !rule.regex.MatchString(keyword) {
			continue
		}
		p.log.Debug("matched command: %s", rule.command)
		return &domain.Command{Type: rule.command, Args: splitArgs(rule.command, rest), Raw: trimmed}, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Raw: trimmed}, nil
}

// splitArgs splits rest on whitespace. For free-text commands the final
// argument keeps its inner spaces. For plan, the words between the date and
// the trailing recipe number form the slot.
func splitArgs(cmd domain.CommandType, rest string) []string {
	if rest == "" {
		return nil
	}
	if cmd == domain.CommandPlan {
		fields := strings.Fields(rest)
		if len(fields) <= 3 {
			return fields
		}
		last := len(fields) - 1
		return []string{fields[0], strings.Join(fields[1:last], " "), fields[last]}
	}
	n, ok := textArity[cmd]
	if !ok {
		return strings.Fields(rest)
	}

	var args []string
	for len(args) < n-1 {
		head, tail, found := strings.Cut(rest, " ")
		args = append(args, head)
		rest = strings.TrimSpace(tail)
		if !found || rest == "" {
			return args
		}
	}
	return append(args, rest)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
