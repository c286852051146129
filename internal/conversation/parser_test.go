package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input    string
		wantType domain.CommandType
		wantArgs []string
	}{
		{"list", domain.CommandList, nil},
		{"LS", domain.CommandList, nil},
		{"3", domain.CommandShow, []string{"3"}},
		{"show 12", domain.CommandShow, []string{"12"}},
		{"add", domain.CommandAdd, nil},
		{"search pasta", domain.CommandSearch, []string{"pasta"}},
		{"find  olive oil ", domain.CommandSearch, []string{"olive oil"}},
		{"category Main Course", domain.CommandCategory, []string{"Main Course"}},
		{"quick 25", domain.CommandQuick, []string{"25"}},
		{"top", domain.CommandTop, nil},
		{"top 2", domain.CommandTop, []string{"2"}},
		{"rate 1 5", domain.CommandRate, []string{"1", "5"}},
		{"tag 2 family friendly", domain.CommandTag, []string{"2", "family friendly"}},
		{"tag 2", domain.CommandTag, []string{"2"}},
		{"plan 2024-06-01 dinner 3", domain.CommandPlan, []string{"2024-06-01", "dinner", "3"}},
		{"plan 2024-06-01", domain.CommandPlan, []string{"2024-06-01"}},
		{"plan 2024-06-01 late dinner 2", domain.CommandPlan, []string{"2024-06-01", "late dinner", "2"}},
		{"plan  2024-06-01   sunday   brunch  4 ", domain.CommandPlan, []string{"2024-06-01", "sunday brunch", "4"}},
		{"day 2024-06-01", domain.CommandDay, []string{"2024-06-01"}},
		{"shop 2024-06-01 3", domain.CommandShop, []string{"2024-06-01", "3"}},
		{"groceries", domain.CommandShop, nil},
		{"stats", domain.CommandStats, nil},
		{"?", domain.CommandHelp, nil},
		{"exit", domain.CommandQuit, nil},
		{"Q", domain.CommandQuit, nil},
		{"make me a sandwich", domain.CommandUnknown, nil},
		{"", domain.CommandUnknown, nil},
		{"   ", domain.CommandUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parser.Parse(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, cmd.Type, "type for %q", tt.input)
			assert.Equal(t, tt.wantArgs, cmd.Args, "args for %q", tt.input)
		})
	}
}

func TestUnknownKeepsRaw(t *testing.T) {
	parser := NewKeywordParser(logger.New(logger.LevelOff, nil))

	cmd, err := parser.Parse(context.Background(), "  dance now ")
	require.NoError(t, err)
	assert.Equal(t, domain.CommandUnknown, cmd.Type)
	assert.Equal(t, "dance now", cmd.Raw)
}
