package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRunsHandler(t *testing.T) {
	fleet := DefaultFleet()

	response := fleet.Dispatch("helper-bot", "echo", map[string]interface{}{"text": "hello"}, "alice")
	payload, ok := response.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "echo", payload["type"])
	assert.Equal(t, "hello", payload["text"])
}

func TestDispatchNormalizesCommand(t *testing.T) {
	fleet := DefaultFleet()

	response := fleet.Dispatch("helper-bot", " /Ping ", nil, "alice")
	payload := response.(map[string]interface{})
	assert.Equal(t, "pong", payload["type"])
}

func TestDispatchUnknownBot(t *testing.T) {
	fleet := DefaultFleet()

	response := fleet.Dispatch("nope-bot", "ping", nil, "alice")
	payload := response.(map[string]interface{})
	assert.Equal(t, "error", payload["type"])
	assert.Contains(t, payload["message"], "nope-bot")
}

func TestDispatchUnknownCommandListsHelp(t *testing.T) {
	fleet := DefaultFleet()

	response := fleet.Dispatch("helper-bot", "dance", nil, "alice")
	payload := response.(map[string]interface{})
	assert.Equal(t, "help", payload["type"])
	assert.ElementsMatch(t, []string{"echo", "help", "ping"}, payload["commands"])
}

func TestCapabilities(t *testing.T) {
	fleet := DefaultFleet()

	capabilities := fleet.Capabilities("poll-bot")
	require.NotNil(t, capabilities)
	assert.Equal(t, "poll-bot", capabilities.BotID)
	assert.Equal(t, []string{"poll"}, capabilities.Commands)

	assert.Nil(t, fleet.Capabilities("nope-bot"))
}

func TestDescribeSkipsUnknowns(t *testing.T) {
	fleet := DefaultFleet()

	described := fleet.Describe([]string{"helper-bot", "nope-bot", "price-bot"})
	require.Len(t, described, 2)
	assert.Equal(t, "helper-bot", described[0].BotID)
	assert.Equal(t, "price-bot", described[1].BotID)
}

func TestRegisterReplacesBot(t *testing.T) {
	fleet := NewFleet()

	v1 := &Bot{ID: "custom", Name: "v1"}
	v1.Handle("run", func(_ map[string]interface{}, _ string) interface{} { return "one" })
	fleet.Register(v1)

	v2 := &Bot{ID: "custom", Name: "v2"}
	v2.Handle("run", func(_ map[string]interface{}, _ string) interface{} { return "two" })
	fleet.Register(v2)

	assert.Equal(t, "two", fleet.Dispatch("custom", "run", nil, "alice"))
}

func TestPriceBotDefaultsSymbol(t *testing.T) {
	fleet := DefaultFleet()

	payload := fleet.Dispatch("price-bot", "price", map[string]interface{}{}, "alice").(map[string]interface{})
	assert.Equal(t, "ETH", payload["symbol"])

	payload = fleet.Dispatch("price-bot", "price", map[string]interface{}{"symbol": "btc"}, "alice").(map[string]interface{})
	assert.Equal(t, "BTC", payload["symbol"])
}
