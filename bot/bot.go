// Package bot routes slash-style commands inside group channels to the
// registered bot handlers. Handlers run outside the socket event loop's
// critical path; a slow bot never stalls message delivery.
package bot

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Handler executes one command and returns a JSON-serializable response.
type Handler func(parameters map[string]interface{}, senderID string) interface{}

// Bot is a named command set.
type Bot struct {
	ID          string
	Name        string
	Description string

	handlers map[string]Handler
}

// Handle registers a command handler on the bot.
func (b *Bot) Handle(command string, handler Handler) *Bot {
	if b.handlers == nil {
		b.handlers = make(map[string]Handler)
	}
	b.handlers[normalize(command)] = handler
	return b
}

// Commands lists the bot's registered commands, sorted.
func (b *Bot) Commands() []string {
	commands := make([]string, 0, len(b.handlers))
	for command := range b.handlers {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	return commands
}

// Capabilities is the payload of bot_capabilities.
type Capabilities struct {
	BotID       string   `json:"botId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Commands    []string `json:"commands"`
}

// Fleet is the registry of available bots.
type Fleet struct {
	mu   sync.RWMutex
	bots map[string]*Bot
}

func NewFleet() *Fleet {
	return &Fleet{bots: make(map[string]*Bot)}
}

// Register adds a bot to the fleet, replacing any previous one with the
// same id.
func (f *Fleet) Register(bot *Bot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bots[bot.ID] = bot
}

// Get looks a bot up by id.
func (f *Fleet) Get(botID string) (*Bot, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	bot, ok := f.bots[botID]
	return bot, ok
}

// Capabilities describes a bot, nil when unknown.
func (f *Fleet) Capabilities(botID string) *Capabilities {
	bot, ok := f.Get(botID)
	if !ok {
		return nil
	}
	return &Capabilities{
		BotID:       bot.ID,
		Name:        bot.Name,
		Description: bot.Description,
		Commands:    bot.Commands(),
	}
}

// Describe returns capabilities for a set of bot ids, skipping unknowns.
func (f *Fleet) Describe(botIDs []string) []Capabilities {
	described := []Capabilities{}
	for _, id := range botIDs {
		if capabilities := f.Capabilities(id); capabilities != nil {
			described = append(described, *capabilities)
		}
	}
	return described
}

// Dispatch resolves the handler and runs it. Unknown bots and unknown
// commands both produce a structured response, never a dropped event.
func (f *Fleet) Dispatch(botID, command string, parameters map[string]interface{}, senderID string) interface{} {
	bot, ok := f.Get(botID)
	if !ok {
		return map[string]interface{}{
			"type":    "error",
			"message": fmt.Sprintf("no bot registered with id %q", botID),
		}
	}
	handler, ok := bot.handlers[normalize(command)]
	if !ok {
		return map[string]interface{}{
			"type":     "help",
			"message":  fmt.Sprintf("%s does not understand %q", bot.Name, command),
			"commands": bot.Commands(),
		}
	}
	return handler(parameters, senderID)
}

func normalize(command string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(command)), "/")
}

// DefaultFleet is the built-in bot set shipped with the hub.
func DefaultFleet() *Fleet {
	fleet := NewFleet()

	helper := &Bot{
		ID:          "helper-bot",
		Name:        "Helper",
		Description: "General purpose helper commands",
	}
	helper.Handle("help", func(_ map[string]interface{}, _ string) interface{} {
		return map[string]interface{}{
			"type":     "help",
			"message":  "Available commands",
			"commands": helper.Commands(),
		}
	})
	helper.Handle("ping", func(_ map[string]interface{}, _ string) interface{} {
		return map[string]interface{}{"type": "pong", "time": time.Now().UnixMilli()}
	})
	helper.Handle("echo", func(parameters map[string]interface{}, _ string) interface{} {
		text, _ := parameters["text"].(string)
		return map[string]interface{}{"type": "echo", "text": text}
	})
	fleet.Register(helper)

	poll := &Bot{
		ID:          "poll-bot",
		Name:        "Polls",
		Description: "Create quick polls in a channel",
	}
	poll.Handle("poll", func(parameters map[string]interface{}, senderID string) interface{} {
		question, _ := parameters["question"].(string)
		return map[string]interface{}{
			"type":      "poll_created",
			"question":  question,
			"createdBy": senderID,
		}
	})
	fleet.Register(poll)

	price := &Bot{
		ID:          "price-bot",
		Name:        "Prices",
		Description: "Crypto price lookups (external feed)",
	}
	price.Handle("price", func(parameters map[string]interface{}, _ string) interface{} {
		symbol, _ := parameters["symbol"].(string)
		if symbol == "" {
			symbol = "ETH"
		}
		// Quote retrieval is delegated to the pricing backend; the
		// dispatcher only shapes the response envelope.
		return map[string]interface{}{
			"type":   "price_quote",
			"symbol": strings.ToUpper(symbol),
			"status": "pending",
		}
	})
	fleet.Register(price)

	return fleet
}
