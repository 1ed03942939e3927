package dialogue

// Config holds the fixed phrases and replies of the chat loop.
type Config struct {
	QuitWords []string
	Greetings []string
	Farewells []string

	GreetingReply string
	FarewellReply string
	FallbackReply string

	Banner      string
	Prompt      string
	ReplyPrefix string
}

// DefaultConfig returns the stock phrase sets and replies.
func DefaultConfig() Config {
	return Config{
		QuitWords:     []string{"quit", "q"},
		Greetings:     []string{"hi", "hello", "hey"},
		Farewells:     []string{"bye", "goodbye"},
		GreetingReply: "Hello! How can I help you today?",
		FarewellReply: "Goodbye! Have a great day!",
		FallbackReply: "I'm sorry, I don't understand that question. Could you rephrase it?",
		Banner:        "FAQ Chatbot: Type 'quit' or 'q' to exit",
		Prompt:        "You: ",
		ReplyPrefix:   "Bot: ",
	}
}

// withDefaults fills blank fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if len(c.QuitWords) == 0 {
		c.QuitWords = def.QuitWords
	}
	if len(c.Greetings) == 0 {
		c.Greetings = def.Greetings
	}
	if len(c.Farewells) == 0 {
		c.Farewells = def.Farewells
	}
	if c.GreetingReply == "" {
		c.GreetingReply = def.GreetingReply
	}
	if c.FarewellReply == "" {
		c.FarewellReply = def.FarewellReply
	}
	if c.FallbackReply == "" {
		c.FallbackReply = def.FallbackReply
	}
	if c.Banner == "" {
		c.Banner = def.Banner
	}
	if c.Prompt == "" {
		c.Prompt = def.Prompt
	}
	if c.ReplyPrefix == "" {
		c.ReplyPrefix = def.ReplyPrefix
	}
	return c
}
