package conversation

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/pkg/errors"
	"pkt.systems/pslog"
)

// DefaultDescription is used when no better description can be produced.
const DefaultDescription = "New chat"

const maxDescriptionRunes = 40

const (
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderArk      = "ark"
)

const (
	OpenAIBaseURL   = "https://api.openai.com/v1"
	DeepSeekBaseURL = "https://api.deepseek.com"
	ArkBaseURL      = "https://ark.cn-beijing.volces.com/api/v3"
)

var defaultAPIKeyEnvs = map[string]string{
	ProviderOpenAI:   "OPENAI_API_KEY",
	ProviderDeepSeek: "DEEPSEEK_API_KEY",
	ProviderArk:      "BYTE_DANCE_API_KEY",
}

// Config selects the chat model. OllamaURL is the root of the local server;
// the ollama provider talks to its OpenAI-compatible /v1 endpoint.
type Config struct {
	Provider  string
	Model     string
	BaseURL   string
	APIKeyEnv string
	OllamaURL string
}

type Describer struct {
	cfg      Config
	newModel func(ctx context.Context, cfg Config) (model.BaseChatModel, error)
}

func NewDescriber(cfg Config) *Describer {
	if cfg.Provider == "" {
		cfg.Provider = ProviderOllama
	}
	cfg.Provider = strings.ToLower(cfg.Provider)

	return &Describer{cfg: cfg, newModel: newChatModel}
}

func newChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	if cfg.Model == "" {
		return nil, errors.New("describe model is not configured")
	}

	baseURL := cfg.BaseURL
	apiKey := ""
	envName := cfg.APIKeyEnv
	if envName == "" {
		envName = defaultAPIKeyEnvs[cfg.Provider]
	}
	if envName != "" {
		apiKey = os.Getenv(envName)
	}

	switch cfg.Provider {
	case ProviderOllama:
		if baseURL == "" {
			baseURL = strings.TrimRight(cfg.OllamaURL, "/") + "/v1"
		}
		if apiKey == "" {
			apiKey = "ollama"
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   cfg.Model,
		})
	case ProviderOpenAI:
		if baseURL == "" {
			baseURL = OpenAIBaseURL
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   cfg.Model,
		})
	case ProviderDeepSeek:
		if baseURL == "" {
			baseURL = DeepSeekBaseURL
		}
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   cfg.Model,
		})
	case ProviderArk:
		if baseURL == "" {
			baseURL = ArkBaseURL
		}
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   cfg.Model,
		})
	default:
	}

	return nil, errors.Errorf("unsupported describe provider: %s", cfg.Provider)
}

// Describe asks the configured model for a short description of messages.
// Conversations without user, assistant or tool content get
// DefaultDescription without a model call.
func (d *Describer) Describe(ctx context.Context, messages []*schema.Message) (string, error) {
	summary := summarize(messages)
	if summary == "" {
		return DefaultDescription, nil
	}

	systemPrompt := "You are a helpful assistant that writes short descriptions for chat conversations."
	userPrompt := fmt.Sprintf("Based on the following conversation, write a short description (at most %d characters) of its main topic or question. Only return the description text, nothing else.\nConversation:\n%s", maxDescriptionRunes, summary)
	prompt := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}

	m, err := d.newModel(ctx, d.cfg)
	if err != nil {
		return "", errors.Wrap(err, "creating describe model")
	}

	pslog.Ctx(ctx).Debug("describe request", "provider", d.cfg.Provider, "model", d.cfg.Model, "messages", len(messages))
	response, err := m.Generate(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "generating description")
	}

	return cleanDescription(response.Content), nil
}

func summarize(messages []*schema.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case schema.User:
			b.WriteString("User: ")
		case schema.Assistant:
			b.WriteString("Assistant: ")
		case schema.Tool:
			b.WriteString("Tool: ")
		default:
			continue
		}
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func cleanDescription(description string) string {
	description = strings.TrimSpace(description)

	if len(description) >= 2 && description[0] == '"' && description[len(description)-1] == '"' {
		description = strings.TrimSpace(description[1 : len(description)-1])
	}
	if i := strings.IndexByte(description, '\n'); i >= 0 {
		description = strings.TrimSpace(description[:i])
	}

	description = spaceScriptBoundaries(description)
	if utf8.RuneCountInString(description) > maxDescriptionRunes {
		runes := []rune(description)
		description = string(runes[:maxDescriptionRunes-3]) + "..."
	}

	if description == "" {
		return DefaultDescription
	}

	return description
}

// spaceScriptBoundaries puts a space where a Han character directly touches
// an ASCII letter or digit, so "使用Go语言" reads "使用 Go 语言".
func spaceScriptBoundaries(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	var prev rune
	for i, r := range text {
		if i > 0 && (isHan(prev) && isASCIIWord(r) || isASCIIWord(prev) && isHan(r)) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func isASCIIWord(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
