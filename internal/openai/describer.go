package openai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Describer generates short company analyses for report pages.
type Describer struct {
	cli   oa.Client
	model string
}

func NewDescriber(apiKey, model string) *Describer {
	client := oa.NewClient(option.WithAPIKey(apiKey))
	return &Describer{cli: client, model: model}
}

// Prompt returns the analyst prompt for a ticker. The report cache is keyed
// by a hash of this exact text so editing the prompt invalidates old entries.
func Prompt(ticker string) string {
	return fmt.Sprintf(
		"As a financial analyst, provide a concise, one-sentence summary for the company with the stock ticker %s. "+
			"Then, provide 3 concise reasons to invest and 3 reasons not to invest with solid justification. "+
			"Use only <p> <b> <ul> <li> and <br> HTML tags for formatting. "+
			"Use ASCII characters only, no emojis or special characters. "+
			"Return the response without any markdown code fences or triple backticks.",
		strings.ToUpper(ticker))
}

// PromptHash is the cache key for a ticker's description.
func PromptHash(ticker string) string {
	sum := sha256.Sum256([]byte(Prompt(ticker)))
	return hex.EncodeToString(sum[:])
}

// Describe generates the company description for a ticker.
func (d *Describer) Describe(ctx context.Context, ticker string) (string, error) {
	resp, err := d.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: oa.ChatModel(d.model),
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage("You are a concise financial analyst. Respond with plain ASCII text using only the HTML tags the user allows."),
			oa.UserMessage(Prompt(ticker)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion for %s", ticker)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Fallback is the description used when generation fails; the report still
// gets a page for the stock.
func Fallback(ticker string) string {
	return fmt.Sprintf(
		"A description for %s could not be generated at this time. This company operates "+
			"within its respective industry, and its performance is a subject of market analysis.",
		strings.ToUpper(ticker))
}
