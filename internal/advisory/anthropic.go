package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

const systemPrompt = "You are a startup valuation analyst. Given validation findings and a funding-readiness assessment, suggest concrete next steps for the founder. Never restate or change numbers. Respond with strict JSON only."

// AnthropicMessager is the subset of the Messages service the advisor uses
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

// AnthropicAdvisor asks Claude for advice on a report
type AnthropicAdvisor struct {
	messages AnthropicMessager
}

// NewAnthropicAdvisor creates an advisor for apiKey
func NewAnthropicAdvisor(apiKey string) (*AnthropicAdvisor, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	return &AnthropicAdvisor{messages: newAnthropicClient(apiKey)}, nil
}

func (a *AnthropicAdvisor) Suggestions(ctx context.Context, report *models.ValuationReport) (Advice, error) {
	prompt, err := buildPrompt(report)
	if err != nil {
		return Advice{}, err
	}
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		MaxTokens:   1024,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return Advice{}, err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return parseAdvice(sb.String())
}

type promptFinding struct {
	Field    string `json:"field"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type promptCategory struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

func buildPrompt(report *models.ValuationReport) (string, error) {
	payload := struct {
		Findings   []promptFinding  `json:"findings"`
		Categories []promptCategory `json:"readiness_categories,omitempty"`
		Overall    *int             `json:"readiness_overall,omitempty"`
		Valuation  string           `json:"valuation,omitempty"`
	}{Findings: []promptFinding{}}

	for _, f := range report.Findings {
		payload.Findings = append(payload.Findings, promptFinding{Field: f.Field, Severity: string(f.Severity), Message: f.Message})
	}
	if report.Readiness != nil {
		for _, c := range report.Readiness.Categories() {
			payload.Categories = append(payload.Categories, promptCategory{Category: string(c.Category), Score: c.Score})
		}
		overall := report.Readiness.Overall
		payload.Overall = &overall
	}
	if report.Blend != nil {
		payload.Valuation = money.Format(report.Blend.Value) + " " + report.Blend.Currency
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode advisory prompt: %w", err)
	}
	return "Assessment:\n" + string(data) + `

Return JSON of the form {"field_suggestions": {"<field>": ["..."]}, "recommendations": ["..."]}.
Only use field names that appear in the findings. At most three items per list.`, nil
}
