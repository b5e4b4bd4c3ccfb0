package narrative

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

const tracerName = "github.com/KirkDiggler/lumina-api/internal/clients/narrative"

var tracer = otel.Tracer(tracerName)

type openAIClient struct {
	chat        openai.ChatCompletionService
	model       string
	temperature float64
	catalog     *catalog
	roller      dice.Roller
}

// NewOpenAICompatible creates a client for any OpenAI compatible chat
// completions API. Errors are returned as is; wrap with WithFallback to
// substitute fallback content.
func NewOpenAICompatible(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, errors.InvalidArgument("narrative: api key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	client := openai.NewClient(opts...)

	return &openAIClient{
		chat:        client.Chat.Completions,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		catalog:     catalogFor(cfg.Locale),
		roller:      cfg.Roller,
	}, nil
}

func (c *openAIClient) GenerateCard(ctx context.Context, input *GenerateCardInput) (*GenerateCardOutput, error) {
	if err := validateCardInput(input); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "narrative.GenerateCard", trace.WithAttributes(
		attribute.String("lumina.level", string(input.Level)),
		attribute.String("lumina.square", string(input.Square)),
		attribute.String("lumina.card_source", string(input.Source)),
		attribute.String("lumina.locale", c.catalog.tag.String()),
		attribute.String("gen_ai.request.model", c.model),
	))
	defer span.End()

	theme := ""
	if input.Square == transformation.SquareInspiration {
		theme = c.pickTheme(input.Level)
		span.SetAttributes(attribute.String("lumina.theme", theme))
	}

	p := c.catalog.buildCardPrompt(input, theme)
	text, err := c.complete(ctx, p, true)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	card, err := parseCard(text)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	if theme != "" {
		card.Title = theme
	}

	return &GenerateCardOutput{Card: card}, nil
}

func (c *openAIClient) GenerateGraduationMessage(
	ctx context.Context,
	input *GenerateGraduationMessageInput,
) (*GenerateGraduationMessageOutput, error) {
	if input == nil || !input.Level.IsValid() {
		return nil, errors.InvalidArgument("a valid level is required")
	}

	ctx, span := tracer.Start(ctx, "narrative.GenerateGraduationMessage", trace.WithAttributes(
		attribute.String("lumina.level", string(input.Level)),
		attribute.String("lumina.locale", c.catalog.tag.String()),
		attribute.String("gen_ai.request.model", c.model),
	))
	defer span.End()

	text, err := c.complete(ctx, c.catalog.buildGraduationPrompt(input), false)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	message := strings.TrimSpace(text)
	if message == "" {
		message = c.catalog.graduationEmpty
	}
	return &GenerateGraduationMessageOutput{Message: message}, nil
}

func (c *openAIClient) complete(ctx context.Context, p prompt, jsonReply bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.system),
			openai.UserMessage(p.user),
		},
		Temperature: openai.Float(c.temperature),
	}
	if jsonReply {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := c.chat.New(ctx, params)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.WrapWithCode(ctxErr, errors.GetCode(ctxErr), "narrative request abandoned")
		}
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "narrative provider request failed").
			WithMeta(MetaKeyReason, ReasonTransport)
	}

	if len(completion.Choices) == 0 {
		return "", malformed("narrative response has no choices")
	}

	slog.Debug("Narrative completion received",
		"model", completion.Model,
		"prompt_tokens", completion.Usage.PromptTokens,
		"completion_tokens", completion.Usage.CompletionTokens,
	)

	return completion.Choices[0].Message.Content, nil
}

// pickTheme draws one awareness-token theme for the level
func (c *openAIClient) pickTheme(level transformation.Level) string {
	themes := c.catalog.themes[level]
	if len(themes) == 0 {
		return ""
	}

	roll, err := c.roller.Roll(len(themes))
	if err != nil || roll < 1 || roll > len(themes) {
		slog.Warn("Theme roll failed, using first theme", "level", level, "error", err)
		return themes[0]
	}
	return themes[roll-1]
}

func validateCardInput(input *GenerateCardInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if !input.Level.IsValid() {
		vb.InvalidField("level", string(input.Level))
	}
	if !input.Square.IsValid() {
		vb.InvalidField("square", string(input.Square))
	}
	if input.Source != "" && !input.Source.IsValid() {
		vb.InvalidField("source", string(input.Source))
	}
	return vb.Build()
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, errors.GetMessage(err))
}
