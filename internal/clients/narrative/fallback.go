package narrative

import (
	"context"
	"log/slog"
)

type fallbackClient struct {
	locale string
}

// NewFallback returns the client used when no provider is configured. Every
// card is the fixed fallback card and every graduation message is generic.
func NewFallback(locale string) Client {
	return &fallbackClient{locale: locale}
}

func (c *fallbackClient) GenerateCard(_ context.Context, input *GenerateCardInput) (*GenerateCardOutput, error) {
	if err := validateCardInput(input); err != nil {
		return nil, err
	}
	slog.Info("Narrative provider not configured, using fallback card",
		"level", input.Level,
		"square", input.Square,
	)
	return &GenerateCardOutput{Card: FallbackCard(c.locale), Fallback: true}, nil
}

func (c *fallbackClient) GenerateGraduationMessage(
	_ context.Context,
	input *GenerateGraduationMessageInput,
) (*GenerateGraduationMessageOutput, error) {
	level := ""
	if input != nil {
		level = string(input.Level)
	}
	slog.Info("Narrative provider not configured, using fallback graduation message", "level", level)
	return &GenerateGraduationMessageOutput{Message: FallbackGraduationMessage(c.locale), Fallback: true}, nil
}

type withFallback struct {
	next   Client
	locale string
}

// WithFallback substitutes fallback content when next fails. Transport and
// malformed-reply failures get the same content and differ only in the log
// message. Cancellation and invalid input are returned unchanged.
func WithFallback(next Client, locale string) Client {
	return &withFallback{next: next, locale: locale}
}

func (c *withFallback) GenerateCard(ctx context.Context, input *GenerateCardInput) (*GenerateCardOutput, error) {
	if err := validateCardInput(input); err != nil {
		return nil, err
	}

	out, err := c.next.GenerateCard(ctx, input)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	if IsMalformed(err) {
		slog.Warn("Narrative response malformed, using fallback card",
			"level", input.Level, "square", input.Square, "error", err)
	} else {
		slog.Warn("Narrative provider failed, using fallback card",
			"level", input.Level, "square", input.Square, "error", err)
	}
	return &GenerateCardOutput{Card: FallbackCard(c.locale), Fallback: true}, nil
}

func (c *withFallback) GenerateGraduationMessage(
	ctx context.Context,
	input *GenerateGraduationMessageInput,
) (*GenerateGraduationMessageOutput, error) {
	out, err := c.next.GenerateGraduationMessage(ctx, input)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	slog.Warn("Graduation message failed, using fallback", "error", err)
	return &GenerateGraduationMessageOutput{Message: FallbackGraduationMessage(c.locale), Fallback: true}, nil
}

// New picks the client for cfg: the fallback client without an API key,
// otherwise the OpenAI compatible client wrapped with WithFallback.
func New(cfg *Config) (Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		locale := ""
		if cfg != nil {
			locale = cfg.Locale
		}
		return NewFallback(locale), nil
	}

	remote, err := NewOpenAICompatible(cfg)
	if err != nil {
		return nil, err
	}
	return WithFallback(remote, cfg.Locale), nil
}
