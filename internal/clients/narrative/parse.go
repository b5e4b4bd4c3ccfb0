package narrative

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// MetaKeyReason is set on provider errors to tell malformed replies from
// transport failures
const MetaKeyReason = "reason"

// Failure reasons
const (
	ReasonMalformed = "malformed_response"
	ReasonTransport = "transport"
)

type cardPayload struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Action      string         `json:"action"`
	Effect      *effectPayload `json:"effect"`
}

type effectPayload struct {
	Awareness *float64 `json:"awareness"`
	Pain      *float64 `json:"pain"`
	Service   *float64 `json:"service"`
}

// stripCodeFence removes a surrounding markdown code block, with or without
// a json language hint
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func malformed(format string, args ...any) *errors.Error {
	return errors.Internalf(format, args...).WithMeta(MetaKeyReason, ReasonMalformed)
}

// IsMalformed reports whether err came from an unusable provider reply
func IsMalformed(err error) bool {
	reason, _ := errors.GetMeta(err)[MetaKeyReason].(string)
	return reason == ReasonMalformed
}

// parseCard decodes a provider reply. Title, description, action and the
// effect object are required; missing effect members count as zero.
func parseCard(text string) (*transformation.Card, error) {
	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return nil, malformed("narrative response is empty")
	}

	var payload cardPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "narrative response is not valid JSON").
			WithMeta(MetaKeyReason, ReasonMalformed)
	}

	var missing []string
	if strings.TrimSpace(payload.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(payload.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(payload.Action) == "" {
		missing = append(missing, "action")
	}
	if payload.Effect == nil {
		missing = append(missing, "effect")
	}
	if len(missing) > 0 {
		return nil, malformed("narrative response missing %s", strings.Join(missing, ", ")).
			WithMeta("missing", missing)
	}

	return &transformation.Card{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Action:      strings.TrimSpace(payload.Action),
		Effect: transformation.Effect{
			Awareness: toDelta(payload.Effect.Awareness),
			Pain:      toDelta(payload.Effect.Pain),
			Service:   toDelta(payload.Effect.Service),
		},
	}, nil
}

func toDelta(v *float64) int {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return int(math.Round(*v))
}
