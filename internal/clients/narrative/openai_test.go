package narrative_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lumina-api/internal/clients/narrative"
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
	"github.com/KirkDiggler/lumina-api/internal/testutils"
)

type chatRequest struct {
	Model          string  `json:"model"`
	Temperature    float64 `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type OpenAITestSuite struct {
	suite.Suite
	server *httptest.Server

	mu       sync.Mutex
	status   int
	reply    string
	requests []chatRequest
	auth     string
}

func TestOpenAISuite(t *testing.T) {
	suite.Run(t, new(OpenAITestSuite))
}

func (s *OpenAITestSuite) SetupTest() {
	s.status = http.StatusOK
	s.reply = ""
	s.requests = nil

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.requests = append(s.requests, req)
		s.auth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		if s.status != http.StatusOK {
			w.WriteHeader(s.status)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
			return
		}
		content, _ := json.Marshal(s.reply)
		_, _ = fmt.Fprintf(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "deepseek-chat",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": %s}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
		}`, content)
	}))
}

func (s *OpenAITestSuite) TearDownTest() {
	s.server.Close()
}

func (s *OpenAITestSuite) newClient(locale string, rolls ...int) narrative.Client {
	cfg := &narrative.Config{
		APIKey:     "test-key",
		BaseURL:    s.server.URL + "/v1",
		Locale:     locale,
		MaxRetries: -1,
		Roller:     testutils.NewScriptedRoller(rolls...),
	}
	client, err := narrative.NewOpenAICompatible(cfg)
	s.Require().NoError(err)
	return client
}

func (s *OpenAITestSuite) lastRequest() chatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().NotEmpty(s.requests)
	return s.requests[len(s.requests)-1]
}

func (s *OpenAITestSuite) TestGenerateCard() {
	s.reply = `{"title":"Compassion","description":"You are held.","action":"Rest.","effect":{"awareness":0,"pain":0,"service":0}}`
	client := s.newClient("en")

	out, err := client.GenerateCard(context.Background(), &narrative.GenerateCardInput{
		Intention: "heal my heart",
		Level:     transformation.LevelEmotional,
		Square:    transformation.SquareAngel,
	})
	s.Require().NoError(err)
	s.Assert().False(out.Fallback)
	s.Assert().Equal("Compassion", out.Card.Title)

	req := s.lastRequest()
	s.Assert().Equal("deepseek-chat", req.Model)
	s.Assert().InDelta(0.7, req.Temperature, 0.0001)
	s.Require().NotNil(req.ResponseFormat)
	s.Assert().Equal("json_object", req.ResponseFormat.Type)
	s.Require().Len(req.Messages, 2)
	s.Assert().Equal("system", req.Messages[0].Role)
	s.Assert().Contains(req.Messages[1].Content, "heal my heart")
	s.Assert().Contains(req.Messages[1].Content, "Emotional Level")
	s.Assert().Equal("Bearer test-key", s.auth)
}

func (s *OpenAITestSuite) TestInspirationForcesThemeTitle() {
	s.reply = "```json\n" +
		`{"title":"Something Else","description":"d","action":"a","effect":{"awareness":2}}` +
		"\n```"
	client := s.newClient("en", 2)

	out, err := client.GenerateCard(context.Background(), &narrative.GenerateCardInput{
		Intention: "finish my book",
		Level:     transformation.LevelPhysical,
		Square:    transformation.SquareInspiration,
		Source:    transformation.CardSourceEnvelope,
	})
	s.Require().NoError(err)
	s.Assert().Equal("Discipline", out.Card.Title)
	s.Assert().Equal(2, out.Card.Effect.Awareness)

	req := s.lastRequest()
	s.Assert().Contains(req.Messages[1].Content, `"Discipline"`)
	s.Assert().Contains(req.Messages[1].Content, "subconscious envelope")
}

func (s *OpenAITestSuite) TestChinesePrompt() {
	s.reply = `{"title":"勇气","description":"d","action":"a","effect":{}}`
	client := s.newClient("zh-CN")

	_, err := client.GenerateCard(context.Background(), &narrative.GenerateCardInput{
		Intention: "找到平静",
		Level:     transformation.LevelSpiritual,
		Square:    transformation.SquareBlessing,
	})
	s.Require().NoError(err)
	s.Assert().Contains(s.lastRequest().Messages[1].Content, "灵性层面")
}

func (s *OpenAITestSuite) TestMalformedReply() {
	s.reply = `{"title":"Only a title"}`
	client := s.newClient("en")

	_, err := client.GenerateCard(context.Background(), &narrative.GenerateCardInput{
		Level:  transformation.LevelPhysical,
		Square: transformation.SquareService,
	})
	s.Require().Error(err)
	s.Assert().True(narrative.IsMalformed(err))
}

func (s *OpenAITestSuite) TestProviderFailure() {
	s.status = http.StatusInternalServerError
	client := s.newClient("en")

	_, err := client.GenerateCard(context.Background(), &narrative.GenerateCardInput{
		Level:  transformation.LevelPhysical,
		Square: transformation.SquareService,
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsUnavailable(err))
	s.Assert().False(narrative.IsMalformed(err))
}

func (s *OpenAITestSuite) TestWithFallbackSubstitutesCard() {
	s.status = http.StatusBadGateway
	client := narrative.WithFallback(s.newClient("en"), "en")

	out, err := client.GenerateCard(context.Background(), &narrative.GenerateCardInput{
		Level:  transformation.LevelMental,
		Square: transformation.SquareUniverse,
	})
	s.Require().NoError(err)
	s.Assert().True(out.Fallback)
	s.Assert().Equal("Silent Whisper", out.Card.Title)

	msg, err := client.GenerateGraduationMessage(context.Background(), &narrative.GenerateGraduationMessageInput{
		Level: transformation.LevelMental,
	})
	s.Require().NoError(err)
	s.Assert().True(msg.Fallback)
	s.Assert().Equal("You have advanced to the next level.", msg.Message)
}

func (s *OpenAITestSuite) TestWithFallbackKeepsCancellation() {
	client := narrative.WithFallback(s.newClient("en"), "en")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateCard(ctx, &narrative.GenerateCardInput{
		Level:  transformation.LevelMental,
		Square: transformation.SquareUniverse,
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsCanceled(err))
}

func (s *OpenAITestSuite) TestGraduationMessage() {
	s.reply = "  Well done. You walked every step.  "
	client := s.newClient("en")

	out, err := client.GenerateGraduationMessage(context.Background(), &narrative.GenerateGraduationMessageInput{
		Intention: "be brave",
		Level:     transformation.LevelPhysical,
	})
	s.Require().NoError(err)
	s.Assert().Equal("Well done. You walked every step.", out.Message)

	req := s.lastRequest()
	s.Assert().Nil(req.ResponseFormat)
	s.Assert().Contains(req.Messages[1].Content, "Physical Level")
}

func (s *OpenAITestSuite) TestEmptyGraduationMessage() {
	s.reply = ""
	client := s.newClient("en")

	out, err := client.GenerateGraduationMessage(context.Background(), &narrative.GenerateGraduationMessageInput{
		Level: transformation.LevelPhysical,
	})
	s.Require().NoError(err)
	s.Assert().Equal("You have transcended this level.", out.Message)
}

func (s *OpenAITestSuite) TestInvalidInput() {
	client := s.newClient("en")

	_, err := client.GenerateCard(context.Background(), &narrative.GenerateCardInput{
		Level:  "ASTRAL",
		Square: transformation.SquareAngel,
	})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = narrative.NewOpenAICompatible(&narrative.Config{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OpenAITestSuite) TestNewSelectsClient() {
	client, err := narrative.New(&narrative.Config{Locale: "en"})
	s.Require().NoError(err)

	out, err := client.GenerateCard(context.Background(), &narrative.GenerateCardInput{
		Level:  transformation.LevelPhysical,
		Square: transformation.SquareAngel,
	})
	s.Require().NoError(err)
	s.Assert().True(out.Fallback)
	s.Assert().Empty(s.requests)

	_, err = narrative.New(&narrative.Config{APIKey: "k", BaseURL: "::not a url"})
	s.Assert().Error(err)
}
