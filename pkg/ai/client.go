package ai

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	log "github.com/sirupsen/logrus"
)

const defaultModel = "gpt-4o-mini"

// Reporter turns analytics data into narrative insights through an
// OpenAI-compatible endpoint. A Reporter without credentials is disabled and
// reports raw data only.
type Reporter struct {
	client *openai.Client
	model  string
}

// NewReporter builds a reporter; it is disabled when endpoint or apiKey is empty
func NewReporter(endpoint, apiKey, model string, opts ...option.RequestOption) *Reporter {
	if model == "" {
		model = defaultModel
	}
	if endpoint == "" || apiKey == "" {
		log.Info("AI service disabled - AI_ENDPOINT and AI_API_KEY not provided")
		return &Reporter{model: model}
	}

	clientOpts := append([]option.RequestOption{
		option.WithBaseURL(endpoint),
		option.WithAPIKey(apiKey),
	}, opts...)
	client := openai.NewClient(clientOpts...)

	log.WithField("model", model).Info("AI service initialized")
	return &Reporter{client: &client, model: model}
}

// Enabled reports whether completions can be requested
func (r *Reporter) Enabled() bool {
	return r != nil && r.client != nil
}

func (r *Reporter) generateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if !r.Enabled() {
		return "", &AIError{Message: "AI service is not enabled"}
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemMessage),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userMessage),
					},
				},
			},
		},
		MaxTokens:   openai.Int(1200),
		Temperature: openai.Float(0.4),
	})
	if err != nil {
		log.WithError(err).Warn("AI API error")
		return "", &AIError{Message: "Failed to generate AI response", Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{Message: "AI returned empty response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// AIError represents an AI service error
type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AIError) Unwrap() error {
	return e.Cause
}
