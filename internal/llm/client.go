package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// StreamRequest describes one structured-output generation.
type StreamRequest struct {
	// SystemInstruction constrains the model to the structured payload
	SystemInstruction string
	// Prompt is the profile-derived user instruction
	Prompt string
	// Schema is the structured-output schema the response must follow
	Schema *genai.Schema
	// Temperature is the sampling temperature
	Temperature float32
	// Tier selects the model
	Tier ModelTier
}

// Chunk is one incremental unit of a streamed response.
// Text is empty for chunks that carry no payload, such as metadata-only chunks.
type Chunk struct {
	Text string
}

// ChunkSource yields chunks in arrival order.
// Next returns io.EOF once the stream is exhausted; any other error ends the stream.
type ChunkSource interface {
	Next(ctx context.Context) (Chunk, error)
}

// Streamer opens chunk sources.
type Streamer interface {
	StreamJSON(ctx context.Context, req StreamRequest) (ChunkSource, error)
}

// Client is an abstraction over LLM providers
type Client interface {
	Streamer
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// StreamJSON starts a streamed JSON generation. Transport errors surface from the first Next call.
func (c *GeminiClient) StreamJSON(ctx context.Context, req StreamRequest) (ChunkSource, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(req.Temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = req.Schema
	if req.SystemInstruction != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.SystemInstruction))
	}

	return &geminiStream{it: model.GenerateContentStream(ctx, genai.Text(req.Prompt))}, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseIterator is the subset of genai.GenerateContentResponseIterator used here
type responseIterator interface {
	Next() (*genai.GenerateContentResponse, error)
}

type geminiStream struct {
	it responseIterator
}

func (s *geminiStream) Next(ctx context.Context) (Chunk, error) {
	if err := ctx.Err(); err != nil {
		return Chunk{}, err
	}

	resp, err := s.it.Next()
	if errors.Is(err, iterator.Done) {
		return Chunk{}, io.EOF
	}
	if err != nil {
		return Chunk{}, fmt.Errorf("stream failed: %w", err)
	}

	return Chunk{Text: chunkText(resp)}, nil
}

// chunkText joins the text parts of the first candidate. Responses without text yield "".
func chunkText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
