package llm

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
)

type fakeIterator struct {
	responses []*genai.GenerateContentResponse
	err       error
}

func (f *fakeIterator) Next() (*genai.GenerateContentResponse, error) {
	if len(f.responses) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, iterator.Done
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestGeminiStream_YieldsChunksThenEOF(t *testing.T) {
	stream := &geminiStream{it: &fakeIterator{responses: []*genai.GenerateContentResponse{
		textResponse(genai.Text(`{"weeklyPlan":[`)),
		{},
		textResponse(genai.Text(`{"day":`), genai.Text(`"Monday"}`)),
	}}}
	ctx := context.Background()

	chunk, err := stream.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"weeklyPlan":[`, chunk.Text)

	chunk, err = stream.Next(ctx)
	require.NoError(t, err)
	assert.Empty(t, chunk.Text, "metadata-only responses carry no payload")

	chunk, err = stream.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"day":"Monday"}`, chunk.Text)

	_, err = stream.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGeminiStream_PropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	stream := &geminiStream{it: &fakeIterator{err: boom}}

	_, err := stream.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestGeminiStream_CancelledContext(t *testing.T) {
	stream := &geminiStream{it: &fakeIterator{responses: []*genai.GenerateContentResponse{textResponse(genai.Text("x"))}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stream.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChunkText(t *testing.T) {
	assert.Empty(t, chunkText(nil))
	assert.Empty(t, chunkText(&genai.GenerateContentResponse{}))
	assert.Empty(t, chunkText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
	assert.Empty(t, chunkText(textResponse(genai.Blob{MIMEType: "image/png"})))
	assert.Equal(t, "ab", chunkText(textResponse(genai.Text("a"), genai.Blob{}, genai.Text("b"))))
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), nil, "")
	assert.Nil(t, client)
	assert.EqualError(t, err, "API key is required")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}
