package pipeline

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jonathan/nutriplan/internal/llm"
	"github.com/jonathan/nutriplan/internal/testutil"
)

// fakeSource replays chunks, then returns err (or io.EOF when err is nil).
type fakeSource struct {
	chunks []llm.Chunk
	err    error
	i      int
}

func (f *fakeSource) Next(ctx context.Context) (llm.Chunk, error) {
	if f.i < len(f.chunks) {
		c := f.chunks[f.i]
		f.i++
		return c, nil
	}
	if f.err != nil {
		return llm.Chunk{}, f.err
	}
	return llm.Chunk{}, io.EOF
}

type fakeStreamer struct {
	source  llm.ChunkSource
	openErr error

	mu    sync.Mutex
	calls int
	req   llm.StreamRequest
}

func (f *fakeStreamer) StreamJSON(ctx context.Context, req llm.StreamRequest) (llm.ChunkSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.req = req
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.source, nil
}

func (f *fakeStreamer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func textSource(text string, size int) *fakeSource {
	src := &fakeSource{}
	for _, piece := range testutil.Chunks(text, size) {
		// metadata-only chunks between payloads
		src.chunks = append(src.chunks, llm.Chunk{Text: piece}, llm.Chunk{})
	}
	return src
}

// blockingSource blocks on the first Next until release is closed.
type blockingSource struct {
	opened  chan struct{}
	release chan struct{}
	inner   *fakeSource
	once    sync.Once
}

func newBlockingSource(inner *fakeSource) *blockingSource {
	return &blockingSource{
		opened:  make(chan struct{}),
		release: make(chan struct{}),
		inner:   inner,
	}
}

func (b *blockingSource) Next(ctx context.Context) (llm.Chunk, error) {
	b.once.Do(func() { close(b.opened) })
	select {
	case <-b.release:
	case <-ctx.Done():
		return llm.Chunk{}, ctx.Err()
	}
	return b.inner.Next(ctx)
}

type fakeRecorder struct {
	mu       sync.Mutex
	chunks   int
	days     []int
	outcomes []string
}

func (r *fakeRecorder) ChunkReceived() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks++
}

func (r *fakeRecorder) DayReached(day int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.days = append(r.days, day)
}

func (r *fakeRecorder) GenerationFinished(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}
