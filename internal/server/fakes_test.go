package server

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nutriplan/internal/llm"
	"github.com/jonathan/nutriplan/internal/metrics"
	"github.com/jonathan/nutriplan/internal/pipeline"
	"github.com/jonathan/nutriplan/internal/rendering"
	"github.com/jonathan/nutriplan/internal/server/ratelimit"
	"github.com/jonathan/nutriplan/internal/store"
	"github.com/jonathan/nutriplan/internal/testutil"
)

// chunkSource replays chunks, optionally waiting on gate before the first one.
type chunkSource struct {
	chunks []string
	gate   <-chan struct{}
	opened chan<- struct{}
	once   sync.Once
}

func (c *chunkSource) Next(ctx context.Context) (llm.Chunk, error) {
	c.once.Do(func() {
		if c.opened != nil {
			close(c.opened)
		}
		if c.gate != nil {
			<-c.gate
		}
	})
	if len(c.chunks) == 0 {
		return llm.Chunk{}, io.EOF
	}
	text := c.chunks[0]
	c.chunks = c.chunks[1:]
	return llm.Chunk{Text: text}, nil
}

// scriptedStreamer answers every request with the same text.
type scriptedStreamer struct {
	text    string
	openErr error
	gate    chan struct{}
	opened  chan struct{}
}

func (s *scriptedStreamer) StreamJSON(ctx context.Context, req llm.StreamRequest) (llm.ChunkSource, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &chunkSource{chunks: testutil.Chunks(s.text, 64), gate: s.gate, opened: s.opened}, nil
}

// fakeRasterizer returns a tall solid PNG regardless of the page.
type fakeRasterizer struct{}

func (fakeRasterizer) Rasterize(ctx context.Context, page, selector string) (rendering.Bitmap, error) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: 31, G: 41, B: 55, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return rendering.Bitmap{}, err
	}
	return rendering.DecodeBitmap(buf.Bytes())
}

type testEnv struct {
	server  *Server
	session *pipeline.Session
	store   *store.PlanStore
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T, streamer llm.Streamer, limits *ratelimit.Config) *testEnv {
	t.Helper()

	m := metrics.New()
	agg := pipeline.NewAggregator(streamer, pipeline.Options{Recorder: m})
	session := pipeline.NewSession(agg)
	st := store.New(store.NewMemory(), "", zerolog.Nop())
	exporter := rendering.NewExporter(fakeRasterizer{}, agg.Catalog(), rendering.WithExportRecorder(m))

	srv, err := New(Config{
		Session:   session,
		Store:     st,
		Exporter:  exporter,
		Metrics:   m,
		RateLimit: limits,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(srv.rateLimiter.Stop)

	return &testEnv{server: srv, session: session, store: st, metrics: m}
}
