package xzap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	logging "github.com/ProjectsTask/TraitSigner/base/logger"
)

func TestSetUpFileMode(t *testing.T) {
	dir := t.TempDir()
	_, err := SetUp(logging.LogConf{
		ServiceName: "trait-signer",
		Mode:        logging.ModeFile,
		Path:        dir,
		Level:       "debug",
		MaxSize:     1,
	})
	require.NoError(t, err)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	WithContext(ctx).Info("hello")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "trait-signer.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"request_id":"req-1"`)
	assert.Contains(t, string(data), `"service":"trait-signer"`)
}

func TestSetUpRejectsBadConfig(t *testing.T) {
	_, err := SetUp(logging.LogConf{Level: "loud"})
	assert.Error(t, err)

	_, err = SetUp(logging.LogConf{Encoding: "xml"})
	assert.Error(t, err)

	_, err = SetUp(logging.LogConf{Mode: logging.ModeFile})
	assert.Error(t, err)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Equal(t, "abc", RequestIDFromContext(ContextWithRequestID(context.Background(), "abc")))
}

func TestWithContextTrace(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	assert.NotNil(t, WithContext(ctx))
}
