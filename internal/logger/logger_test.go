package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	appCtx "github.com/nakama-dev/auth-backend/internal/pkg/context"
)

func TestInitWithWriter_JSONFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Debug().Str("k", "v").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) || !strings.Contains(out, `"k":"v"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInitWithWriter_LevelFiltering(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "warn")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Info().Msg("dropped")
	Logger.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line not filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestInitWithWriter_BadLevelDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "loud")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Info().Msg("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("info line missing: %q", buf.String())
	}
}

func TestWithCtx_AttachesRequestID(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "info")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	ctx := appCtx.WithRequestID(context.Background(), "req-7")
	WithCtx(ctx).Info().Msg("tagged")

	if !strings.Contains(buf.String(), `"request_id":"req-7"`) {
		t.Fatalf("request id missing: %q", buf.String())
	}

	buf.Reset()
	WithCtx(context.Background()).Info().Msg("untagged")
	if strings.Contains(buf.String(), "request_id") {
		t.Fatalf("unexpected request id: %q", buf.String())
	}
}
