package otel

import (
	"context"
	"strings"
	"testing"

	"github.com/ledger-calendar-bot/assistant/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTelemetryImpl_ZeroValueIsNoOp(t *testing.T) {
	o := &OpenTelemetryImpl{}

	assert.NotPanics(t, func() {
		o.RecordMessage(context.Background(), "finance", "ok")
		o.RecordCollaboratorLatency(context.Background(), "ledger", "append", 12.5)
	})
	assert.NoError(t, o.Shutdown(context.Background()))
}

func TestOpenTelemetryImpl_ExportsToPrometheus(t *testing.T) {
	registry := prometheus.NewRegistry()
	o := &OpenTelemetryImpl{}

	err := o.Init(config.Config{ApplicationName: "test-assistant"}, registry)
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Shutdown(context.Background()) })

	ctx := context.Background()
	o.RecordMessage(ctx, "finance", "ok")
	o.RecordMessage(ctx, "schedule", "format_mismatch")
	o.RecordCollaboratorLatency(ctx, "calendar", "create-event", 42)

	families, err := registry.Gather()
	require.NoError(t, err)

	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}

	assert.True(t, hasPrefix(names, "assistant_messages"), "metrics: %v", names)
	assert.True(t, hasPrefix(names, "assistant_collaborator_latency"), "metrics: %v", names)
}

func hasPrefix(names []string, prefix string) bool {
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
