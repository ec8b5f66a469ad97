package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		env       string
		wantJSON  bool
		wantDebug bool
	}{
		{env: "dev", wantJSON: false, wantDebug: true},
		{env: "", wantJSON: false, wantDebug: true},
		{env: "staging", wantJSON: true, wantDebug: true},
		{env: "prod", wantJSON: true, wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.env, &buf)

			assert.Equal(t, tt.wantDebug, log.Enabled(context.Background(), slog.LevelDebug))

			log.Info("hello")
			assert.Equal(t, tt.wantJSON, json.Valid(bytes.TrimSpace(buf.Bytes())))
		})
	}
}
