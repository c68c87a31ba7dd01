package observability

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/stargate-service/internal/domain"
)

const sinkWriteTimeout = 2 * time.Second

// LogSink persists rendered log entries.
type LogSink interface {
	Append(ctx context.Context, entry *domain.LogEntry) error
}

// DBCore is a zapcore.Core writing each entry to the Logs table through a LogSink.
type DBCore struct {
	zapcore.LevelEnabler
	sink   LogSink
	fields []zapcore.Field
}

// NewDBCore builds a core enabled at level and above.
func NewDBCore(sink LogSink, level zapcore.LevelEnabler) *DBCore {
	return &DBCore{LevelEnabler: level, sink: sink}
}

func (c *DBCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field{}, c.fields...), fields...)
	return &clone
}

func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.sink != nil && c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *DBCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ctx, cancel := context.WithTimeout(context.Background(), sinkWriteTimeout)
	defer cancel()

	return c.sink.Append(ctx, &domain.LogEntry{
		Level:       ent.Level.CapitalString(),
		Message:     render(ent.Message, append(append([]zapcore.Field{}, c.fields...), fields...)),
		CreatedDate: ent.Time.UTC(),
	})
}

func (c *DBCore) Sync() error {
	return nil
}

// render appends structured fields to the message as a JSON object.
func render(message string, fields []zapcore.Field) string {
	if len(fields) == 0 {
		return message
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	raw, err := json.Marshal(enc.Fields)
	if err != nil {
		return message
	}
	return message + " " + string(raw)
}
