package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"

	"github.com/misteriaud/passeri/schema"
)

// levelVar is the minimum notification level of one connection. It is set by
// logging/setLevel while other requests of the connection are logging.
type levelVar struct {
	mux   sync.RWMutex
	level schema.LoggingLevel
}

func (v *levelVar) Get() schema.LoggingLevel {
	v.mux.RLock()
	defer v.mux.RUnlock()
	return v.level
}

func (v *levelVar) Set(level schema.LoggingLevel) {
	v.mux.Lock()
	defer v.mux.Unlock()
	v.level = level
}

func newLevelVar(level schema.LoggingLevel) *levelVar {
	return &levelVar{level: level}
}

// Logger forwards backend log records to the connected client as
// notifications/message, honouring the level the client set.
type Logger struct {
	name     string
	level    *levelVar
	notifier transport.Notifier
}

// Logger creates a new logger with a name
func (l *Logger) Logger(name string) *Logger {
	return &Logger{
		name:     name,
		level:    l.level,
		notifier: l.notifier,
	}
}

func (l *Logger) log(ctx context.Context, level schema.LoggingLevel, data any) error {
	if l == nil || l.notifier == nil {
		return nil
	}
	if l.level == nil || l.level.Get().Ordinal() > level.Ordinal() {
		return nil
	}
	notification := &jsonrpc.Notification{Method: schema.MethodNotificationMessage}
	params := schema.LoggingMessageNotificationParams{
		Level:  level,
		Logger: l.name,
		Data:   data,
	}
	var err error
	notification.Params, err = json.Marshal(params)
	if err != nil {
		return err
	}
	return l.notifier.Notify(ctx, notification)
}

func (l *Logger) Debug(ctx context.Context, data interface{}) error {
	return l.log(ctx, schema.LoggingLevelDebug, data)
}

func (l *Logger) Info(ctx context.Context, data interface{}) error {
	return l.log(ctx, schema.LoggingLevelInfo, data)
}

func (l *Logger) Warning(ctx context.Context, data interface{}) error {
	return l.log(ctx, schema.LoggingLevelWarning, data)
}

func (l *Logger) Error(ctx context.Context, data interface{}) error {
	return l.log(ctx, schema.LoggingLevelError, data)
}

func newLogger(name string, level *levelVar, notifier transport.Notifier) *Logger {
	return &Logger{
		name:     name,
		level:    level,
		notifier: notifier,
	}
}
