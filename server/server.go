package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/syncmap"

	"github.com/misteriaud/passeri/internal/logging"
	"github.com/misteriaud/passeri/schema"
)

// Server represents a bridge backend endpoint
type Server struct {
	newImplementer NewImplementer

	loggerName   string
	loggingLevel schema.LoggingLevel
	logger       *slog.Logger

	stdioServer
	httpServer
}

// NewHandler creates a new handler instance
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	handler := s.newHandler(ctx, transport)
	return handler
}

func (s *Server) newHandler(ctx context.Context, transport transport.Transport) *Handler {
	ret := &Handler{
		Server:         s,
		Notifier:       transport,
		activeContexts: syncmap.NewMap[int, *activeContext](),
		loggingLevel:   newLevelVar(s.loggingLevel),
	}
	ret.Logger = newLogger(ret.loggerName, ret.loggingLevel, ret.Notifier)
	ret.implementer, ret.err = s.newImplementer(ctx, transport, ret.Logger)
	if ret.err != nil {
		s.logger.Error("failed to create implementer", "error", ret.err)
	}
	return ret
}

// New creates a new Server instance
func New(options ...Option) (*Server, error) {
	s := &Server{
		loggerName:   "backend",
		loggingLevel: schema.LoggingLevelInfo,
		logger:       logging.Nop(),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	if s.newImplementer == nil {
		return nil, errors.New("no implementer specified")
	}
	return s, nil
}
