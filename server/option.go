package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/viant/jsonrpc/transport/server/stdio"

	"github.com/misteriaud/passeri/schema"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithCORS guards the HTTP endpoints with cors.
func WithCORS(cors *Cors) Option {
	return func(s *Server) error {
		s.cors = cors
		return nil
	}
}

// WithNewImplementer sets the new implementer.
func WithNewImplementer(newImplementer NewImplementer) Option {
	return func(s *Server) error {
		s.newImplementer = newImplementer
		return nil
	}
}

// WithLoggerName sets the name reported in log notifications.
func WithLoggerName(name string) Option {
	return func(s *Server) error {
		s.loggerName = name
		return nil
	}
}

// WithLoggingLevel sets the initial level of log notifications sent to clients.
func WithLoggingLevel(level schema.LoggingLevel) Option {
	return func(s *Server) error {
		if !level.IsValid() {
			return fmt.Errorf("unsupported logging level: %v", level)
		}
		s.loggingLevel = level
		return nil
	}
}

// WithLogger sets the process logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithStdioOptions passes options to the stdio transport.
func WithStdioOptions(options ...stdio.Option) Option {
	return func(s *Server) error {
		s.stdioServerOption = append(s.stdioServerOption, options...)
		return nil
	}
}

// WithEndpointAddress sets the default HTTP listen address.
func WithEndpointAddress(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithStreamableURI sets the streamable HTTP endpoint path.
func WithStreamableURI(uri string) Option {
	return func(s *Server) error {
		s.streamableURI = uri
		return nil
	}
}

// WithSSEURI sets the SSE endpoint paths.
func WithSSEURI(uri, messageURI string) Option {
	return func(s *Server) error {
		s.sseURI = uri
		s.sseMessageURI = messageURI
		return nil
	}
}

// WithRootRedirect redirects "/" to the active HTTP transport.
func WithRootRedirect(flag bool) Option {
	return func(s *Server) error {
		s.rootRedirect = flag
		return nil
	}
}

// WithCustomHTTPHandler mounts an extra HTTP handler next to the JSON-RPC endpoints.
func WithCustomHTTPHandler(path string, handler http.HandlerFunc) Option {
	return func(s *Server) error {
		if s.customHTTPHandlers == nil {
			s.customHTTPHandlers = make(map[string]http.HandlerFunc)
		}
		s.customHTTPHandlers[path] = handler
		return nil
	}
}
