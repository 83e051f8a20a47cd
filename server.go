package passeri

import (
	"fmt"
	"log/slog"

	"github.com/misteriaud/passeri/schema"
	"github.com/misteriaud/passeri/server"
)

// ServerOptions defines options for configuring a bridge backend server.
type ServerOptions struct {
	LoggerName   string           `yaml:"loggerName,omitempty" json:"loggerName,omitempty" env:"PASSERI_BACKEND_LOGGER"`
	LoggingLevel string           `yaml:"loggingLevel,omitempty" json:"loggingLevel,omitempty" env:"PASSERI_BACKEND_LOGGING_LEVEL"`
	Transport    *ServerTransport `yaml:"transport,omitempty" json:"transport,omitempty"`
}

// ServerTransport defines how the backend is exposed.
type ServerTransport struct {
	Type          string       `yaml:"type" json:"type" env:"PASSERI_BACKEND_TRANSPORT"`
	Port          int          `yaml:"port,omitempty" json:"port,omitempty" env:"PASSERI_BACKEND_PORT"`
	Address       string       `yaml:"address,omitempty" json:"address,omitempty" env:"PASSERI_BACKEND_ADDRESS"`
	SSEURI        string       `yaml:"sseURI,omitempty" json:"sseURI,omitempty"`
	SSEMessageURI string       `yaml:"sseMessageURI,omitempty" json:"sseMessageURI,omitempty"`
	StreamableURI string       `yaml:"streamableURI,omitempty" json:"streamableURI,omitempty"`
	RootRedirect  bool         `yaml:"rootRedirect,omitempty" json:"rootRedirect,omitempty"`
	Cors          *server.Cors `yaml:"cors,omitempty" json:"cors,omitempty"`
}

// NewServer creates a new backend server with the given implementer and options.
// extra server options are applied last.
func NewServer(newImplementer server.NewImplementer, options *ServerOptions, logger *slog.Logger, extra ...server.Option) (*server.Server, error) {
	if newImplementer == nil {
		return nil, fmt.Errorf("new implementer was nil")
	}
	var serverOptions []server.Option
	serverOptions = append(serverOptions, server.WithNewImplementer(newImplementer), server.WithLogger(logger))
	if options == nil {
		return server.New(append(serverOptions, extra...)...)
	}
	if options.LoggerName != "" {
		serverOptions = append(serverOptions, server.WithLoggerName(options.LoggerName))
	}
	if options.LoggingLevel != "" {
		serverOptions = append(serverOptions, server.WithLoggingLevel(schema.LoggingLevel(options.LoggingLevel)))
	}
	if transportOptions := options.Transport; transportOptions != nil {
		switch {
		case transportOptions.Address != "":
			serverOptions = append(serverOptions, server.WithEndpointAddress(transportOptions.Address))
		case transportOptions.Port > 0:
			serverOptions = append(serverOptions, server.WithEndpointAddress(fmt.Sprintf(":%v", transportOptions.Port)))
		}
		if transportOptions.Cors != nil {
			serverOptions = append(serverOptions, server.WithCORS(transportOptions.Cors))
		}
		if transportOptions.SSEURI != "" || transportOptions.SSEMessageURI != "" {
			serverOptions = append(serverOptions, server.WithSSEURI(transportOptions.SSEURI, transportOptions.SSEMessageURI))
		}
		if transportOptions.StreamableURI != "" {
			serverOptions = append(serverOptions, server.WithStreamableURI(transportOptions.StreamableURI))
		}
		if transportOptions.RootRedirect {
			serverOptions = append(serverOptions, server.WithRootRedirect(true))
		}
	}
	srv, err := server.New(append(serverOptions, extra...)...)
	if err != nil {
		return nil, err
	}
	if options.Transport != nil && options.Transport.Type == TransportStreamable {
		srv.UseStreamableHTTP(true)
	}
	return srv, nil
}
