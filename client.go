package passeri

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/client/http/sse"
	"github.com/viant/jsonrpc/transport/client/http/streamable"
	"github.com/viant/jsonrpc/transport/client/stdio"

	"github.com/misteriaud/passeri/client"
)

const (
	TransportStdio      = "stdio"
	TransportSSE        = "sse"
	TransportStreamable = "streamable"
)

// ClientOptions defines options for connecting to a bridge backend.
type ClientOptions struct {
	Name      string          `yaml:"name,omitempty" json:"name,omitempty" env:"PASSERI_NAME" short:"n" long:"name" description:"client name"`
	Transport ClientTransport `yaml:"transport,omitempty" json:"transport,omitempty" group:"transport"`
	Timeout   time.Duration   `yaml:"timeout,omitempty" json:"timeout,omitempty" env:"PASSERI_TIMEOUT" long:"timeout" description:"per command timeout, e.g. 5s"`
	Retry     ClientRetry     `yaml:"retry,omitempty" json:"retry,omitempty" group:"retry"`
	LogLevel  string          `yaml:"logLevel,omitempty" json:"logLevel,omitempty" env:"PASSERI_LOG_LEVEL" short:"l" long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	LogFormat string          `yaml:"logFormat,omitempty" json:"logFormat,omitempty" env:"PASSERI_LOG_FORMAT" long:"log-format" description:"log format" choice:"text" choice:"json"`
}

// ClientTransport defines transport options for a backend client.
type ClientTransport struct {
	Type                 string `yaml:"type" json:"type" env:"PASSERI_TRANSPORT" short:"T" long:"transport-type" description:"backend transport type" choice:"stdio" choice:"sse" choice:"streamable"`
	ClientTransportStdio `yaml:",inline"`
	ClientTransportHTTP  `yaml:",inline"`
}

// ClientTransportStdio defines options for a backend launched as a child process.
type ClientTransportStdio struct {
	Command   string   `yaml:"command,omitempty" json:"command,omitempty" env:"PASSERI_COMMAND" short:"C" long:"command" description:"backend command"`
	Arguments []string `yaml:"arguments,omitempty" json:"arguments,omitempty" env:"PASSERI_ARGUMENTS" short:"A" long:"arguments" description:"backend command arguments"`
}

// ClientTransportHTTP defines options for a backend reached over HTTP.
type ClientTransportHTTP struct {
	URL string `yaml:"url,omitempty" json:"url,omitempty" env:"PASSERI_URL" short:"u" long:"url" description:"backend url"`
}

// ClientRetry defines the bounded retry policy for calls that got no response.
type ClientRetry struct {
	Attempts int           `yaml:"attempts,omitempty" json:"attempts,omitempty" env:"PASSERI_RETRY_ATTEMPTS" long:"retry-attempts" description:"total tries per idempotent command"`
	Backoff  time.Duration `yaml:"backoff,omitempty" json:"backoff,omitempty" env:"PASSERI_RETRY_BACKOFF" long:"retry-backoff" description:"wait between tries"`
}

func (c *ClientOptions) Init() {
	if c.Name == "" {
		c.Name = "passeri"
	}
	if c.Transport.Type == "" {
		switch {
		case c.Transport.Command != "":
			c.Transport.Type = TransportStdio
		case c.Transport.URL != "":
			c.Transport.Type = TransportStreamable
		}
	}
	if c.Timeout == 0 {
		c.Timeout = client.DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Options builds command client options.
func (c *ClientOptions) Options() []client.Option {
	var result []client.Option
	if c.Timeout != 0 {
		result = append(result, client.WithTimeout(c.Timeout))
	}
	if c.Retry.Attempts > 1 {
		result = append(result, client.WithRetry(c.Retry.Attempts, c.Retry.Backoff))
	}
	return result
}

// NewClient connects to the backend described by options and checks it answers a ping.
func NewClient(ctx context.Context, options *ClientOptions, handler *client.Handler, opts ...client.Option) (*client.Client, error) {
	if options == nil {
		return nil, fmt.Errorf("client options were nil")
	}
	options.Init()
	if handler == nil {
		handler = client.NewHandler()
	}
	rpcTransport, err := options.getTransport(ctx, handler)
	if err != nil {
		return nil, err
	}
	cli := client.New(rpcTransport, append(options.Options(), opts...)...)
	if err = cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("backend did not answer ping: %w", err)
	}
	return cli, nil
}

// getTransport constructs a JSON-RPC transport based on ClientOptions.Transport.
func (c *ClientOptions) getTransport(ctx context.Context, handler *client.Handler) (transport.Transport, error) {
	switch c.Transport.Type {
	case TransportStdio:
		stdioOptions := c.Transport.ClientTransportStdio
		if stdioOptions.Command == "" {
			return nil, fmt.Errorf("command is required for stdio transport")
		}
		ret, err := stdio.New(stdioOptions.Command,
			stdio.WithHandler(handler),
			stdio.WithArguments(stdioOptions.Arguments...))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdio transport: %w", err)
		}
		return ret, nil
	case TransportSSE:
		if c.Transport.URL == "" {
			return nil, fmt.Errorf("URL is required for sse transport")
		}
		ret, err := sse.New(ctx, c.Transport.URL, sse.WithHandler(handler))
		if err != nil {
			return nil, fmt.Errorf("failed to create SSE transport: %w", err)
		}
		return ret, nil
	case TransportStreamable:
		if c.Transport.URL == "" {
			return nil, fmt.Errorf("URL is required for streamable transport")
		}
		ret, err := streamable.New(ctx, c.Transport.URL, streamable.WithHandler(handler))
		if err != nil {
			return nil, fmt.Errorf("failed to create streamable transport: %w", err)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("no transport configured")
	}
}
