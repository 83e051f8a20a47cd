package backend

import (
	"context"
	"time"

	"github.com/misteriaud/passeri"
)

// Options are the backend command line options. Flags override values read
// from Config and the environment.
type Options struct {
	Config       string        `short:"c" long:"config" description:"server config URL (yaml)"`
	Transport    string        `short:"T" long:"transport" description:"transport to serve" choice:"stdio" choice:"sse" choice:"streamable"`
	Address      string        `short:"a" long:"address" description:"http listen address, e.g. 127.0.0.1:5000"`
	Port         int           `short:"p" long:"port" description:"http listen port"`
	LoggingLevel string        `long:"logging-level" description:"minimum level of log notifications sent to clients" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	Latency      time.Duration `long:"latency" description:"artificial delay applied to every bridge command"`
	LogLevel     string        `short:"l" long:"log-level" description:"process log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	LogFormat    string        `long:"log-format" description:"process log format" choice:"text" choice:"json" default:"text"`
}

// ServerOptions loads Config and the environment and applies the flags on top.
func (o *Options) ServerOptions(ctx context.Context) (*passeri.ServerOptions, error) {
	ret, err := passeri.LoadServerOptions(ctx, o.Config)
	if err != nil {
		return nil, err
	}
	if ret.Transport == nil {
		ret.Transport = &passeri.ServerTransport{}
	}
	if o.Transport != "" {
		ret.Transport.Type = o.Transport
	}
	if ret.Transport.Type == "" {
		ret.Transport.Type = passeri.TransportStdio
	}
	if o.Address != "" {
		ret.Transport.Address = o.Address
	}
	if o.Port != 0 {
		ret.Transport.Port = o.Port
	}
	if o.LoggingLevel != "" {
		ret.LoggingLevel = o.LoggingLevel
	}
	return ret, nil
}
