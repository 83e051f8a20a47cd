package server

import (
	"context"

	"github.com/viant/jsonrpc/transport/server/stdio"
)

type stdioServer struct {
	stdioServerOption []stdio.Option
}

// Stdio serves a single client over the process stdin and stdout. Nothing
// else may write to stdout while it runs.
func (s *Server) Stdio(ctx context.Context) *stdio.Server {
	s.logger.Info("stdio endpoint", "logger", s.loggerName, "level", s.loggingLevel)
	return stdio.New(ctx, s.NewHandler, s.stdioServerOption...)
}
