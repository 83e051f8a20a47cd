package server

import (
	"context"
	"net/http"

	"github.com/viant/jsonrpc/transport/server/http/sse"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
)

const (
	defaultAddr          = "127.0.0.1:5000"
	defaultSSEURI        = "/sse"
	defaultMessageURI    = "/message"
	defaultStreamableURI = "/bridge"
)

type httpServer struct {
	addr               string
	sseURI             string
	sseMessageURI      string
	streamableURI      string
	useStreamableHTTP  bool
	rootRedirect       bool
	cors               *Cors
	customHTTPHandlers map[string]http.HandlerFunc
}

// UseStreamableHTTP makes the root redirect point at the streamable endpoint instead of SSE.
func (s *Server) UseStreamableHTTP(flag bool) {
	s.useStreamableHTTP = flag
}

func (s *httpServer) applyDefaults(addr string) string {
	if addr == "" {
		addr = s.addr
	}
	if addr == "" {
		addr = defaultAddr
	}
	if s.sseURI == "" {
		s.sseURI = defaultSSEURI
	}
	if s.sseMessageURI == "" {
		s.sseMessageURI = defaultMessageURI
	}
	if s.streamableURI == "" {
		s.streamableURI = defaultStreamableURI
	}
	return addr
}

func (s *httpServer) middlewares() []Middleware {
	if s.cors == nil {
		return nil
	}
	return []Middleware{s.cors.Middleware}
}

// HTTP returns an http.Server exposing the SSE and streamable endpoints side
// by side. An empty addr falls back to the configured endpoint address.
func (s *Server) HTTP(_ context.Context, addr string) *http.Server {
	addr = s.applyDefaults(addr)
	mws := s.middlewares()

	sseHandler := chain(sse.New(s.NewHandler,
		sse.WithURI(s.sseURI),
		sse.WithMessageURI(s.sseMessageURI),
	), mws...)
	streamableHandler := chain(streamable.New(s.NewHandler,
		streamable.WithURI(s.streamableURI),
	), mws...)

	mux := http.NewServeMux()
	for path, handler := range s.customHTTPHandlers {
		mux.Handle(path, handler)
	}
	mux.Handle(s.sseURI, sseHandler)
	mux.Handle(s.sseMessageURI, sseHandler)
	mux.Handle(s.streamableURI, streamableHandler)
	if s.rootRedirect {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			target := s.sseURI
			if s.useStreamableHTTP {
				target = s.streamableURI
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
	s.logger.Info("http endpoints", "addr", addr, "sse", s.sseURI, "message", s.sseMessageURI, "streamable", s.streamableURI)
	return &http.Server{Addr: addr, Handler: mux}
}
