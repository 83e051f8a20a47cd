package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/viant/jsonrpc"
)

const (
	headerOrigin           = "Origin"
	headerRequestMethod    = "Access-Control-Request-Method"
	headerAllowOrigin      = "Access-Control-Allow-Origin"
	headerAllowMethods     = "Access-Control-Allow-Methods"
	headerAllowHeaders     = "Access-Control-Allow-Headers"
	headerAllowCredentials = "Access-Control-Allow-Credentials"
	headerExposeHeaders    = "Access-Control-Expose-Headers"
	headerMaxAge           = "Access-Control-Max-Age"

	// session and replay headers used by the streamable and SSE transports
	defaultAllowHeaders  = "Content-Type, Mcp-Session-Id, Last-Event-ID"
	defaultExposeHeaders = "Content-Type, Mcp-Session-Id"
	defaultAllowMethods  = "GET, POST, DELETE, OPTIONS"
)

// Cors configures which browser origins may reach the HTTP endpoints.
// Requests without an Origin header (CLI clients) are always let through.
type Cors struct {
	AllowCredentials *bool    `yaml:"allowCredentials,omitempty" json:"allowCredentials,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty" json:"allowHeaders,omitempty"`
	AllowMethods     []string `yaml:"allowMethods,omitempty" json:"allowMethods,omitempty"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" json:"allowOrigins,omitempty"`
	ExposeHeaders    []string `yaml:"exposeHeaders,omitempty" json:"exposeHeaders,omitempty"`
	MaxAge           *int64   `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
}

// Allows reports whether origin may call the backend.
func (c *Cors) Allows(origin string) bool {
	if c == nil || origin == "" {
		return true
	}
	for _, candidate := range c.AllowOrigins {
		if candidate == "*" || strings.EqualFold(candidate, origin) {
			return true
		}
	}
	return false
}

// Middleware rejects disallowed origins, answers preflight requests and
// decorates every other response with the configured headers.
func (c *Cors) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get(headerOrigin)
		if !c.Allows(origin) {
			writeRPCError(w, http.StatusForbidden, jsonrpc.NewInvalidRequest("origin not allowed: "+origin, nil))
			return
		}
		c.setHeaders(w.Header(), origin)
		if r.Method == http.MethodOptions && r.Header.Get(headerRequestMethod) != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) setHeaders(header http.Header, origin string) {
	switch {
	case origin != "":
		header.Set(headerAllowOrigin, origin)
		header.Add("Vary", headerOrigin)
	case contains(c.AllowOrigins, "*"):
		header.Set(headerAllowOrigin, "*")
	}
	header.Set(headerAllowMethods, joinOrDefault(c.AllowMethods, defaultAllowMethods))
	header.Set(headerAllowHeaders, joinOrDefault(c.AllowHeaders, defaultAllowHeaders))
	if exposed := joinOrDefault(c.ExposeHeaders, defaultExposeHeaders); len(c.ExposeHeaders) > 0 {
		header.Set(headerExposeHeaders, exposed)
	}
	if c.AllowCredentials != nil {
		header.Set(headerAllowCredentials, strconv.FormatBool(*c.AllowCredentials))
	}
	if c.MaxAge != nil {
		header.Set(headerMaxAge, strconv.FormatInt(*c.MaxAge, 10))
	}
}

// joinOrDefault joins values; an empty list or a lone "*" yields fallback.
func joinOrDefault(values []string, fallback string) string {
	if len(values) == 0 || (len(values) == 1 && values[0] == "*") {
		return fallback
	}
	return strings.Join(values, ", ")
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func writeRPCError(w http.ResponseWriter, status int, rpcErr *jsonrpc.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&jsonrpc.Response{Jsonrpc: jsonrpc.Version, Error: rpcErr})
}

// DefaultCors allows any origin without credentials.
func DefaultCors() *Cors {
	return &Cors{
		AllowCredentials: &[]bool{false}[0],
		AllowOrigins:     []string{"*"},
		ExposeHeaders:    []string{"*"},
	}
}

// Middleware wraps an http.Handler.
type Middleware func(next http.Handler) http.Handler

// chain applies mws so that the first one is outermost.
func chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
