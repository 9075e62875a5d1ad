package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ironsheep/image-grid-mcp/internal/grid"
	"github.com/ironsheep/image-grid-mcp/internal/imaging"
	"github.com/ironsheep/image-grid-mcp/internal/logging"
)

// EnvCacheTTL overrides how long a render stays addressable by its ID.
const EnvCacheTTL = "IMAGE_GRID_CACHE_TTL"

// DefaultRenderTTL applies when EnvCacheTTL is unset or invalid.
const DefaultRenderTTL = 30 * time.Minute

// Version is reported in the initialize handshake. main overrides it with the
// build version.
var Version = "0.1.0"

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	renders *cache.Cache
	nextID  atomic.Uint64
}

// render is one finished grid kept for follow-up tool calls.
type render struct {
	Name   string
	Config grid.Config
	Result *grid.Result
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance. The render TTL comes from
// IMAGE_GRID_CACHE_TTL (a Go duration such as "10m").
func New() *Server {
	return NewWithTTL(renderTTLFromEnv())
}

// NewWithTTL creates a server whose renders expire after ttl.
func NewWithTTL(ttl time.Duration) *Server {
	if ttl <= 0 {
		ttl = DefaultRenderTTL
	}
	return &Server{
		cache:   imaging.NewImageCache(),
		renders: cache.New(ttl, ttl*2),
	}
}

func renderTTLFromEnv() time.Duration {
	v := os.Getenv(EnvCacheTTL)
	if v == "" {
		return DefaultRenderTTL
	}
	ttl, err := time.ParseDuration(v)
	if err != nil || ttl <= 0 {
		logging.Logger().Warn("ignoring invalid render TTL", "env", EnvCacheTTL, "value", v)
		return DefaultRenderTTL
	}
	return ttl
}

// storeRender caches r and returns its new ID.
func (s *Server) storeRender(r *render) string {
	id := "r" + strconv.FormatUint(s.nextID.Add(1), 10)
	s.renders.Set(id, r, cache.DefaultExpiration)
	return id
}

func (s *Server) lookupRender(id string) (*render, error) {
	v, ok := s.renders.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown or expired render_id %q", id)
	}
	return v.(*render), nil
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r until EOF,
// writing one response line per request to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	log := logging.Logger()

	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error("failed to parse request", "err", err)
			continue
		}
		log.Debug("request", "method", req.Method, "id", req.ID)

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Error("failed to encode response", "err", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "image-grid-mcp",
				"version": Version,
			},
		},
	}
}
