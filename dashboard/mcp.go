package dashboard

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/vitrine/kit"
	"github.com/hazyhaar/vitrine/preview"
	"github.com/hazyhaar/vitrine/theme"
)

// RegisterMCP registers the theme and preview tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerThemeGet(srv)
	s.registerThemeMerge(srv)
	s.registerPreviewOpen(srv)
	s.registerPreviewClose(srv)
	s.registerPreviewState(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sch := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sch["required"] = required
	}
	return sch
}

func mcpTransport(ctx context.Context) context.Context {
	return kit.WithTransport(ctx, "mcp")
}

func (s *Service) registerThemeGet(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "theme_get",
		Description: "Get the full normalized theme configuration of the checkout",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(ctx context.Context, _ any) (any, error) {
		rec, err := s.themes.Get(ctx, s.cfg.CheckoutID)
		if err != nil {
			return nil, err
		}
		return theme.Load(rec).Record(), nil
	}

	decode := func(*mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil, EnrichCtx: mcpTransport}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerThemeMerge(srv *mcp.Server) {
	type req struct {
		Record json.RawMessage `json:"record"`
	}

	tool := &mcp.Tool{
		Name:        "theme_merge",
		Description: "Apply a partial theme record over the stored configuration and persist the result",
		InputSchema: inputSchema(map[string]any{
			"record": map[string]any{"type": "object", "description": "Partial theme record (same shape as PUT /api/v1/theme)"},
		}, []string{"record"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		full, err := s.themes.Merge(ctx, s.cfg.CheckoutID, theme.DecodeRecord(p.Record))
		if err != nil {
			return nil, err
		}
		if err := s.refreshPreview(ctx); err != nil {
			s.logger.Warn("dashboard: preview refresh after mcp theme merge", "error", err)
		}
		return full, nil
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p, EnrichCtx: mcpTransport}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerPreviewOpen(srv *mcp.Server) {
	type req struct {
		Mode string `json:"mode"`
	}

	tool := &mcp.Tool{
		Name:        "preview_open",
		Description: "Open (or reopen) the isolated checkout preview in a viewport mode: mobile, tablet or desktop",
		InputSchema: inputSchema(map[string]any{
			"mode": map[string]any{"type": "string", "description": "Viewport mode: mobile, tablet, desktop"},
		}, []string{"mode"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		if err := s.surface.Open(ctx, preview.Mode(p.Mode)); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.open = true
		s.mu.Unlock()
		if err := s.refreshPreview(ctx); err != nil {
			s.logger.Warn("dashboard: initial preview render", "error", err)
		}
		return s.state(), nil
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p, EnrichCtx: mcpTransport}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerPreviewClose(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "preview_close",
		Description: "Close the isolated checkout preview and tear down its observers",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(context.Context, any) (any, error) {
		s.surface.Close()
		s.mu.Lock()
		s.open = false
		s.lastBody = ""
		s.mu.Unlock()
		return s.state(), nil
	}

	decode := func(*mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil, EnrichCtx: mcpTransport}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerPreviewState(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "preview_state",
		Description: "Report the preview session state: mode, readiness and measured content height",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(context.Context, any) (any, error) {
		return s.state(), nil
	}

	decode := func(*mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil, EnrichCtx: mcpTransport}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// state is the shared session-state payload for HTTP and MCP.
func (s *Service) state() map[string]any {
	s.mu.Lock()
	open := s.open
	s.mu.Unlock()
	return map[string]any{
		"open":   open,
		"mode":   s.surface.Mode(),
		"ready":  s.surface.Ready(),
		"height": s.surface.Height(),
	}
}
