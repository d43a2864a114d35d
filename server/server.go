// Package server implements the MCP server that exposes registered
// assistants as chat tools over stdio.
package server

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ronin-hq/ronin/assistant"
	"github.com/ronin-hq/ronin/chat"
	"github.com/ronin-hq/ronin/config"
	"github.com/ronin-hq/ronin/llm"
)

// Server is the ronin MCP server. Chat sessions are held in memory, keyed by
// generated session ids, so a client can carry a conversation across tool
// calls.
type Server struct {
	version  string
	registry *assistant.Registry
	loader   *llm.Loader
	cfg      *config.Config
	provider llm.Provider

	mu       sync.RWMutex
	sessions map[string]assistant.Assistant
}

// New creates a server over a discovered registry.
func New(version string, registry *assistant.Registry, loader *llm.Loader, cfg *config.Config, provider llm.Provider) *Server {
	return &Server{
		version:  version,
		registry: registry,
		loader:   loader,
		cfg:      cfg,
		provider: provider,
		sessions: make(map[string]assistant.Assistant),
	}
}

// Serve starts the MCP server on stdio and blocks until the client
// disconnects.
func (s *Server) Serve() error {
	srv := mcpserver.NewMCPServer(
		"ronin",
		s.version,
		mcpserver.WithRecovery(),
		mcpserver.WithToolCapabilities(false),
	)

	s.registerTools(srv)

	return mcpserver.ServeStdio(srv)
}

func (s *Server) registerTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool("list_assistants",
			mcp.WithDescription("List the assistants available in the registry"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListAssistants,
	)

	srv.AddTool(
		mcp.NewTool("chat",
			mcp.WithDescription("Send a message to an assistant. Omit session to start a new conversation."),
			mcp.WithString("assistant",
				mcp.Description("Registry id of the assistant to chat with"),
				mcp.Required(),
			),
			mcp.WithString("message",
				mcp.Description("The user message"),
				mcp.Required(),
			),
			mcp.WithString("session",
				mcp.Description("Session id returned by a previous chat call"),
			),
			mcp.WithString("system_message",
				mcp.Description("System message override for new sessions"),
			),
		),
		s.handleChat,
	)

	srv.AddTool(
		mcp.NewTool("get_transcript",
			mcp.WithDescription("Get the full transcript of a chat session as JSON"),
			mcp.WithString("session",
				mcp.Description("Session id returned by a previous chat call"),
				mcp.Required(),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetTranscript,
	)
}

func (s *Server) handleListAssistants(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, id := range s.registry.IDs() {
		d, err := s.registry.Get(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s — %s\n", d.ID, d.Summary)
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("no assistants registered"), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assistantID, err := request.RequireString("assistant")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: assistant"), nil
	}
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: message"), nil
	}

	inst, sessionID, err := s.session(
		request.GetString("session", ""),
		assistantID,
		request.GetString("system_message", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reply, err := inst.Respond(ctx, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("session: %s\n\n%s", sessionID, reply.Content)), nil
}

func (s *Server) handleGetTranscript(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: session"), nil
	}

	s.mu.RLock()
	inst, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown session %q", sessionID)), nil
	}

	var tr chat.Transcript
	tr.Append(inst.History()...)
	data, err := tr.JSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshalling transcript: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// session returns the existing session or builds a new assistant instance
// and registers it under a fresh uuid.
func (s *Server) session(sessionID, assistantID, systemMessage string) (assistant.Assistant, string, error) {
	if sessionID != "" {
		s.mu.RLock()
		inst, ok := s.sessions[sessionID]
		s.mu.RUnlock()
		if !ok {
			return nil, "", fmt.Errorf("unknown session %q", sessionID)
		}
		return inst, sessionID, nil
	}

	desc, err := s.registry.Get(assistantID)
	if err != nil {
		return nil, "", err
	}

	handle, err := s.loader.CreateLLM(s.provider, s.cfg.Access(s.provider), s.cfg.Model(0))
	if err != nil {
		return nil, "", err
	}

	inst, err := desc.New(assistant.Config{LLM: handle, SystemPrompt: systemMessage})
	if err != nil {
		return nil, "", fmt.Errorf("building assistant %q: %w", assistantID, err)
	}

	sessionID = uuid.NewString()
	s.mu.Lock()
	s.sessions[sessionID] = inst
	s.mu.Unlock()
	return inst, sessionID, nil
}
