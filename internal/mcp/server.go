// Package mcp exposes card, keyword and deck lookups as Model Context
// Protocol tools.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codyseavey/lookout/internal/config"
	"github.com/codyseavey/lookout/internal/services"
	"github.com/codyseavey/lookout/internal/views"
)

type Server struct {
	lookup   *views.Lookup
	rolls    *services.RollService
	settings config.Settings
	emotes   views.Emotes
	mcp      *sdk.Server
}

func NewServer(lookup *views.Lookup, rolls *services.RollService, settings config.Settings, version string) *Server {
	s := &Server{
		lookup:   lookup,
		rolls:    rolls,
		settings: settings,
		emotes:   views.Emotes(settings.RegionEmotes),
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "lookout",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

// Connect serves a single session over transport.
func (s *Server) Connect(ctx context.Context, transport sdk.Transport) (*sdk.ServerSession, error) {
	return s.mcp.Connect(ctx, transport, nil)
}
