package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/codyseavey/lookout/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	server := mcp.NewServer(e.lookup, e.stack.Rolls, e.settings, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
