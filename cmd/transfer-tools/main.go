// Command transfer-tools serves the MyBambu transfer tools to chat agents,
// over MCP stdio or HTTP/WebSocket.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mybambu/transfer-tools/config"
	"github.com/mybambu/transfer-tools/corridor"
	"github.com/mybambu/transfer-tools/engine"
	"github.com/mybambu/transfer-tools/mcpserver"
	"github.com/mybambu/transfer-tools/recipient"
	"github.com/mybambu/transfer-tools/server"
	"github.com/mybambu/transfer-tools/tools"
	"github.com/mybambu/transfer-tools/transfer"
	"github.com/mybambu/transfer-tools/wise"
)

const (
	serverName    = "mybambu-transfers"
	serverVersion = "1.0.0"
)

func main() {
	// stdout carries the MCP protocol; all logs go to stderr.
	log.SetOutput(os.Stderr)

	if err := run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("🚀 MyBambu transfer tools %s", serverVersion)
	log.Printf("   Mode: %s", cfg.Mode)
	log.Printf("   Wise API: %s", cfg.WiseAPIURL)
	log.Printf("   Wise API key: %s", presence(cfg.WiseAPIKey))
	log.Printf("   Wise profile: %s", presence(cfg.WiseProfileID))
	log.Printf("   Transport: %s", cfg.Transport)
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	table := corridor.DefaultTable()
	rates := corridor.DefaultRates()

	var opts []transfer.Option
	switch {
	case cfg.UseRealProvider():
		client, err := wise.New(cfg.WiseConfig())
		if err != nil {
			return fmt.Errorf("create wise client: %w", err)
		}
		defer client.Close()
		opts = append(opts, transfer.WithProvider(client))
		log.Println("💸 Real transfers enabled via Wise")
	case cfg.Mode == transfer.ModeProduction:
		log.Println("⚠️  PRODUCTION mode without WISE_API_KEY and WISE_PROFILE_ID; transfers will be simulated")
	default:
		log.Println("🎭 Demo mode: transfers are simulated")
	}

	orchestrator := transfer.NewOrchestrator(cfg.TransferConfig(), table, rates, recipient.NewRegistry(), opts...)

	registry := engine.NewToolRegistry(engine.WithRegistryAudit(engine.LogAuditLogger{}))
	registry.Register(tools.TransferTools(orchestrator, table, rates)...)
	log.Printf("✅ Registered %d tools", len(registry.List()))

	switch cfg.Transport {
	case config.TransportHTTP:
		return serveHTTP(cfg, registry)
	default:
		s, err := mcpserver.New(registry, serverName, serverVersion)
		if err != nil {
			return fmt.Errorf("create mcp server: %w", err)
		}
		return mcpserver.ServeStdio(s)
	}
}

func serveHTTP(cfg *config.Config, registry *engine.ToolRegistry) error {
	srvCfg := server.Config{Registry: registry}
	if cfg.AnthropicAPIKey != "" {
		client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
		srvCfg.Agent = engine.NewEngine(&client, registry, engine.WithModel(cfg.AnthropicModel))
		log.Printf("🤖 Chat agent enabled (%s)", cfg.AnthropicModel)
	} else {
		log.Println("⚠️  ANTHROPIC_API_KEY not set; /ws chat is disabled")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("📡 WebSocket endpoint: ws://localhost:%s/ws", cfg.Port)
	log.Printf("🧰 Tools: http://localhost:%s/tools", cfg.Port)
	log.Printf("💚 Health check: http://localhost:%s/health", cfg.Port)
	return srv.Run(ctx, ":"+cfg.Port)
}

func presence(v string) string {
	if v == "" {
		return "not set"
	}
	return "set"
}
