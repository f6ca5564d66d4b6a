package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/label-stencil-mcp/internal/server"
	"github.com/ironsheep/label-stencil-mcp/internal/stencil"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("label-stencil-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("label-stencil-mcp - MCP server that turns photos into one-bit label stencils")
			fmt.Println()
			fmt.Println("Usage: label-stencil-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  STENCIL_MCP_LOG_LEVEL=debug    Enable debug logging, including stage timings")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("STENCIL_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Label Stencil MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		stencil.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	srv := server.New()
	srv.SetVersion(Version)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
