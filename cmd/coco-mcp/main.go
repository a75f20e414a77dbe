package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ironsheep/coco-viewer-mcp/internal/config"
	"github.com/ironsheep/coco-viewer-mcp/internal/server"
	"github.com/ironsheep/coco-viewer-mcp/internal/session"
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
			fmt.Printf("coco-viewer-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("coco-viewer-mcp - MCP server for COCO annotation viewing")
			fmt.Println()
			fmt.Println("Usage: coco-viewer-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  COCO_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  COCO_MCP_*                  Override individual settings")
			fmt.Println("                              (see internal/config for the full list)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// A .env in the working directory may carry COCO_MCP_* overrides.
	_ = godotenv.Load()

	logLevel := os.Getenv("COCO_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("COCO Viewer MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cfg, err := config.NewManager()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if err := cfg.Load(); err != nil {
		// Defaults still apply; a broken settings file is not fatal.
		log.Printf("Ignoring settings file: %v", err)
	}
	cfg.ApplyEnv()

	sess := session.New(cfg.Settings())
	defer sess.Close()

	srv := server.New(sess, cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
