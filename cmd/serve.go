package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"webgate/internal/codegen"
	"webgate/internal/session"
	"webgate/internal/tools"
)

const serverVersion = "0.3.0"

var serveLogPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveLogPath, "log", "l", "", "also append diagnostics to this log file")
}

func runServe(cmd *cobra.Command, args []string) {
	// stdout belongs to the protocol; everything else goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if serveLogPath != "" {
		f, err := os.OpenFile(serveLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot open log %q: %v\n", serveLogPath, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, f))
			defer f.Close()
		}
	}

	cfg := resolveConfig()
	for _, line := range cfg.DiagnosticLines() {
		log.Print(line)
	}

	sess := session.NewContext()
	tools.RegisterDefaults()
	dispatcher := tools.NewDispatcher(&tools.Env{
		Config:   cfg,
		Session:  sess,
		Recorder: codegen.NewRecorder(),
	})

	srv := server.NewMCPServer("webgate", serverVersion)
	for _, def := range tools.List() {
		def := def
		srv.AddTool(def.MCPTool(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return dispatcher.Dispatch(ctx, def.Name, req.Params.Arguments), nil
		})
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		log.Printf("received %s, closing browser session", s)
		if err := sess.Close(); err != nil {
			log.Printf("close session: %v", err)
		}
		os.Exit(0)
	}()

	log.Printf("serving %d tools over stdio", len(tools.List()))
	if err := server.ServeStdio(srv); err != nil {
		log.Printf("serve: %v", err)
	}
	if err := sess.Close(); err != nil {
		log.Printf("close session: %v", err)
	}
}
