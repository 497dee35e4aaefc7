// Command implica-cli is a thin demonstration binary over the implica
// package: a cobra root command with version/serve/repl subcommands.
// Grounded on straga-Mimir_lite/nornicdb/cmd/nornicdb/main.go's cobra
// structure; the repl subcommand keeps the teacher's own bufio.Scanner
// interactive-loop shape (cmd/cli/main.go) rather than nornicdb's, since
// this module's pack teacher already has a working REPL to adapt.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ritamzico/implica/internal/server"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "implica-cli",
		Short: "implica — an in-memory typed graph database",
		Long: `implica is a graph database whose nodes are types and whose edges are
typed terms of a simply-typed lambda calculus. Patterns compose CREATE,
MATCH, REMOVE and SET operations into queries that run in parallel over the
graph.`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("implica v%s\n", version)
		},
	})

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the implica HTTP query server",
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetInt("port")
			addr := fmt.Sprintf(":%d", port)
			fmt.Printf("implica server listening on %s\n", addr)
			return http.ListenAndServe(addr, server.NewMux())
		},
	}
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Start an interactive query REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			runREPL()
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
