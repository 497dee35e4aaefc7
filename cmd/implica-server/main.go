// Command implica-server runs the one-route JSON query API as a standalone
// binary, keeping the teacher's plain net/http + flag.Int shape
// (cmd/server/main.go) rather than reaching for a web framework — nothing
// in the retrieved corpus uses one for a single-route JSON API.
package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/ritamzico/implica/internal/server"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	flag.Parse()

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("implica server listening on %s\n", addr)
	if err := http.ListenAndServe(addr, server.NewMux()); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "server error: %v\n", err)
	}
}
