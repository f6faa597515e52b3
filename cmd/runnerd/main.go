// runnerd is a synchronous remote-execution server: an SSH replacement for
// trusted networks. Clients POST a command or a script and get back the
// exit status and captured output once the process finishes; files written
// under the fixed working directory can be fetched back over HTTP.
//
// There is no authentication. This is remote execution as a service; run it
// only where every peer is trusted, e.g. behind an SSH port forward.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runnerhq/runnerd/internal/api"
	"github.com/runnerhq/runnerd/internal/cleanup"
	"github.com/runnerhq/runnerd/internal/config"
	"github.com/runnerhq/runnerd/internal/runner"
	"github.com/runnerhq/runnerd/internal/workdir"
)

const version = "0.3.0"

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("runnerd: failed to load config: %v", err)
	}

	root, err := workdir.Open(cfg.WorkDir)
	if err != nil {
		log.Fatalf("runnerd: failed to open workdir: %v", err)
	}
	log.Printf("runnerd %s: working directory %s", version, root.Path())

	r := runner.New(root, cfg.Interpreters)
	srv := api.NewServer(r, version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.CleanupMaxAge > 0 {
		j := cleanup.New(root, cfg.CleanupMaxAge, cfg.CleanupInterval)
		go j.Run(ctx)
		log.Printf("runnerd: janitor enabled, max age %s", cfg.CleanupMaxAge)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		log.Printf("runnerd: received %v, shutting down", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("runnerd: shutdown: %v", err)
		}
	}()

	log.Printf("runnerd: listening on %s", cfg.Addr)
	if err := srv.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("runnerd: server failed: %v", err)
	}
}
