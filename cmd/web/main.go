package main

import (
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/raycaster/internal/config"
	"github.com/tomz197/raycaster/internal/web"
	"github.com/tomz197/raycaster/internal/world"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "web",
	})

	m, err := world.Load(config.GetEnv("RAYCAST_MAP", ""))
	if err != nil {
		logger.Fatal("failed to load map", "err", err)
	}

	router := web.NewRouter(web.Options{
		SSHHost: sshHost,
		Map:     m,
		Logger:  logger,
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
