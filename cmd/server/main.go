package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/quote-admin/internal/config"
	"github.com/jrsteele09/quote-admin/internal/logging"
	"github.com/jrsteele09/quote-admin/server"
	"github.com/jrsteele09/quote-admin/server/loginsession"
	"github.com/rs/zerolog/log"
)

const sessionJanitorInterval = 5 * time.Minute

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.FromEnv()
	if err != nil {
		return err
	}
	logging.Setup(c)
	displayAppname(c.GetAppName())

	s, err := server.New(c, loginsession.NewInMemoryLoginSessionRepo())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.RunSessionJanitor(ctx, sessionJanitorInterval)

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	if err := waitForStopSignal(serveErr); err != nil {
		return err
	}
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

// waitForStopSignal blocks until SIGINT/SIGTERM, or returns the listener's error.
func waitForStopSignal(serveErr <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)
	select {
	case <-stop:
		return nil
	case err := <-serveErr:
		if err == nil {
			return errors.New("server exited unexpectedly")
		}
		return err
	}
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
