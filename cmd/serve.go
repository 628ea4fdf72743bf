package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpupo63/portfolio-admin/api"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rpupo63/portfolio-admin/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	servePort    string
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	Long: `serve starts the HTTP server the dashboard talks to. Every /admin route
needs a bearer token, which is forwarded to the backend unchanged.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "migrate the sync journal tables before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	gateway, err := newGateway()
	if err != nil {
		return err
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	if db == nil {
		log.Warn().Msg("sync journal disabled; sync runs will not be recorded")
	} else if serveMigrate {
		if err := db.Migrate(); err != nil {
			return err
		}
	}

	port := settings.Server.Port
	if servePort != "" {
		port = servePort
	}

	server, err := api.NewServer(api.Backend{
		Gateway:         gateway,
		Source:          services.NewSource(gateway, settings.SourceURLs()),
		Parser:          session.NewParser(settings.Auth.JWTSecret),
		Normalizer:      normalize.New(),
		Database:        db,
		AcceptedOrigins: settings.Server.AcceptedOrigins,
		Port:            port,
	})
	if err != nil {
		return fmt.Errorf("error initializing server: %w", err)
	}

	errChannel := make(chan error, 2)
	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
