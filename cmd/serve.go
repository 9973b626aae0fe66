package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/learnhub-io/learnhub/api"
	"github.com/learnhub-io/learnhub/config"
	"github.com/learnhub-io/learnhub/store/filestore"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the file-backed LearnHub server",
	Long: `Start the LearnHub server with JSON-file persistence. Users and courses
live in two JSON documents that are rewritten as a whole on every mutation.`,
	Example: `learnhub serve
learnhub serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	setLogLevel(effectiveLogLevel(cfg))

	st, err := filestore.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to initialize file store: %v", err)
	}
	if err := st.SeedDefaultCourses(); err != nil {
		log.Fatalf("failed to seed default courses: %v", err)
	}

	server, err := api.New(cfg, st)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	go func() {
		log.Info("starting API server", "listen", cfg.Listen, "data", cfg.DataDir)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("learnhub started successfully")
	<-c
	log.Info("shutting down gracefully...")

	time.Sleep(2 * time.Second)
}
