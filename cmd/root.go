package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MrPickle311/database/lib/db"
	"github.com/MrPickle311/database/lib/logger"
	"github.com/MrPickle311/database/lib/persistence"
	"github.com/MrPickle311/database/rpc"
	"github.com/VictoriaMetrics/metrics"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "1.0.0"
)

var log = logger.GetLogger("cmd")

var (
	// RootCmd represents the base command. The single positional argument
	// is the path to the key=value config file.
	RootCmd = &cobra.Command{
		Use:   "database <config-file>",
		Short: "in-memory multi-datatype key-value store",
		Long: fmt.Sprintf(`database (v%s)

An in-memory, network-accessible, multi-datatype key-value store.
Typed values (strings, sets, queues, hashes) are served over a plain TCP
text protocol and periodically snapshotted to disk.

Config keys can be overridden with environment variables of the form
DATABASE_<key> (e.g. DATABASE_LOG_LEVEL=debug).`, Version),
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of database",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("database v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(initEnv)
	RootCmd.AddCommand(versionCmd)
}

// initEnv loads env files and prepares viper for environment overrides.
func initEnv() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("database")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// applyEnvOverrides lets DATABASE_* environment variables win over the
// config file.
func applyEnvOverrides(config *rpc.Config) {
	if viper.IsSet("port") {
		config.Port = viper.GetInt("port")
	}
	if viper.IsSet("thread_count") {
		config.ThreadCount = viper.GetInt("thread_count")
	}
	if viper.IsSet("persistence_file") {
		config.PersistenceFile = viper.GetString("persistence_file")
	}
	if viper.IsSet("dump_period") {
		config.DumpPeriod = viper.GetInt("dump_period")
	}
	if viper.IsSet("log_level") {
		config.LogLevel = viper.GetString("log_level")
	}
	if viper.IsSet("metrics_port") {
		config.MetricsPort = viper.GetInt("metrics_port")
	}
}

// run wires the stores, persistence and server together and blocks until
// a shutdown signal arrives.
func run(_ *cobra.Command, args []string) error {
	configPath := args[0]

	config, err := rpc.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyEnvOverrides(&config)

	level, err := logger.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevelAll(level)

	log.Infof("Starting database v%s", Version)
	log.Infof("%s", config.String())

	if config.PersistenceFile == configPath {
		log.Warningf("Snapshot path %s is also the config file path; the config will be overwritten by dumps", configPath)
	}

	// Build the store aggregate and restore the last snapshot
	stores := db.NewStores()
	dumper := persistence.NewDumper(stores, config.PersistenceFile,
		time.Duration(config.DumpPeriod)*time.Second)
	if err := dumper.Restore(); err != nil {
		return err
	}
	dumper.Start()

	// Optional metrics endpoint
	if config.MetricsPort > 0 {
		go serveMetrics(config.MetricsPort)
	}

	server := rpc.NewServer(config, stores)

	// Shut down on SIGINT/SIGTERM: stop accepting, drain workers, then
	// write the final snapshot.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infof("Received %s, shutting down", sig)
		server.Shutdown()
	}()

	serveErr := server.Serve()
	dumper.Stop()
	return serveErr
}

// serveMetrics exposes the process metrics in Prometheus text format.
func serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	log.Infof("Metrics on :%d/metrics", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
		log.Errorf("Metrics endpoint failed: %v", err)
	}
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
