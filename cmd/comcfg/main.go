package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lola-ipc/comcfg/pkg/configuration"
	"github.com/lola-ipc/comcfg/pkg/logger"
	"github.com/lola-ipc/comcfg/pkg/mmap"
	"github.com/lola-ipc/comcfg/pkg/schema"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	var logLevel string

	root := &cobra.Command{
		Use:   "comcfg",
		Short: "comcfg - mw::com configuration file tooling",
		Long: `comcfg inspects and verifies the binary FlatBuffers configuration files
consumed by the LoLa shared-memory IPC middleware.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{Level: logLevel, Encoding: "console"})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("comcfg v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Verify command: map and structurally verify only, no translation
	root.AddCommand(&cobra.Command{
		Use:   "verify <file>",
		Short: "Verify that a file is a structurally valid configuration buffer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := args[0]

			region, err := mmap.Open(path)
			if err != nil {
				logger.Fatal("cannot map configuration file",
					zap.String("path", path), zap.Error(err))
			}
			defer region.Close()

			if err := schema.Verify(region.Bytes()); err != nil {
				logger.Fatal("configuration buffer failed verification",
					zap.String("path", path), zap.Error(err))
			}

			fmt.Printf("OK: %s (%d bytes)\n", path, region.Size())
		},
	})

	// Inspect command: full load, dump the resulting configuration as JSON
	var pretty bool
	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Load a configuration file and dump the resulting model as JSON",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			// MustLoad terminates with a diagnostic on any violation,
			// the same policy the middleware applies at startup.
			config := configuration.MustLoad(args[0])

			encoder := json.NewEncoder(os.Stdout)
			if pretty {
				encoder.SetIndent("", "  ")
			}
			if err := encoder.Encode(config); err != nil {
				logger.Fatal("cannot encode configuration", zap.Error(err))
			}
		},
	}
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	root.AddCommand(inspectCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
