// RealityCloud - command line client for the iTwin Reality Capture
// platform: reality-data management, bulk transfers, and job control.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/realitycloud/realitycloud/internal/version"
	"github.com/realitycloud/realitycloud/pkg/config"
	"github.com/realitycloud/realitycloud/pkg/jobs"
	"github.com/realitycloud/realitycloud/pkg/realitydata"
	"github.com/realitycloud/realitycloud/pkg/rest"
	"github.com/realitycloud/realitycloud/pkg/telemetry"
	"github.com/realitycloud/realitycloud/pkg/transfer"
)

// CLI flags
var (
	cfgFile   string
	envFlag   string
	tokenFlag string
)

var (
	telemetrySetup    telemetry.Setup
	telemetryShutdown func(context.Context) error
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "realitycloud",
	Short:   "RealityCloud - iTwin Reality Capture client",
	Long:    `RealityCloud manages reality-data storage and submits reality-modeling and reality-analysis jobs against the iTwin platform.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		telemetryShutdown, err = telemetrySetup.Init(cmd.Context(), cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if telemetryShutdown != nil {
			telemetryShutdown(cmd.Context())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: standard search paths)")
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "environment: prod, qa, or dev")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "authorization token (default: $REALITYCLOUD_TOKEN)")

	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(jobCmd)
}

// loadConfig resolves the effective configuration from files, the
// environment, and the command line.
func loadConfig() (*config.Config, error) {
	manager := config.NewManager()
	if cfgFile != "" {
		if err := manager.LoadFile(cfgFile); err != nil {
			return nil, err
		}
	} else if err := manager.Load(); err != nil {
		return nil, err
	}
	cfg := manager.Get()
	if envFlag != "" {
		env := config.Environment(envFlag)
		if !env.Valid() {
			return nil, fmt.Errorf("unknown environment %q", envFlag)
		}
		cfg.Environment = env
	}
	return cfg, nil
}

func token() (rest.TokenProvider, error) {
	t := tokenFlag
	if t == "" {
		t = os.Getenv("REALITYCLOUD_TOKEN")
	}
	if t == "" {
		return nil, fmt.Errorf("no token: set --token or REALITYCLOUD_TOKEN")
	}
	return rest.StaticToken(t), nil
}

func newSession() (*rest.Session, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	tp, err := token()
	if err != nil {
		return nil, nil, err
	}
	return rest.NewSession(cfg, tp), cfg, nil
}

func newDataClient() (*realitydata.Client, error) {
	session, cfg, err := newSession()
	if err != nil {
		return nil, err
	}
	return realitydata.NewClient(session, transfer.NewClient(cfg)), nil
}

func newJobClient() (*jobs.Client, error) {
	session, _, err := newSession()
	if err != nil {
		return nil, err
	}
	return jobs.NewClient(session), nil
}
