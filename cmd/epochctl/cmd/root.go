package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "epochctl",
	Short: "epochctl controls a running epoch ticker daemon",
	Long: `epochctl is the admin CLI for the epochtick daemon.

The daemon advances the epoch counter of its engines at a fixed interval so
they can interrupt long running guest code. epochctl talks to its admin API.

Common workflows:

  Show the ticker state:
    epochctl status

  Stop ticking, then resume with the same engines and interval:
    epochctl stop
    epochctl start

  List recent runs:
    epochctl runs --limit 5

Configuration:
  Set the API endpoint and key via flags, environment variables or a config file:
    EPOCHTICK_URL       Daemon URL (default: http://localhost:8080)
    EPOCHTICK_API_KEY   Admin API key`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			// Search config in home directory with name ".epochctl"
			viper.AddConfigPath(home)
			viper.SetConfigName(".epochctl")
			viper.SetConfigType("yaml")
		}
	}

	// Read environment variables that match "EPOCHTICK_VARNAME"
	viper.SetEnvPrefix("EPOCHTICK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *TickerClient {
	return NewTickerClient(viper.GetString("url"), viper.GetString("api_key"))
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.epochctl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:8080", "epochtick daemon URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))

	rootCmd.PersistentFlags().StringP("api-key", "k", "", "admin API key")
	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
}
