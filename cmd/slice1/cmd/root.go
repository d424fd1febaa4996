package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sooomo/nonempty/codec"
)

// app carries the state shared by the subcommands of one root command.
type app struct {
	v      *viper.Viper
	logger *log.Logger
}

// NewRootCmd builds the slice1 command tree. Settings resolve from flags,
// then SLICE1_* environment variables, then the --config file.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "slice1",
		Short:         "Inspect and convert non-empty arrays",
		Long:          `slice1 reads JSON, msgpack or YAML arrays, rejects empty ones, and prints or converts the rest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, cfgFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String("format", "", "input format: json, msgpack or yaml (default from file extension)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	_ = a.v.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = a.v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newInspectCmd(a), newConvertCmd(a))
	return rootCmd
}

func (a *app) init(cmd *cobra.Command, cfgFile string) error {
	a.v.SetEnvPrefix("SLICE1")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "slice1"})
	if a.v.GetBool("verbose") {
		a.logger.SetLevel(log.DebugLevel)
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config loaded", "file", used)
	}
	return nil
}

// marshalerFor picks the format named by key, falling back to path's
// extension.
func (a *app) marshalerFor(key, path string) (codec.PayloadMarshaler, error) {
	name := a.v.GetString(key)
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	if name == "" {
		return nil, fmt.Errorf("cannot infer format of %s: use --%s", path, key)
	}
	return codec.ForFormat(name)
}
