package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-spectra/configs"
)

var (
	configFile   string
	verbose      bool
	logLevel     string
	outputFormat string
	precision    int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spectra",
	Short: "Spectral analysis of sampled biomedical signals",
	Long: `Spectral analysis of sampled signals stored as YAML documents.

Key features:
- Forward and inverse radix-2 transforms with square, Hamming, Parzen and Welch windows
- Power spectra and dominant frequency
- Cross- and auto-correlation
- Band-pass, band-stop and notch filtering`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, viper.GetViper())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/spectra/spectra.yaml)")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"output format (table, csv, yaml)")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", 6,
		"significant digits in printed values")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("output.precision", rootCmd.PersistentFlags().Lookup("precision"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "spectra"))
		}
		viper.AddConfigPath("./configs")
		viper.SetConfigName("spectra")
		viper.SetConfigType("yaml")
	}

	configs.ConfigureEnv(viper.GetViper())
	configs.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	} else if configFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", configFile, err)
		os.Exit(1)
	}
}

// bindFlags binds each subcommand flag to the viper key named in its
// "viper" annotation, so config files and SPECTRA_ variables fill flags
// the user did not set
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[viperKeyAnnotation]
		if !ok || len(keys) == 0 {
			return
		}
		key := keys[0]

		if !f.Changed && v.IsSet(key) {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(key))); err != nil {
				lastErr = err
			}
		}

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}

		envVar := configs.EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
		if err := v.BindEnv(key, envVar); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

const viperKeyAnnotation = "viper_key"

// bindKey records the viper key a flag maps to
func bindKey(flags *pflag.FlagSet, name, key string) {
	_ = flags.SetAnnotation(name, viperKeyAnnotation, []string{key})
}

// GetConfig returns the current viper instance
func GetConfig() *viper.Viper {
	return viper.GetViper()
}
