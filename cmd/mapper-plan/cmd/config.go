package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"expression-mapper/options"
)

const (
	configBaseName   = "mapper"
	configFolderPath = "."

	envPrefix = "MAPPER"

	configFlagName     = "config"
	categoriesFlagName = "categories"
	strictFlagName     = "strict-collections"
	logLevelFlagName   = "log-level"
	logFormatFlagName  = "log-format"
	modeFlagName       = "mode"
	reverseFlagName    = "reverse"

	categoriesKey = "categories"
	strictKey     = "strict_collections"
	logLevelKey   = "log.level"
	logFormatKey  = "log.format"

	logFormatJSON = "json"
)

// loadConfig merges, by increasing precedence, the defaults, the YAML file,
// MAPPER_* environment variables and the flags of cmd.
func loadConfig(cmd *cobra.Command) (options.Config, error) {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolderPath)
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	def := options.Default()
	v.SetDefault(categoriesKey, def.Categories)
	v.SetDefault(strictKey, def.StrictCollections)
	v.SetDefault(logLevelKey, def.Log.Level)
	v.SetDefault(logFormatKey, def.Log.Format)

	flags := cmd.Flags()
	bindFlagToConfig(v, flags.Lookup(categoriesFlagName), categoriesKey)
	bindFlagToConfig(v, flags.Lookup(strictFlagName), strictKey)
	bindFlagToConfig(v, flags.Lookup(logLevelFlagName), logLevelKey)
	bindFlagToConfig(v, flags.Lookup(logFormatFlagName), logFormatKey)

	path, err := flags.GetString(configFlagName)
	if err != nil {
		return options.Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return options.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := options.Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return options.Config{}, fmt.Errorf("decode config: %w", err)
	}

	if _, err := cfg.CategoryMask(); err != nil {
		return options.Config{}, err
	}

	return cfg, nil
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(v.BindPFlag(key, flag))
}

// newLogger builds the zerolog logger described by cfg, writing to w.
func newLogger(cfg options.Config, w io.Writer) (zerolog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return zerolog.Nop(), err
	}

	if cfg.Log.Format != logFormatJSON {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
