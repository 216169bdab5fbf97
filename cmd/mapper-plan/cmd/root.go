// Package cmd provides the root command and CLI setup for mapper-plan.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"expression-mapper/examples/animal"
	"expression-mapper/mapper"
	"expression-mapper/options"
)

const rootLongDescription = `mapper-plan synthesizes the mappers between the sample Animal and
AnimalDTO types, prints their plans and runs them.

Configuration is read from ./mapper.yaml (or --config), MAPPER_* environment
variables and flags, in increasing precedence.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	cmd.AddCommand(newPlanCmd(), newMapCmd())

	return cmd
}

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "mapper-plan",
		Short:        "Inspect and run synthesized struct mappers",
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	def := options.Default()
	flags := cmd.PersistentFlags()

	flags.StringP(configFlagName, "c", "", "path to the YAML configuration file")
	flags.StringSlice(categoriesFlagName, def.Categories, "primitive conversion categories, a leading - removes one")
	flags.Bool(strictFlagName, def.StrictCollections, "fail on enumerable pairs that are not two slices")
	flags.String(logLevelFlagName, def.Log.Level, "log level (debug, info, warn, error)")
	flags.String(logFormatFlagName, def.Log.Format, "log format (console, json)")
}

// newFactory builds a mapper factory from the merged configuration, with the
// converters of the sample types registered.
func newFactory(cmd *cobra.Command) (*mapper.Factory, zerolog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	f := mapper.New(mapper.WithConfig(cfg), mapper.WithLogger(logger)).
		RegisterConverter(decimal.NewFromString)
	mapper.Register(f, animal.PriceFromDecimal)

	return f, logger, f.Err()
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
