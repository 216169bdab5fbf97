package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"expression-mapper/examples/animal"
	"expression-mapper/mapper"
)

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map the sample animal to an AnimalDTO and print it as YAML",
		Args:  cobra.NoArgs,
		RunE:  runMap,
	}

	cmd.Flags().BoolP(reverseFlagName, "r", false, "map the DTO back to an Animal as well")

	return cmd
}

func runMap(cmd *cobra.Command, _ []string) error {
	f, logger, err := newFactory(cmd)
	if err != nil {
		return err
	}

	toDTO, err := mapper.NewConstructor[animal.Animal, animal.AnimalDTO](f)
	if err != nil {
		return err
	}

	dto, err := toDTO(animal.Tigger())
	if err != nil {
		return err
	}

	var result any = dto

	if reverse, _ := cmd.Flags().GetBool(reverseFlagName); reverse {
		toAnimal, err := mapper.NewConstructor[animal.AnimalDTO, animal.Animal](f)
		if err != nil {
			return err
		}

		if result, err = toAnimal(dto); err != nil {
			return err
		}
	}

	logger.Debug().Type("result", result).Msg("mapped")

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	if err := enc.Encode(result); err != nil {
		return err
	}

	return enc.Close()
}
