package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"expression-mapper/examples/animal"
	"expression-mapper/mapper"
)

var errUnknownMode = errors.New("unknown mapper mode")

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the plan of the Animal -> AnimalDTO mapper as YAML",
		Args:  cobra.NoArgs,
		RunE:  runPlan,
	}

	cmd.Flags().StringP(modeFlagName, "m", mapper.Construct.String(), "mapper form: mutate or construct")
	cmd.Flags().BoolP(reverseFlagName, "r", false, "plan AnimalDTO -> Animal instead")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	f, _, err := newFactory(cmd)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString(modeFlagName)
	mode, err := parseMode(name)
	if err != nil {
		return err
	}

	var out []byte
	if reverse, _ := cmd.Flags().GetBool(reverseFlagName); reverse {
		out, err = mapper.Describe[animal.AnimalDTO, animal.Animal](f, mode)
	} else {
		out, err = mapper.Describe[animal.Animal, animal.AnimalDTO](f, mode)
	}

	if len(out) > 0 {
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	}

	return err
}

func parseMode(name string) (mapper.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case mapper.Mutate.String():
		return mapper.Mutate, nil
	case mapper.Construct.String():
		return mapper.Construct, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownMode, name)
	}
}
