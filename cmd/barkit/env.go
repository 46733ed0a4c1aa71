package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barkit-dev/barkit/internal/infrastructure/config"
)

// envCmd manages the .env file next to the bar configuration.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage environment variables for the bar",
	Long: `The bar reads a .env file from the config directory for secrets
like API keys. Disabled entries are kept in the file as comments.`,
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List environment variables",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := openEnvStore()
		if err != nil {
			return err
		}
		vars, err := store.Load()
		if err != nil {
			return err
		}
		if len(vars) == 0 {
			fmt.Println("No environment variables defined.")
			return nil
		}
		for _, v := range vars {
			state := " "
			if !v.Enabled {
				state = "#"
			}
			fmt.Printf("%s %s=%s\n", state, v.Name, v.Value)
		}
		return nil
	},
}

var envSetCmd = &cobra.Command{
	Use:   "set <NAME> <value>",
	Short: "Set an environment variable",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutateEnv(func(vars []config.EnvVar) ([]config.EnvVar, error) {
			return config.UpsertVar(vars, args[0], args[1]), nil
		})
	},
}

var envUnsetCmd = &cobra.Command{
	Use:   "unset <NAME>",
	Short: "Remove an environment variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutateEnv(func(vars []config.EnvVar) ([]config.EnvVar, error) {
			return config.RemoveVar(vars, args[0]), nil
		})
	},
}

var envEnableCmd = &cobra.Command{
	Use:   "enable <NAME>",
	Short: "Enable a disabled environment variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setEnvEnabled(args[0], true)
	},
}

var envDisableCmd = &cobra.Command{
	Use:   "disable <NAME>",
	Short: "Disable an environment variable without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setEnvEnabled(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.AddCommand(envListCmd, envSetCmd, envUnsetCmd, envEnableCmd, envDisableCmd)
}

func openEnvStore() (*config.EnvStore, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	return config.NewEnvStore(store.EnvPath()), nil
}

func mutateEnv(mutate func([]config.EnvVar) ([]config.EnvVar, error)) error {
	store, err := openEnvStore()
	if err != nil {
		return err
	}
	vars, err := store.Load()
	if err != nil {
		return err
	}
	vars, err = mutate(vars)
	if err != nil {
		return err
	}
	return store.Save(vars)
}

func setEnvEnabled(name string, enabled bool) error {
	return mutateEnv(func(vars []config.EnvVar) ([]config.EnvVar, error) {
		if !config.SetVarEnabled(vars, name, enabled) {
			return nil, fmt.Errorf("no such variable: %s", name)
		}
		return vars, nil
	})
}
