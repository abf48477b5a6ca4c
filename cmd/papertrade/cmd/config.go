package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrade/config"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage session configuration files",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "papertrade.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Default().SaveToFile(path); err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Println(args[0], "is valid")
			return nil
		},
	}

	configCmd.AddCommand(initCmd, validateCmd)
	rootCmd.AddCommand(configCmd)
}
