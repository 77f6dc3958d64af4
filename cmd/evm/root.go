package main

import (
	"github.com/spf13/cobra"

	"github.com/brotchie/toyeth/log"
)

var verbosity string

var rootCmd = &cobra.Command{
	Use:   "evm",
	Short: "Run, assemble and disassemble toyeth bytecode",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(verbosity)
		if err != nil {
			return err
		}
		log.SetDefault(log.New(level))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&verbosity, "verbosity", "info",
		"log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd, asmCmd, disasmCmd)
}
