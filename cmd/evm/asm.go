package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brotchie/toyeth/core/asm"
)

var asmCmd = &cobra.Command{
	Use:   "asm [file]",
	Short: "Assemble mnemonic source into hex bytecode",
	Long: `Assemble mnemonic source into hex bytecode.

Source is read from the named file, or from stdin when no file is given.
One instruction per line; ';' and '#' start comments. PUSH without a width
suffix picks the smallest width that fits its immediate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readInput(args)
		if err != nil {
			return err
		}
		code, err := asm.Assemble(src)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "0x%x\n", code)
		return nil
	},
}

var disasmCmd = &cobra.Command{
	Use:   "disasm [hex code]",
	Short: "Disassemble hex bytecode into a listing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readInput(args)
		if err != nil {
			return err
		}
		src = strings.TrimSpace(src)
		src = strings.TrimPrefix(src, "0x")
		code, err := hex.DecodeString(src)
		if err != nil {
			return fmt.Errorf("bad hex code: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), asm.Disassemble(code))
		return nil
	},
}

// readInput returns the single argument if present, the named file's
// contents when the argument names a readable file, or stdin otherwise.
func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	if data, err := os.ReadFile(args[0]); err == nil {
		return string(data), nil
	}
	return args[0], nil
}
