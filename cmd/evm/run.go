package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brotchie/toyeth/core/vm"
	"github.com/brotchie/toyeth/log"
	"github.com/brotchie/toyeth/metrics"
	"github.com/brotchie/toyeth/rlp"
)

var (
	runGas      uint64
	runCodeFile string
	runTrace    bool
	runStats    bool
	runDumpFile string
)

var runCmd = &cobra.Command{
	Use:   "run [hex code]",
	Short: "Execute bytecode and print the final machine state",
	Long: `Execute bytecode and print the final machine state.

Code is given as a hex string argument (0x prefix optional) or read from a
file with --code-file. When --gas is nonzero, every executed instruction
costs one gas and running out is reported as an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := loadCode(args)
		if err != nil {
			return err
		}
		return runCode(cmd, code)
	},
}

func init() {
	runCmd.Flags().Uint64Var(&runGas, "gas", 0, "gas allowance, 0 disables metering")
	runCmd.Flags().StringVar(&runCodeFile, "code-file", "", "read hex code from file")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "log every executed instruction")
	runCmd.Flags().BoolVar(&runStats, "stats", false, "print per-opcode execution counts")
	runCmd.Flags().StringVar(&runDumpFile, "dump", "", "write an RLP dump of the final state to file")
}

func loadCode(args []string) ([]byte, error) {
	var src string
	switch {
	case runCodeFile != "":
		data, err := os.ReadFile(runCodeFile)
		if err != nil {
			return nil, err
		}
		src = string(data)
	case len(args) == 1:
		src = args[0]
	default:
		return nil, fmt.Errorf("no code: pass a hex argument or --code-file")
	}
	src = strings.TrimSpace(src)
	src = strings.TrimPrefix(src, "0x")
	code, err := hex.DecodeString(src)
	if err != nil {
		return nil, fmt.Errorf("bad hex code: %v", err)
	}
	return code, nil
}

func runCode(cmd *cobra.Command, code []byte) error {
	logger := log.Default().Module("vm")
	cfg := vm.Config{}
	if runTrace {
		cfg.Logger = logger
	}

	state := vm.NewState(code, runGas)
	interp := vm.NewInterpreter(state, nil, cfg)

	reg := metrics.NewRegistry()
	timer := metrics.NewTimer(reg.Histogram("run.duration_ms"))

	var (
		sig vm.Signal
		err error
	)
	for {
		op := state.GetOp(state.PC())
		before := interp.Steps()
		sig, err = interp.Step()
		if interp.Steps() > before {
			reg.Counter("op." + op.String()).Inc()
		}
		if sig != vm.Continue {
			break
		}
		if runGas > 0 && !state.ChargeGas(1) {
			err = fmt.Errorf("out of gas after %d steps", interp.Steps())
			break
		}
	}
	elapsed := timer.Stop()
	reg.Gauge("mem.active_words").Set(int64(state.Memory.ActiveWords()))
	reg.Gauge("stack.depth").Set(int64(state.Stack.Len()))

	logger.Info("execution finished",
		"signal", sig.String(),
		"steps", interp.Steps(),
		"elapsed", elapsed.String())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "signal: %s\n", sig)
	fmt.Fprintf(out, "steps:  %d\n", interp.Steps())
	fmt.Fprintf(out, "pc:     %d\n", state.PC())
	fmt.Fprintf(out, "msize:  %d\n", state.Memory.Size())
	fmt.Fprintf(out, "stack:  (%d items, top first)\n", state.Stack.Len())
	data := state.Stack.Data()
	for i := len(data) - 1; i >= 0; i-- {
		fmt.Fprintf(out, "  %s\n", data[i])
	}

	if runStats {
		fmt.Fprintln(out, "opcode counts:")
		for _, name := range reg.CounterNames() {
			fmt.Fprintf(out, "  %-24s %d\n", strings.TrimPrefix(name, "op."), reg.Counter(name).Value())
		}
	}

	if runDumpFile != "" {
		if derr := writeDump(runDumpFile, state); derr != nil {
			return derr
		}
		logger.Info("state dump written", "file", runDumpFile)
	}

	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

// writeDump serializes the final machine state as an RLP list of
// [pc, gas, stack..., memory] and writes it to path.
func writeDump(path string, state *vm.State) error {
	stack := []rlp.Item{}
	for _, w := range state.Stack.Data() {
		stack = append(stack, rlp.Word(w))
	}
	dump := rlp.List(
		rlp.Uint(state.PC()),
		rlp.Uint(state.Gas),
		rlp.List(stack...),
		rlp.Bytes(state.Memory.Data()),
	)
	return os.WriteFile(path, rlp.EncodeToBytes(dump), 0o644)
}
