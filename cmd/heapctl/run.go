package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arborist-go/heapalloc/alloc"
	"github.com/arborist-go/heapalloc/heap"
	"github.com/arborist-go/heapalloc/validator"
)

var runHeapLimit int32

func init() {
	cmd := newRunCmd()
	cmd.Flags().Int32Var(&runHeapLimit, "heap-limit", heap.DefaultLimit, "Byte ceiling for the in-memory heap provider")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace.json>",
		Short: "Replay a trace file against the allocator",
		Long: `The run command loads a JSON-encoded trace of ALLOC/REALLOC/FREE/WRITE
operations and replays it against a fresh allocator, checking alignment,
containment, and non-overlap on every ALLOC/REALLOC.

Example:
  heapctl run trace.json
  heapctl run trace.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args[0])
		},
	}
}

func runRun(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading trace: %w", err)
	}

	var tr validator.Trace
	if err := json.Unmarshal(raw, &tr); err != nil {
		return fmt.Errorf("parsing trace: %w", err)
	}
	printVerbose("loaded trace with %d ops\n", len(tr.Ops))

	p := heap.NewMem(runHeapLimit)
	a := alloc.New(p, nil)
	if err := a.Init(); err != nil {
		return fmt.Errorf("initializing allocator: %w", err)
	}

	v := validator.New()
	runErr := v.Run(a, tr)

	result := struct {
		Pass  bool        `json:"pass"`
		Error string      `json:"error,omitempty"`
		Stats alloc.Stats `json:"stats"`
	}{
		Pass:  runErr == nil,
		Stats: a.Stats(),
	}
	if runErr != nil {
		result.Error = runErr.Error()
	}

	if jsonOut {
		return printJSON(result)
	}

	if runErr != nil {
		printInfo("FAIL: %v\n", runErr)
	} else {
		printInfo("PASS (%d ops)\n", len(tr.Ops))
	}
	printInfo("alloc=%d free=%d resize=%d grow=%d split=%d coalesce(fwd=%d,back=%d) tailReclaims=%d\n",
		result.Stats.AllocCalls, result.Stats.FreeCalls, result.Stats.ResizeCalls, result.Stats.GrowCalls,
		result.Stats.SplitCount, result.Stats.CoalesceForward, result.Stats.CoalesceBackward, result.Stats.TailReclaims)

	if runErr != nil {
		os.Exit(1)
	}
	return nil
}
