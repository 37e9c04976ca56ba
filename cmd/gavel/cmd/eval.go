package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gavelhq/gavel/internal/core/config"
	"github.com/gavelhq/gavel/internal/functions"
	"github.com/gavelhq/gavel/internal/payload"
	"github.com/gavelhq/gavel/internal/types"
)

const Version = "0.1.0"

var evalCmd = &cobra.Command{
	Use:   "eval <function> [arg...]",
	Short: "Evaluate a library function against a JSON payload",
	Long: `Evaluate one library function. Arguments starting with '$.' are resolved
as paths into the payload; anything else is parsed as a JSON literal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List registered function names",
	RunE:  runFunctions,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(functionsCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("zone") || zoneID != "" {
		cfg.ZoneID = zoneID
	}
	if payloadFile != "" {
		cfg.PayloadPath = payloadFile
	}

	data, err := readPayload(cfg.PayloadPath)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	callArgs := make([]any, 0, len(args)-1)
	for _, raw := range args[1:] {
		v, err := resolveArgument(raw, data)
		if err != nil {
			return err
		}
		callArgs = append(callArgs, v)
	}

	registry := functions.NewBuilder().Build()
	bound := registry.Bind(functions.Session{
		ZoneID:      cfg.ZoneID,
		MaxSequence: cfg.MaxSequence,
	})

	fn, ok := bound[args[0]]
	if !ok {
		return fmt.Errorf("unknown function '%s'", args[0])
	}

	result, err := fn(callArgs...)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), result)
}

func runFunctions(cmd *cobra.Command, args []string) error {
	names := functions.NewBuilder().Build().Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

// readPayload loads the JSON payload from a file or stdin. An empty stdin
// yields an empty object so payload-free invocations work.
func readPayload(path string) (json.RawMessage, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return json.RawMessage(`{}`), nil
	}
	return json.RawMessage(data), nil
}

// resolveArgument turns one CLI argument into a function operand. '$.'
// prefixed arguments resolve through the payload; the rest parse as JSON
// literals, with bare words falling back to strings.
func resolveArgument(raw string, data json.RawMessage) (any, error) {
	if strings.HasPrefix(raw, "$.") {
		path, err := payload.ParsePath(raw)
		if err != nil {
			return nil, err
		}
		return payload.Resolve(path, data)
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		// Bare word such as YYYY-MM-DD or Europe/Berlin.
		return raw, nil
	}
	return v, nil
}

// printResult renders the evaluation result as a single JSON line.
// Undefined renders as the bare word undefined; dates render through their
// canonical string forms.
func printResult(w io.Writer, result any) error {
	if _, ok := result.(types.UndefinedValue); ok {
		_, err := fmt.Fprintln(w, "undefined")
		return err
	}
	if s, ok := result.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(w, s.String())
		return err
	}
	out, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
