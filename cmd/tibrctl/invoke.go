package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newInvokeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <command> [json-args]",
		Short: "Run one UI command with a JSON object of arguments",
		Example: `  tibrctl invoke listLocalModels
  tibrctl invoke getProjectInfo '{"projectPath":"/home/me/notes"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			input := ""
			if len(args) == 2 {
				input = args[1]
			}
			result, err := a.Invoke(args[0], input)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result)
		},
	}
}

func newCommandsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands accepted by invoke",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(a.Commands(), "\n"))
			return err
		},
	}
}

// writeResult prints strings as is and anything else as indented JSON.
func writeResult(w io.Writer, result any) error {
	switch v := result.(type) {
	case nil:
		return nil
	case string:
		if v == "" || strings.HasSuffix(v, "\n") {
			_, err := io.WriteString(w, v)
			return err
		}
		_, err := fmt.Fprintln(w, v)
		return err
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
