// Package cli provides shared CLI utilities for elsouk and elsoukd.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FlagDoc describes one flag in the machine-readable command listing.
type FlagDoc struct {
	Name      string `json:"name"`
	Shorthand string `json:"shorthand,omitempty"`
	Type      string `json:"type"`
	Default   string `json:"default,omitempty"`
	Usage     string `json:"usage,omitempty"`
	Required  bool   `json:"required"`
}

// CommandDoc describes a command tree in machine-readable form, consumed by
// shell tooling and editor integrations via --help-json.
type CommandDoc struct {
	Name        string       `json:"name"`
	Usage       string       `json:"usage,omitempty"`
	Aliases     []string     `json:"aliases,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	Details     string       `json:"details,omitempty"`
	Flags       []FlagDoc    `json:"flags,omitempty"`
	Subcommands []CommandDoc `json:"subcommands,omitempty"`
}

// DescribeCommand builds the CommandDoc for a cobra command and its visible
// subcommands.
func DescribeCommand(cmd *cobra.Command) CommandDoc {
	doc := CommandDoc{
		Name:    cmd.Name(),
		Usage:   cmd.Use,
		Aliases: cmd.Aliases,
		Summary: cmd.Short,
		Details: cmd.Long,
		Flags:   describeFlags(cmd),
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == "help" || sub.Hidden {
			continue
		}
		doc.Subcommands = append(doc.Subcommands, DescribeCommand(sub))
	}

	return doc
}

func describeFlags(cmd *cobra.Command) []FlagDoc {
	var flags []FlagDoc

	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "help-json" || f.Name == "help" {
			return
		}

		doc := FlagDoc{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Type:      f.Value.Type(),
			Default:   f.DefValue,
			Usage:     f.Usage,
		}
		if ann := cmd.Annotations; ann != nil {
			if _, ok := ann[cobra.BashCompOneRequiredFlag]; ok {
				doc.Required = true
			}
		}
		flags = append(flags, doc)
	})

	return flags
}

func printCommandDoc(cmd *cobra.Command) {
	output, err := json.MarshalIndent(DescribeCommand(cmd), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to describe command: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))
	os.Exit(0)
}

// AddHelpJSONFlag adds the --help-json flag to a command.
func AddHelpJSONFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("help-json", false, "Output command description as JSON")
}

// CheckHelpJSON checks os.Args for --help-json and prints the command
// description if found. Call before cmd.Execute() so the flag is handled
// ahead of argument validation.
func CheckHelpJSON(rootCmd *cobra.Command) {
	for i, arg := range os.Args {
		if arg == "--help-json" {
			printCommandDoc(resolveCommand(rootCmd, os.Args[1:i]))
		}
	}
}

func resolveCommand(cmd *cobra.Command, args []string) *cobra.Command {
	if len(args) == 0 {
		return cmd
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == args[0] || sub.HasAlias(args[0]) {
			return resolveCommand(sub, args[1:])
		}
	}

	return cmd
}
