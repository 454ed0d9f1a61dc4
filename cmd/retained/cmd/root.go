// Package cmd implements the retained CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (run, snapshot, config).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/retained/cmd/retained/internal/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "retained",
	Short: "retained - a retained-mode UI core",
	Long: `retained drives a tree of widgets through layout, paint and input
routing. This tool runs the sample tree in a terminal or renders it to
an image.

Use "retained <command> --help" for more information about a command.`,
	Usage: "retained <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// stdout is where commands print; tests replace it.
var stdout io.Writer = os.Stdout

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Fprintf(stdout, "retained version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  retained run                    Run the demo in this terminal")
	fmt.Fprintln(stdout, "  retained snapshot -o demo.png   Render one frame to a PNG")
	fmt.Fprintln(stdout, "  retained config                 Show the resolved configuration")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}

// projectConfig resolves the configuration for dir, or for the enclosing
// module root when dir is empty.
func projectConfig(dir string) (*config.Resolved, error) {
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	return config.Resolve(dir)
}

// takeValue returns the value of a "--name value" or "--name=value" flag at
// args[i] and the index of the last consumed argument.
func takeValue(args []string, i int, name string) (string, int, error) {
	if value, ok := strings.CutPrefix(args[i], name+"="); ok {
		return value, i, nil
	}
	if i+1 >= len(args) {
		return "", i, fmt.Errorf("%s requires a value", name)
	}
	return args[i+1], i + 1, nil
}
