package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"webgate/internal/codegen"
	"webgate/internal/envelope"
	"webgate/internal/session"
	"webgate/internal/tools"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Call tools interactively from a local shell",
	Long: `Repl runs the same dispatcher the MCP server uses, but reads tool
calls from an interactive prompt. Type a tool name followed by a JSON object
of arguments, "?" to pick a tool from a list, or "exit" to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("repl needs an interactive terminal; use serve for stdio operation")
	}

	log.SetOutput(os.Stderr)

	cfg := resolveConfig()
	for _, line := range cfg.DiagnosticLines() {
		fmt.Fprintln(os.Stderr, line)
	}

	sess := session.NewContext()
	defer sess.Close()
	tools.RegisterDefaults()
	dispatcher := tools.NewDispatcher(&tools.Env{
		Config:   cfg,
		Session:  sess,
		Recorder: codegen.NewRecorder(),
	})

	names := make([]string, 0, len(tools.List()))
	items := make([]readline.PrefixCompleterInterface, 0, len(tools.List()))
	for _, def := range tools.List() {
		names = append(names, def.Name)
		items = append(items, readline.PcItem(def.Name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "webgate> ",
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			printToolHelp(os.Stderr)
			continue
		case "?":
			var picked string
			prompt := &survey.Select{Message: "Tool", Options: names, PageSize: 15}
			if err := survey.AskOne(prompt, &picked); err != nil {
				continue
			}
			line = picked
		}

		name, callArgs, err := parseReplLine(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		res := dispatcher.Dispatch(context.Background(), name, callArgs)
		if res.IsError {
			fmt.Fprintf(os.Stderr, "error: %s\n", envelope.TextOf(res))
			continue
		}
		fmt.Println(envelope.TextOf(res))
	}
}

// parseReplLine splits "tool {json args}" into its parts. Arguments are
// optional.
func parseReplLine(line string) (string, map[string]interface{}, error) {
	name := line
	rest := ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name = line[:i]
		rest = strings.TrimSpace(line[i+1:])
	}

	callArgs := map[string]interface{}{}
	if rest != "" {
		if !strings.HasPrefix(rest, "{") {
			return "", nil, fmt.Errorf("arguments must be a JSON object, got %q", rest)
		}
		if err := json.Unmarshal([]byte(rest), &callArgs); err != nil {
			return "", nil, fmt.Errorf("parse arguments: %w", err)
		}
	}
	return name, callArgs, nil
}

func printToolHelp(w io.Writer) {
	fmt.Fprintln(w, `usage:
  <tool> {"arg": "value"}   call a tool with JSON arguments
  ?                         pick a tool from a list
  help                      show this help
  exit                      quit`)
}
