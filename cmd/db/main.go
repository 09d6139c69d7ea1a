package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tuannm99/rowstore/internal"
	"github.com/tuannm99/rowstore/internal/repl"
)

// CLI defines the command-line interface using Kong
type CLI struct {
	File    string `arg:"" optional:"" help:"Table file, created if missing (default: storage.path, else an ephemeral file)" type:"path"`
	Config  string `name:"config" short:"c" help:"YAML config file" type:"path"`
	Debug   bool   `name:"debug" short:"d" help:"Debug logging on stderr"`
	TempDir string `name:"temp-dir" help:"Directory for the ephemeral table file"`
}

func newParser(cli *CLI) *kong.Kong {
	return kong.Must(cli,
		kong.Name("db"),
		kong.Description("Single-table row store driven by a line-oriented REPL."),
		kong.UsageOnError(),
	)
}

func main() {
	var cli CLI
	parser := newParser(&cli)
	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	os.Exit(run(&cli, os.Stdin, os.Stdout))
}

// run serves one session over stdin and returns the process exit code.
func run(cli *CLI, stdin *os.File, stdout io.Writer) int {
	cfg, err := internal.LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	level := cfg.Level()
	if cli.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(internal.NewLogger(os.Stderr, cfg.Log.Format, level))

	path := cfg.Storage.Path
	if cli.File != "" {
		path = cli.File
	}
	tempDir := cfg.Storage.TempDir
	if cli.TempDir != "" {
		tempDir = cli.TempDir
	}

	session, err := internal.OpenDatabase(path, tempDir)
	if err != nil {
		slog.Error("open database", "path", path, "err", err)
		return 1
	}

	var in repl.LineReader
	if repl.IsTerminal(stdin.Fd()) {
		in, err = repl.NewTerminal(cfg.REPL.Prompt, cfg.REPL.HistoryFile)
		if err != nil {
			slog.Error("readline", "err", err)
			_ = session.Close()
			return 1
		}
	} else {
		in = repl.NewPipeReader(stdin)
	}
	defer func() { _ = in.Close() }()

	// errors are already logged by the loop
	code, _ := repl.New(session, in, stdout).Run()
	return code
}
