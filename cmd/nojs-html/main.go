package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/vcrobe/nojs-html/checker"
	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/repl"
)

const usage = `Usage: nojs-html <command> [flags]

Commands:
  check [-watch] [-dev] [dir]   Render every template under dir and report failures
  render [-dev] <file>          Render one template and print its HTML
  repl                          Evaluate expressions and markup interactively

Settings are read from nojs-html.yaml in the working directory or the checked dir.
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "check":
		err = runCheck(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "repl":
		err = runRepl(os.Args[2:])
	case "help", "-h", "-help", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("nojs-html %s: %v", os.Args[1], err)
	}
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	// The '-watch' flag keeps checking whenever a template or the config changes.
	watch := fs.Bool("watch", false, "Re-check when templates change")
	// The '-dev' flag enables development warnings.
	dev := fs.Bool("dev", false, "Enable development mode warnings")
	fs.Parse(args)

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	check := func() (int, error) {
		cfg, err := checker.Load(root, os.Getenv)
		if err != nil {
			return 0, err
		}
		cfg.Dev = cfg.Dev || *dev

		templates, err := checker.Discover(root, cfg.Suffix)
		if err != nil {
			return 0, err
		}
		c := checker.New(cfg, templates)
		checker.ReportConflicts(os.Stdout, c.Conflicts())
		return checker.Report(os.Stdout, root, c.CheckAll(templates)), nil
	}

	failed, err := check()
	if err != nil {
		return err
	}
	if !*watch {
		if failed > 0 {
			os.Exit(1)
		}
		return nil
	}

	cfg, err := checker.Load(root, os.Getenv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Watching %s for changes...\n", root)
	return checker.Watch(ctx, root, cfg.Suffix, func(path string) {
		fmt.Printf("\n%s changed\n", path)
		if _, err := check(); err != nil {
			console.Error(err)
		}
	})
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	dev := fs.Bool("dev", false, "Enable development mode warnings")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one template file")
	}

	cfg, err := checker.Load(".", os.Getenv)
	if err != nil {
		return err
	}
	cfg.Dev = cfg.Dev || *dev

	t, err := checker.Inspect(fs.Arg(0), cfg.Suffix)
	if err != nil {
		return err
	}
	res := checker.New(cfg, []checker.Template{t}).Check(t)
	if res.Err != nil {
		checker.Report(os.Stderr, ".", []checker.Result{res})
		os.Exit(1)
	}
	fmt.Println(res.HTML)
	return nil
}

func runRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	dev := fs.Bool("dev", false, "Enable development mode warnings")
	fs.Parse(args)

	cfg, err := checker.Load(".", os.Getenv)
	if err != nil {
		return err
	}

	s, err := repl.NewSession(cfg.Context, repl.Options{
		ReplaceAllTokens:      cfg.ReplaceAllTokens,
		RawTemplateEvaluation: cfg.RawTemplateEvaluation,
		Dev:                   cfg.Dev || *dev,
	})
	if err != nil {
		return err
	}
	return repl.Start(os.Stdout, s)
}
