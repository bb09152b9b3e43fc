package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/pkoval/gitstate-go/internal/buildinfo"
	"github.com/pkoval/gitstate-go/internal/config"
	"github.com/pkoval/gitstate-go/internal/gitstate"
)

func Run() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	fs := flag.NewFlagSet("gitstate-go", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep running and reprint when the repository changes")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	noColor := fs.Bool("nocolor", false, "disable colored output")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(buildinfo.Version())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *noColor {
		cfg.Color = false
	}
	color.NoColor = !cfg.Color

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	repoPath := "."
	remaining := fs.Args()
	if len(remaining) > 0 {
		repoPath = remaining[len(remaining)-1]
	}

	reader, err := gitstate.Open(repoPath)
	if err != nil {
		return err
	}
	snap, err := reader.Snapshot()
	if err != nil {
		return err
	}
	printSnapshot(os.Stdout, snap)

	if !*watch {
		return nil
	}
	w, err := reader.Watch(cfg.WatchDelay(), func(snap gitstate.Snapshot) {
		fmt.Println()
		printSnapshot(os.Stdout, snap)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func printSnapshot(out io.Writer, snap gitstate.Snapshot) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	switch snap.State {
	case gitstate.StateMerging:
		fmt.Fprintln(out, yellow.Sprint("Merge in progress"))
	case gitstate.StateRebasing:
		fmt.Fprintln(out, yellow.Sprint("Rebase in progress"))
	}

	switch {
	case snap.HasBranch && snap.Branch.FromRebase:
		fmt.Fprintf(out, "Rebasing %s\n", cyan.Sprint(snap.Branch.Name))
	case snap.HasBranch:
		fmt.Fprintf(out, "On branch %s\n", green.Sprint(snap.Branch.Name))
	case snap.State == gitstate.StateDetached && snap.HasRevision:
		fmt.Fprintf(out, "HEAD detached at %s\n", cyan.Sprint(shortHash(snap.Revision)))
	}

	switch {
	case snap.HasRevision && (snap.HasBranch || snap.State != gitstate.StateDetached):
		fmt.Fprintf(out, "Commit: %s\n", snap.Revision)
	case !snap.HasRevision:
		fmt.Fprintln(out, "No commits yet")
	}
}

func shortHash(hash string) string {
	if len(hash) > 10 {
		return hash[:10]
	}
	return hash
}
