// Command hobomirror mirrors one or more source directories onto target
// directories, per spec.md. Command-line parsing here is intentionally
// minimal — spec.md §1 names "command-line parsing" and "settings/
// configuration persistence" as out-of-scope external collaborators, so
// this file is a thin, uncomplicated wiring layer (stdlib flag, not a
// subcommand framework) rather than a component of the core itself.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/config"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/engine"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/orchestrator"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/report"
	"github.com/hobomirror/hobomirror/pkg/logging"
)

func fatal(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
	os.Exit(1)
}

func main() {
	var (
		source               string
		target               string
		logDirectory         string
		refreshAccessControl bool
		updateMetadata       bool
		ignorePaths          string
		ignoreDirNames       string
		logLevel             string
		settingsPath         string
	)

	flagSet := flag.NewFlagSet("hobomirror", flag.ExitOnError)
	flagSet.StringVar(&source, "source", "", "snapshot (or live) source root to mirror from")
	flagSet.StringVar(&target, "target", "", "target root to mirror to (must contain the guard file)")
	flagSet.StringVar(&logDirectory, "log-dir", "", "directory for Action/Change/Error/CriticalError/Debug log files")
	flagSet.BoolVar(&refreshAccessControl, "refresh-acl", true, "copy security descriptors during this run")
	flagSet.BoolVar(&updateMetadata, "update-metadata", true, "copy timestamps and attribute bits during this run")
	flagSet.StringVar(&ignorePaths, "ignore-paths", "", "comma-separated absolute paths to ignore")
	flagSet.StringVar(&ignoreDirNames, "ignore-dir-names", "", "comma-separated directory leaf names to ignore")
	flagSet.StringVar(&logLevel, "log-level", "info", "disabled, error, info, or debug")
	flagSet.StringVar(&settingsPath, "settings", "", "YAML file tracking the ACL-refresh schedule and ignore lists across runs")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		fatal(err)
	}
	if source == "" || target == "" {
		fatal(fmt.Errorf("both -source and -target are required"))
	}

	level, ok := logging.NameToLevel(logLevel)
	if !ok {
		fatal(fmt.Errorf("invalid -log-level %q", logLevel))
	}
	logging.DebugEnabled = level >= logging.LevelDebug

	reporter, err := report.New(logging.RootLogger, logDirectory, level)
	if err != nil {
		fatal(err)
	}
	defer reporter.Close()

	var settings config.Settings
	if settingsPath != "" {
		settings, err = config.LoadSettings(settingsPath)
		if err != nil {
			fatal(err)
		}
		// Flags win when explicitly disabled; otherwise the schedule in
		// settingsPath decides whether this run refreshes ACLs.
		if refreshAccessControl {
			refreshAccessControl = settings.ShouldRefreshAccessControl(time.Now())
		}
		ignorePathList := append(splitNonEmpty(ignorePaths), settings.IgnorePaths...)
		ignoreDirNameList := append(splitNonEmpty(ignoreDirNames), settings.IgnoreDirNames...)
		ignorePaths = strings.Join(ignorePathList, ",")
		ignoreDirNames = strings.Join(ignoreDirNameList, ",")
	}

	task := orchestrator.MirrorTask{SourceRoot: source, TargetRoot: target}
	options := engine.Options{
		RefreshAccessControl: refreshAccessControl,
		UpdateMetadata:       updateMetadata,
	}

	orchestrator.RunTasks(
		reporter,
		[]orchestrator.MirrorTask{task},
		func(sourceRoot string) (string, error) {
			// Snapshotting is an external collaborator (spec.md §1);
			// in the absence of one, mirror directly from source.
			return sourceRoot, nil
		},
		splitNonEmpty(ignorePaths),
		splitNonEmpty(ignoreDirNames),
		options,
	)

	if len(reporter.ChangedDirs) > 0 {
		fmt.Println("Directories changed:")
		for dir := range reporter.ChangedDirs {
			fmt.Println(" ", dir)
		}
	}

	if settingsPath != "" && refreshAccessControl {
		settings.LastRefreshAccessControl = time.Now()
		if err := config.SaveSettings(settingsPath, settings); err != nil {
			fmt.Fprintln(os.Stderr, color.YellowString("Warning:"), err)
		}
	}

	os.Exit(reporter.ExitCode())
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
