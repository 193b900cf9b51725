package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hrdash/hrdash/internal/config"
	"github.com/hrdash/hrdash/internal/logging"
	"github.com/hrdash/hrdash/internal/profile"
	"github.com/hrdash/hrdash/internal/tui"
	"github.com/hrdash/hrdash/internal/tui/client"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fail(err)
	}

	name := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(name); err != nil {
		fail(err)
	}
	cfg, err := profile.LoadConfig(name)
	if err != nil {
		fail(err)
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		fail(err)
	}
	if err := profile.EnsureDir(name); err != nil {
		fail(err)
	}

	socketPath := profile.SocketPath(name)
	if err := client.Ensure(name, socketPath, os.Stderr); err != nil {
		fail(err)
	}

	c, err := client.New(socketPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to daemon: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = c.Close() }()

	// The terminal belongs to the UI, so logs only go to the file.
	logger, err := logging.NewFileOnly(profile.TUILogPath(name), name)
	if err != nil {
		fail(err)
	}
	defer func() { _ = logger.Sync() }()

	app := tui.NewApp(c, tui.Options{
		Profile:     name,
		MailSubject: cfg.Mail.Subject,
		ExportDir:   profile.ExportDir(name),
		Formatter:   formatter,
		Logger:      logger,
	})
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
