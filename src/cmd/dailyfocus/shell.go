package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dailyfocus/local-app/src/pkg/cli"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/session"
)

func shellCmd(configPath *string) *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell, or run a command script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(*configPath, script)
		},
	}
	cmd.Flags().StringVarP(&script, "script", "s", "", "Run the commands in this file instead of prompting")
	return cmd
}

// runShell starts the background workers and reads commands until exit.
func runShell(configPath, script string) error {
	a, err := bootstrap(configPath, true, os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()
	ctx := context.Background()

	sessionManager := session.NewSessionManager(a.data, a.logger)
	defer sessionManager.Stop()
	a.logger.Info(ctx, "Session manager initialized", nil)

	if script != "" {
		c := cli.NewWriterCLI(sessionManager, os.Stdout, a.logger)
		defer c.Close()
		if err := c.ExecuteScript(script); err != nil {
			a.logger.Error(ctx, "Script failed", log.Fields{"script": script, "error": err})
			return fmt.Errorf("script %s: %w", script, err)
		}
		return nil
	}

	c, err := cli.NewCLI(sessionManager, a.cfg.HistoryFile, a.logger)
	if err != nil {
		a.logger.Error(ctx, "Failed to initialize CLI", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI: %w", err)
	}
	defer c.Close()
	a.logger.Info(ctx, "CLI instance created", nil)

	// SIGTERM closes the terminal so the read loop returns.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigChan)
		close(done)
	}()
	go func() {
		select {
		case <-sigChan:
			a.logger.Info(ctx, "Received terminate signal. Shutting down...", nil)
			c.Close()
		case <-done:
		}
	}()

	if err := c.Run(); err != nil {
		a.logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %w", err)
	}
	fmt.Println("Goodbye!")
	return nil
}
