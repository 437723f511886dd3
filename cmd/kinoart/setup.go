package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/cobra"

	"github.com/mmcdole/kinoart/internal/adapter"
	"github.com/mmcdole/kinoart/internal/adapter/source/jellyfin"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                          \r"

const probeTimeout = 15 * time.Second

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Connect to a Jellyfin server and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd.Context())
		},
	}
}

func runSetup(ctx context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(styleHeader.Render("Welcome to Kinoart!"))
	fmt.Println()

	var serverURL string
	for {
		serverURL, err = jellyfin.PromptForServerURL(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		info, err := probeWithSpinner(ctx, jellyfin.NewClient(serverURL, "", "", logger))
		if err != nil {
			fmt.Println(styleError.Render("✗ Could not reach server: " + err.Error()))
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}
		fmt.Println(styleSuccess.Render(fmt.Sprintf("✓ Found %s (Jellyfin %s)", info.ServerName, info.Version)))
		break
	}

	result, err := jellyfin.NewAuthFlow(logger).Run(ctx, serverURL)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	cfg.Server.URL = serverURL
	cfg.Server.Token = result.Token
	cfg.Server.UserID = result.UserID
	cfg.Server.Username = result.Username

	loader := adapter.NewLoader(configDir)
	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(styleSuccess.Render("✓ Configuration saved to " + loader.Path()))
	fmt.Println()
	fmt.Println("Run kinoart to start browsing.")
	return nil
}

// probeWithSpinner checks the server's public info while animating a spinner
func probeWithSpinner(ctx context.Context, client *jellyfin.Client) (*jellyfin.SystemInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	type result struct {
		info *jellyfin.SystemInfo
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		info, err := client.PublicInfo(ctx)
		resultCh <- result{info, err}
	}()

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Printf("\r%s Connecting to server...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			return res.info, res.err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Connecting to server...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return nil, fmt.Errorf("connection timed out")
		}
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the server and credentials, keeping other settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := adapter.NewLoader(configDir).ClearServer(); err != nil {
				return err
			}
			fmt.Println(styleSuccess.Render("✓ Signed out"))
			return nil
		},
	}
}
