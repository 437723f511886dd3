package jellyfin

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/mmcdole/kinoart/internal/domain"
)

const (
	authTimeout = 30 * time.Second
	deviceID    = "kinoart-cli"
	appVersion  = "0.1.0"
)

// AuthFlow implements domain.AuthFlow for Jellyfin username/password authentication
type AuthFlow struct {
	logger     *slog.Logger
	httpClient *http.Client

	in           *bufio.Reader
	out          io.Writer
	readPassword func() (string, error)
}

// NewAuthFlow creates an authentication flow prompting on the terminal
func NewAuthFlow(logger *slog.Logger) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{
		logger:     logger,
		httpClient: &http.Client{Timeout: authTimeout},
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		readPassword: func() (string, error) {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			return string(b), err
		},
	}
}

// Run prompts for credentials and authenticates against the server
func (f *AuthFlow) Run(ctx context.Context, serverURL string) (*domain.AuthResult, error) {
	serverURL = strings.TrimRight(serverURL, "/")

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "Jellyfin Authentication")
	fmt.Fprintln(f.out, "━━━━━━━━━━━━━━━━━━━━━━━━")

	fmt.Fprint(f.out, "Username: ")
	username, err := f.in.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	// Hidden input
	fmt.Fprint(f.out, "Password: ")
	password, err := f.readPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(f.out)

	fmt.Fprintln(f.out, "Authenticating...")
	result, err := f.Authenticate(ctx, serverURL, username, password)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(f.out, "Signed in as %s\n", result.Username)
	return result, nil
}

// Authenticate exchanges a username and password for an access token
func (f *AuthFlow) Authenticate(ctx context.Context, serverURL, username, password string) (*domain.AuthResult, error) {
	bodyBytes, err := json.Marshal(map[string]string{
		"Username": username,
		"Pw":       password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(serverURL, "/")+"/Users/AuthenticateByName", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Emby-Authorization", buildAuthHeader("")) // No token yet

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error("jellyfin auth request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		f.logger.Error("jellyfin auth error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("authentication failed with status %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.Unmarshal(respBody, &authResp); err != nil {
		return nil, fmt.Errorf("failed to parse auth response: %w", err)
	}

	return &domain.AuthResult{
		Token:    authResp.AccessToken,
		UserID:   authResp.User.ID,
		Username: authResp.User.Name,
	}, nil
}

// buildAuthHeader constructs the X-Emby-Authorization header
func buildAuthHeader(token string) string {
	parts := []string{
		`MediaBrowser Client="Kinoart"`,
		`Device="CLI"`,
		fmt.Sprintf(`DeviceId="%s"`, deviceID),
		fmt.Sprintf(`Version="%s"`, appVersion),
	}
	if token != "" {
		parts = append(parts, fmt.Sprintf(`Token="%s"`, token))
	}
	return strings.Join(parts, ", ")
}

// PromptForServerURL prompts the user to enter a Jellyfin server URL
func PromptForServerURL(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter your Jellyfin server URL (e.g., http://192.168.1.100:8096): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
