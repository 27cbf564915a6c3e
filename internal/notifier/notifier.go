// Package notifier announces spin results and reminders through the spinday
// tray app, which listens on a localhost webhook advertised in its lockfile.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/spinday/internal/constants"
	"github.com/julianstephens/spinday/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no live tray app owns the lockfile
var ErrTrayNotRunning = errors.New(constants.TrayAppExecutable + " is not running")

// Notifier delivers text notifications to the tray app
type Notifier struct {
	// configDir overrides the tray app's config directory when set
	configDir string
	client    *http.Client
	retries   int
	delay     time.Duration
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// endpoint is the parsed "port|pid|secret" lockfile content
type endpoint struct {
	port   int
	secret string
}

// New returns a Notifier. An empty configDir uses the tray app's default location.
func New(configDir string) *Notifier {
	return &Notifier{
		configDir: configDir,
		client:    &http.Client{Timeout: 5 * time.Second},
		retries:   constants.NotifyMaxRetries,
		delay:     constants.NotifyRetryDelay,
	}
}

// SpinResult announces the item a spin settled on
func (n *Notifier) SpinResult(ctx context.Context, pc string, item string) error {
	return n.Notify(ctx, fmt.Sprintf("Today's %s activity: %s", pc, item))
}

// Reminder nudges the user to spin, or to write up the pending activity
func (n *Notifier) Reminder(ctx context.Context, pending string) error {
	return n.Notify(ctx, ReminderText(pending))
}

// ReminderText is the message sent by Reminder
func ReminderText(pending string) string {
	if pending != "" {
		return fmt.Sprintf("Still waiting on a diary entry for: %s", pending)
	}
	return "Time to spin the wheel!"
}

// Notify sends text to the tray app, retrying transient delivery failures.
// A missing or stale lockfile fails immediately.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir := n.configDir
	if dir == "" {
		var err error
		if dir, err = GetTrayAppConfigDir(); err != nil {
			return err
		}
	}

	ep, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	for attempt := 1; ; attempt++ {
		err = n.send(ctx, ep, payload)
		if err == nil || attempt >= n.retries || ctx.Err() != nil {
			break
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", err)

		timer := time.NewTimer(n.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// The tray app may relocate its lockfile via settings.json
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("Ignoring unreadable tray settings", "path", trayConfigDir, "error", err)
		return trayConfigDir, nil
	}
	if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayConfigDir, nil
}

func parseLockfile(content string) (endpoint, int, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return endpoint{}, 0, errors.New("lockfile is malformed")
	}

	if strings.TrimSpace(parts[0]) == "" {
		return endpoint{}, 0, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return endpoint{}, 0, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, 0, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return endpoint{}, 0, errors.New("invalid process ID in lockfile")
	}

	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return endpoint{}, 0, errors.New("secret in lockfile is empty")
	}

	return endpoint{port: port, secret: secret}, pid, nil
}

func findAndValidateTrayProcess(lockfilePath string) (endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}

	ep, pid, err := parseLockfile(string(content))
	if err != nil {
		return endpoint{}, err
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayAppExecutable) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayAppExecutable, process.Executable())
	}

	return ep, nil
}

func (n *Notifier) send(ctx context.Context, ep endpoint, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%d", ep.port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Spinday-Secret", ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
