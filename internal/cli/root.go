package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/spinday/internal/backup"
	"github.com/julianstephens/spinday/internal/config"
	"github.com/julianstephens/spinday/internal/diary"
	"github.com/julianstephens/spinday/internal/keyring"
	"github.com/julianstephens/spinday/internal/logger"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/notifier"
	"github.com/julianstephens/spinday/internal/pool"
	"github.com/julianstephens/spinday/internal/roulette"
	"github.com/julianstephens/spinday/internal/storage"
	"github.com/julianstephens/spinday/internal/storage/sqlite"
	"github.com/julianstephens/spinday/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Catalog config.Catalog
	Env     config.Env

	// Out and In default to the process's stdout and stdin
	Out io.Writer
	In  io.Reader
	// Now defaults to time.Now
	Now func() time.Time
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Clock returns the current time
func (c *Context) Clock() time.Time { return c.now() }

// Printf writes to the command output
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Print writes pre-rendered text to the command output
func (c *Context) Print(s string) {
	fmt.Fprint(c.out(), s)
}

// Println writes a line to the command output
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Writer exposes the command output for table renderers
func (c *Context) Writer() io.Writer { return c.out() }

// Confirm asks a yes/no question, defaulting to no
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Pool returns the item pool manager over the store and the default catalog
func (c *Context) Pool() *pool.Manager {
	return pool.NewManager(c.Store, c.Catalog)
}

// Diary returns the diary service, dating entries in the configured timezone
func (c *Context) Diary() *diary.Service {
	return diary.NewService(c.Store, c.Pool(), c.Catalog, c.localNow)
}

// Roulette returns the spin orchestration service
func (c *Context) Roulette() *roulette.Service {
	return roulette.New(c.Store, c.Pool(),
		roulette.WithNotifier(c.Notifier()),
		roulette.WithClock(c.now),
	)
}

// Notifier returns the tray notifier, honouring SPINDAY_TRAY_CONFIG_DIR
func (c *Context) Notifier() *notifier.Notifier {
	return notifier.New(c.Env.TrayConfigDir)
}

// Settings returns the persisted settings
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (c *Context) localNow() time.Time {
	now := c.now()
	settings, err := c.Store.GetSettings()
	if err != nil {
		return now
	}
	if loc, err := utils.LoadLocation(settings.Timezone); err == nil {
		return now.In(loc)
	}
	return now
}

// Keyring returns the keyring entry holding the PostgreSQL connection
func (c *Context) Keyring() *keyring.Credentials {
	return keyring.New(c.Env.KeyringUser)
}

// PerformAutomaticBackup snapshots SQLite databases and logs failures
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// CleanLabel trims a label and rejects blank ones
func CleanLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", errors.New("item label cannot be empty")
	}
	return label, nil
}
