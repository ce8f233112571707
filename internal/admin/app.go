// Package admin implements the operator command line over the record store.
//
// Commands open the store directly, so they are meant for maintenance while the
// server is stopped or for read-only inspection while it runs.
package admin

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/osse101/InventoryRestore_Go/internal/database/sqlite"
	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/restore"
)

// App returns the admin application writing its output to out.
func App(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "admin",
		Usage: "Inspect and maintain stored inventories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagDataDir,
				Aliases: []string{"d"},
				Value:   DefaultDataDir,
				EnvVars: []string{EnvDataDir},
				Usage:   "Directory holding the inventory database",
			},
		},
		Writer: out,
		Before: func(c *cli.Context) error {
			logger.InitLoggerWithWriter(logger.Config{
				Level:       "warn",
				Format:      logger.LogFormatText,
				ServiceName: c.App.Name,
			}, c.App.ErrWriter)
			return nil
		},
		Commands: []*cli.Command{
			listCommand(),
			showCommand(),
			eraseCommand(),
			nicknamesCommand(),
			purgeCommand(),
			pendingCommand(),
		},
	}
}

type env struct {
	store   *sqlite.Store
	service restore.Service
}

type action func(c *cli.Context, e *env) error

// withStore opens the store for the duration of fn.
func withStore(fn action) cli.ActionFunc {
	return func(c *cli.Context) error {
		store, err := sqlite.Open(c.Context, c.String(FlagDataDir))
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgOpenStore, err)
		}
		defer store.Close()

		return fn(c, &env{
			store:   store,
			service: restore.NewService(store, nobody{}, nobody{}, restore.Options{}),
		})
	}
}

// nobody is the player directory of a process with no connected players.
type nobody struct{}

func (nobody) Player(uuid.UUID) (*domain.Player, bool) { return nil, false }

func (nobody) PlayerByName(string) (*domain.Player, bool) { return nil, false }

func (nobody) Drop(*domain.Player, []*domain.ItemStack) {}

func argAt(c *cli.Context, i int, name string) (string, error) {
	if c.NArg() <= i {
		return "", fmt.Errorf("%s: %s", ErrMsgMissingArgument, name)
	}
	return c.Args().Get(i), nil
}

// kindAndID reads the KIND ID argument pair.
func kindAndID(c *cli.Context) (domain.RecordKind, int64, error) {
	rawKind, err := argAt(c, 0, "KIND")
	if err != nil {
		return 0, 0, err
	}
	kind, err := domain.ParseRecordKind(rawKind)
	if err != nil {
		return 0, 0, err
	}
	rawID, err := argAt(c, 1, "ID")
	if err != nil {
		return 0, 0, err
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, fmt.Errorf("%s: %q", ErrMsgInvalidID, rawID)
	}
	return kind, id, nil
}
