package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/osse101/InventoryRestore_Go/internal/codec"
	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

const kindUsage = "Record kind (death, world, teleport, connection, disconnection)"

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List a player's records, newest first",
		ArgsUsage: "NICKNAME",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagKind,
				Aliases: []string{"k"},
				Value:   DefaultKind,
				Usage:   kindUsage,
			},
			&cli.IntFlag{
				Name:    FlagPage,
				Aliases: []string{"p"},
				Value:   1,
				Usage:   "Page number",
			},
		},
		Action: withStore(listRecords),
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the contents of a record",
		ArgsUsage: "KIND ID",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  FlagJSON,
				Usage: "Print as JSON",
			},
		},
		Action: withStore(showRecord),
	}
}

func eraseCommand() *cli.Command {
	return &cli.Command{
		Name:      "erase",
		Aliases:   []string{"rm"},
		Usage:     "Delete a record",
		ArgsUsage: "KIND ID",
		Action:    withStore(eraseRecord),
	}
}

func nicknamesCommand() *cli.Command {
	return &cli.Command{
		Name:  "nicknames",
		Usage: "List the nicknames that have records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagKind,
				Aliases: []string{"k"},
				Usage:   kindUsage + ", all kinds when unset",
			},
		},
		Action: withStore(listNicknames),
	}
}

func purgeCommand() *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Delete records older than the retention period",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    FlagDays,
				EnvVars: []string{EnvRetentionDays},
				Usage:   "Retention period in days",
			},
		},
		Action: withStore(purgeRecords),
	}
}

func pendingCommand() *cli.Command {
	return &cli.Command{
		Name:  "pending",
		Usage: "Manage inventories waiting for a player's next connection",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a pending inventory",
				ArgsUsage: "NICKNAME",
				Action:    withStore(showPending),
			},
			{
				Name:      "clear",
				Usage:     "Discard a pending inventory",
				ArgsUsage: "NICKNAME",
				Action:    withStore(clearPending),
			},
		},
	}
}

func listRecords(c *cli.Context, e *env) error {
	nickname, err := argAt(c, 0, "NICKNAME")
	if err != nil {
		return err
	}
	kind, err := domain.ParseRecordKind(c.String(FlagKind))
	if err != nil {
		return err
	}

	page, err := e.service.ListRecords(c.Context, kind, nickname, c.Int(FlagPage)-1)
	if err != nil {
		return err
	}
	out := c.App.Writer
	if page.Total == 0 {
		fmt.Fprintln(out, MsgNoRecords)
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tTIME\tWORLD\tLOCATION\tDETAIL\tITEMS\tRETURNED")
	for _, r := range page.Records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Timestamp, orDash(r.World), orDash(r.Location), detail(r), itemSummary(r.Inventory), yesNo(r.Returned))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, MsgPageFooter, page.Page+1, page.Pages, page.Total)
	return nil
}

type recordView struct {
	Record *domain.Record `json:"record"`
	Items  []slotView     `json:"items"`
}

func showRecord(c *cli.Context, e *env) error {
	kind, id, err := kindAndID(c)
	if err != nil {
		return err
	}
	record, snapshot, err := e.service.RecordSnapshot(c.Context, kind, id)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if c.Bool(FlagJSON) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(recordView{Record: record, Items: slotsOf(snapshot)})
	}

	tw := newTable(out)
	fmt.Fprintf(tw, "Record:\t%s #%d\n", kind, record.ID)
	fmt.Fprintf(tw, "Player:\t%s (%s)\n", record.Nickname, record.ActorID)
	fmt.Fprintf(tw, "Time:\t%s\n", record.Timestamp)
	fmt.Fprintf(tw, "World:\t%s\n", orDash(record.World))
	fmt.Fprintf(tw, "Location:\t%s\n", orDash(record.Location))
	fmt.Fprintf(tw, "Detail:\t%s\n", detail(*record))
	fmt.Fprintf(tw, "Returned:\t%s\n", yesNo(record.Returned))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return writeSlots(out, snapshot)
}

func eraseRecord(c *cli.Context, e *env) error {
	kind, id, err := kindAndID(c)
	if err != nil {
		return err
	}
	if err := e.service.EraseRecord(c.Context, kind, id); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, MsgRecordErased, kind, id)
	return nil
}

func listNicknames(c *cli.Context, e *env) error {
	var (
		names []string
		err   error
	)
	if c.IsSet(FlagKind) {
		kind, perr := domain.ParseRecordKind(c.String(FlagKind))
		if perr != nil {
			return perr
		}
		names, err = e.service.Nicknames(c.Context, kind)
	} else {
		names, err = e.service.KnownNicknames(c.Context)
	}
	if err != nil {
		return err
	}

	out := c.App.Writer
	if len(names) == 0 {
		fmt.Fprintln(out, MsgNoNicknames)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func purgeRecords(c *cli.Context, e *env) error {
	out := c.App.Writer
	days := c.Int(FlagDays)
	if days <= 0 {
		fmt.Fprintln(out, MsgRetentionOff)
		return nil
	}

	report, err := e.service.PurgeExpired(c.Context, time.Now(), days)
	if err != nil {
		return err
	}
	if report.Total() == 0 {
		fmt.Fprintln(out, MsgNothingPurged)
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "KIND\tPURGED")
	for _, kind := range domain.RecordKinds {
		fmt.Fprintf(tw, MsgPurgedKind, kind, report[kind])
	}
	fmt.Fprintf(tw, MsgPurgedKind, "total", report.Total())
	return tw.Flush()
}

func showPending(c *cli.Context, e *env) error {
	nickname, err := argAt(c, 0, "NICKNAME")
	if err != nil {
		return err
	}
	pending, err := e.store.FindPendingByNickname(c.Context, nickname)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Player: %s (%s)\n\n", pending.Nickname, pending.ActorID)
	snapshot, err := codec.Deserialize(pending.Inventory)
	if err != nil {
		return err
	}
	return writeSlots(out, snapshot)
}

func clearPending(c *cli.Context, e *env) error {
	nickname, err := argAt(c, 0, "NICKNAME")
	if err != nil {
		return err
	}
	pending, err := e.store.FindPendingByNickname(c.Context, nickname)
	if err != nil {
		return err
	}
	if err := e.store.DeletePending(c.Context, pending.ActorID); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, MsgPendingCleared, pending.Nickname)
	return nil
}

// slotView is one occupied slot of a snapshot.
type slotView struct {
	Group        string         `json:"group"`
	Slot         int            `json:"slot"`
	Material     string         `json:"material"`
	Amount       int            `json:"amount"`
	Damage       int            `json:"damage,omitempty"`
	DisplayName  string         `json:"display_name,omitempty"`
	Enchantments map[string]int `json:"enchantments,omitempty"`
}

var armorNames = [domain.ArmorSize]string{"boots", "leggings", "chestplate", "helmet"}

func slotsOf(snapshot domain.Snapshot) []slotView {
	var slots []slotView
	add := func(group string, slot int, item *domain.ItemStack) {
		if item.IsEmpty() {
			return
		}
		slots = append(slots, slotView{
			Group:        group,
			Slot:         slot,
			Material:     item.Material,
			Amount:       item.Amount,
			Damage:       item.Damage,
			DisplayName:  item.DisplayName,
			Enchantments: item.Enchantments,
		})
	}

	for i, item := range snapshot.Contents() {
		add("main", i, item)
	}
	for i, item := range snapshot.Armor() {
		group := "armor"
		if i < len(armorNames) {
			group = armorNames[i]
		}
		add(group, i, item)
	}
	for i, item := range snapshot.Extra() {
		if i == domain.ExtraOffhand {
			add("offhand", i, item)
			continue
		}
		add("carryover", i, item)
	}
	return slots
}

func writeSlots(w io.Writer, snapshot domain.Snapshot) error {
	slots := slotsOf(snapshot)
	if len(slots) == 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "GROUP\tSLOT\tITEM\tAMOUNT\tNAME")
	for _, s := range slots {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\n", s.Group, s.Slot, s.Material, s.Amount, orDash(s.DisplayName))
	}
	return tw.Flush()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func detail(r domain.Record) string {
	switch {
	case r.Death != nil:
		return r.Death.Cause
	case r.WorldChange != nil:
		return r.WorldChange.FromWorld + " -> " + r.WorldChange.ToWorld
	case r.Teleport != nil:
		return r.Teleport.FromLocation + " -> " + r.Teleport.ToLocation
	default:
		return "-"
	}
}

func itemSummary(inventory string) string {
	snapshot, err := codec.Deserialize(inventory)
	if err != nil {
		return "invalid"
	}
	return strconv.Itoa(snapshot.ItemCount())
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func yesNo(v bool) string {
	if v {
		return MsgReturnedMarker
	}
	return MsgNotReturnedValue
}
