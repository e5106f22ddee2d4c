// Command hearth is a local CLI for the household contribution tracker:
// log moments, manage members and deeds, review weekly summaries, and
// back up the vault. All data stays on this machine.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rowanvale/hearth/internal/backup"
	"github.com/rowanvale/hearth/internal/config"
	"github.com/rowanvale/hearth/internal/flags"
	"github.com/rowanvale/hearth/internal/logging"
	"github.com/rowanvale/hearth/internal/model"
	"github.com/rowanvale/hearth/internal/spark"
	"github.com/rowanvale/hearth/internal/vault"
)

func main() {
	configPath := os.Getenv("HEARTH_CONFIG")
	if configPath == "" {
		if base, err := os.UserConfigDir(); err == nil {
			configPath = filepath.Join(base, "hearth", "hearth.yaml")
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hearth:", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, nil)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	os.Exit(run(cfg, cmd, args))
}

// run owns the stores so their deferred closes drain pending writes
// before the process exits.
func run(cfg config.Config, cmd string, args []string) int {
	vaultDir := filepath.Join(cfg.DataDir, "vault")

	// Backup and restore work on the files directly, without a live vault.
	switch cmd {
	case "backup":
		return report(runBackup(vaultDir, cfg.Backup.Dir, args))
	case "restore":
		return report(runRestore(vaultDir, args))
	case "help", "-h", "--help":
		usage()
		return 0
	}

	flagStore, err := flags.Open(filepath.Join(cfg.DataDir, "flags.db"))
	if err != nil {
		return report(err)
	}
	defer flagStore.Close()

	v, err := vault.Open(vaultDir, flagStore, nil)
	if err != nil {
		return report(err)
	}
	defer v.Close()

	switch cmd {
	case "log":
		err = runLog(v, args)
	case "undo":
		err = runUndo(v)
	case "today":
		err = runToday(v)
	case "thank":
		err = runThank(v, args)
	case "members":
		err = runMembers(v, args)
	case "deeds":
		err = runDeeds(v, args)
	case "summary":
		err = runSummary(v, args)
	case "stats":
		err = runStats(v)
	case "badges":
		err = runBadges(v)
	case "reset":
		err = runReset(v, args)
	default:
		usage()
		return 2
	}
	return report(err)
}

func report(err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, "hearth:", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: hearth <command> [flags]

commands:
  log       record a moment (-member, -deed, -note, -at)
  undo      delete the most recently logged moment
  today     list today's moments
  thank     toggle gratitude on a moment (-moment, -from)
  members   list | add | archive household members
  deeds     list | add | archive deeds
  summary   print the weekly summary (-date, -out)
  stats     all-time statistics
  badges    badge catalog with unlock state
  backup    write an encrypted snapshot (-out, -passphrase)
  restore   unpack an encrypted snapshot (-in, -passphrase)
  reset     erase all data (-yes)
`)
}

func runLog(v *vault.Vault, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	memberName := fs.String("member", "", "member name")
	deedName := fs.String("deed", "", "deed name")
	note := fs.String("note", "", "optional note")
	at := fs.String("at", "", "occurrence time (RFC 3339), defaults to now")
	fs.Parse(args)

	member, err := findMember(v, *memberName)
	if err != nil {
		return err
	}
	deed, err := findDeed(v, *deedName)
	if err != nil {
		return err
	}

	now := time.Now()
	happened := now
	if *at != "" {
		happened, err = time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("parse -at: %w", err)
		}
	}

	m := model.NewMoment(deed.ID, member.ID, happened, now, strings.TrimSpace(*note))
	unlocked := v.RecordMoment(m)

	l := v.Ledger()
	fmt.Printf("Logged %s for %s. %d sparks, streak %d, level %s %s\n",
		deed.Name, member.Name, l.TotalSparks, l.CurrentStreak, l.Level.Icon(), l.Level)
	for _, id := range unlocked {
		if b, ok := spark.CatalogBadge(id); ok {
			fmt.Printf("Badge unlocked: %s %s — %s\n", b.Icon, b.Title, b.Desc)
		}
	}
	return nil
}

func runUndo(v *vault.Vault) error {
	if !v.UndoLastMoment() {
		return fmt.Errorf("nothing to undo")
	}
	fmt.Println("Last moment removed.")
	return nil
}

func runToday(v *vault.Vault) error {
	moments := v.MomentsForToday()
	if len(moments) == 0 {
		fmt.Println("No moments logged today.")
		return nil
	}
	members := v.Members()
	deeds := v.Deeds()
	for _, m := range moments {
		fmt.Printf("%s  %s  %s  %s", m.HappenedAt.Format("15:04"), deedLabel(deeds, m.DeedID), memberLabel(members, m.MemberID), m.ID)
		if m.Note != "" {
			fmt.Printf("  (%s)", m.Note)
		}
		if m.HasGratitude {
			fmt.Print("  💛")
		}
		fmt.Println()
	}
	return nil
}

func runThank(v *vault.Vault, args []string) error {
	fs := flag.NewFlagSet("thank", flag.ExitOnError)
	momentID := fs.String("moment", "", "moment id")
	fromName := fs.String("from", "", "member giving thanks")
	fs.Parse(args)

	id, err := uuid.Parse(*momentID)
	if err != nil {
		return fmt.Errorf("parse -moment: %w", err)
	}
	from, err := findMember(v, *fromName)
	if err != nil {
		return err
	}

	unlocked := v.ToggleGratitude(id, from.ID)
	fmt.Println("Gratitude toggled.")
	for _, bid := range unlocked {
		if b, ok := spark.CatalogBadge(bid); ok {
			fmt.Printf("Badge unlocked: %s %s — %s\n", b.Icon, b.Title, b.Desc)
		}
	}
	return nil
}

func runMembers(v *vault.Vault, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		for _, m := range v.Members() {
			status := ""
			if m.Archived {
				status = "  (archived)"
			}
			fmt.Printf("%s %s  %s%s\n", m.Emoji, m.Name, m.Role, status)
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("members add", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		role := fs.String("role", string(model.RoleParent), "role (Parent, Grandparent, Nanny, Sibling, Other)")
		emoji := fs.String("emoji", "🧡", "avatar emoji")
		fs.Parse(args[1:])

		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return fmt.Errorf("member name must not be empty")
		}
		colorSeed := len(v.Members())
		v.AddMember(model.NewMember(trimmed, model.Role(*role), *emoji, colorSeed, time.Now()))
		fmt.Printf("Added %s.\n", trimmed)
		return nil
	case "archive":
		fs := flag.NewFlagSet("members archive", flag.ExitOnError)
		name := fs.String("name", "", "member name")
		fs.Parse(args[1:])

		m, err := findMember(v, *name)
		if err != nil {
			return err
		}
		v.ArchiveMember(m.ID)
		fmt.Printf("Archived %s. Their history is kept.\n", m.Name)
		return nil
	default:
		return fmt.Errorf("unknown members subcommand %q", args[0])
	}
}

func runDeeds(v *vault.Vault, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		for _, d := range v.ActiveDeeds() {
			fmt.Printf("%-12s %s\n", d.Name, d.Domain)
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("deeds add", flag.ExitOnError)
		name := fs.String("name", "", "deed name")
		domain := fs.String("domain", string(model.DomainCustom), "domain (Care, Household, Custom)")
		icon := fs.String("icon", "hands.sparkles.fill", "icon name")
		fs.Parse(args[1:])

		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return fmt.Errorf("deed name must not be empty")
		}
		sortOrder := len(v.Deeds())
		v.AddDeed(model.NewDeed(trimmed, *icon, model.Domain(*domain), sortOrder))
		fmt.Printf("Added %s.\n", trimmed)
		return nil
	case "archive":
		fs := flag.NewFlagSet("deeds archive", flag.ExitOnError)
		name := fs.String("name", "", "deed name")
		fs.Parse(args[1:])

		d, err := findDeed(v, *name)
		if err != nil {
			return err
		}
		v.ArchiveDeed(d.ID)
		fmt.Printf("Archived %s. Logged moments are kept.\n", d.Name)
		return nil
	default:
		return fmt.Errorf("unknown deeds subcommand %q", args[0])
	}
}

func runSummary(v *vault.Vault, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	date := fs.String("date", "", "any date in the week (YYYY-MM-DD), defaults to today")
	out := fs.String("out", "", "write the report to a file instead of stdout")
	fs.Parse(args)

	ref := time.Now()
	if *date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("parse -date: %w", err)
		}
		ref = parsed
	}

	report := v.ExportWeeklySummary(ref)
	if *out == "" {
		fmt.Println(report)
		return nil
	}
	if err := os.WriteFile(*out, []byte(report+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("Report written to %s\n", *out)
	return nil
}

func runStats(v *vault.Vault) error {
	l := v.Ledger()
	fmt.Printf("Moments:    %d\n", v.TotalMoments())
	fmt.Printf("Gratitudes: %d\n", v.TotalGratitudes())
	fmt.Printf("Sparks:     %d\n", l.TotalSparks)
	fmt.Printf("Streak:     %d (longest %d)\n", l.CurrentStreak, l.LongestStreak)
	fmt.Printf("Level:      %s %s\n", l.Level.Icon(), l.Level)
	if next, ok := l.Level.Next(); ok {
		fmt.Printf("Next level: %s at %d sparks\n", next, next.SparksRequired())
	}
	if top := v.MostActiveDeed(); top != nil {
		fmt.Printf("Top deed:   %s\n", top.Name)
	}
	fmt.Printf("This week:  %d of %d spark goal\n", l.WeeklySparksCurrent, l.WeeklySparkGoal)
	return nil
}

func runBadges(v *vault.Vault) error {
	l := v.Ledger()
	for _, b := range spark.Catalog() {
		mark := "  "
		when := ""
		for _, u := range l.UnlockedBadges {
			if u.ID == b.ID && u.UnlockedAt != nil {
				mark = "✓ "
				when = "  " + u.UnlockedAt.Format("2006-01-02")
			}
		}
		fmt.Printf("%s%s %-15s %s%s\n", mark, b.Icon, b.Title, b.Desc, when)
	}
	return nil
}

func runBackup(vaultDir, backupDir string, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	out := fs.String("out", "", "snapshot path")
	passphrase := fs.String("passphrase", "", "encryption passphrase")
	fs.Parse(args)

	if *passphrase == "" {
		return fmt.Errorf("backup requires -passphrase")
	}
	dst := *out
	if dst == "" {
		if err := os.MkdirAll(backupDir, 0o755); err != nil {
			return fmt.Errorf("create backup dir: %w", err)
		}
		dst = filepath.Join(backupDir, "hearth-"+time.Now().Format("20060102-150405")+".backup")
	}
	if err := backup.Create(vaultDir, dst, *passphrase); err != nil {
		return err
	}
	fmt.Printf("Snapshot written to %s\n", dst)
	return nil
}

func runRestore(vaultDir string, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	in := fs.String("in", "", "snapshot path")
	passphrase := fs.String("passphrase", "", "encryption passphrase")
	fs.Parse(args)

	if *in == "" || *passphrase == "" {
		return fmt.Errorf("restore requires -in and -passphrase")
	}
	if err := backup.Restore(*in, vaultDir, *passphrase); err != nil {
		return err
	}
	fmt.Println("Snapshot restored.")
	return nil
}

func runReset(v *vault.Vault, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	yes := fs.Bool("yes", false, "confirm erasing everything")
	fs.Parse(args)

	if !*yes {
		return fmt.Errorf("reset erases all data; re-run with -yes to confirm")
	}
	v.ResetAllData()
	fmt.Println("All data reset to a fresh start.")
	return nil
}

func findMember(v *vault.Vault, name string) (model.Member, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Member{}, fmt.Errorf("member name required")
	}
	for _, m := range v.ActiveMembers() {
		if strings.EqualFold(m.Name, trimmed) {
			return m, nil
		}
	}
	return model.Member{}, fmt.Errorf("no active member named %q", trimmed)
}

func findDeed(v *vault.Vault, name string) (model.Deed, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Deed{}, fmt.Errorf("deed name required")
	}
	for _, d := range v.ActiveDeeds() {
		if strings.EqualFold(d.Name, trimmed) {
			return d, nil
		}
	}
	return model.Deed{}, fmt.Errorf("no active deed named %q", trimmed)
}

func memberLabel(members []model.Member, id uuid.UUID) string {
	for _, m := range members {
		if m.ID == id {
			return m.Name
		}
	}
	return "Unknown"
}

func deedLabel(deeds []model.Deed, id uuid.UUID) string {
	for _, d := range deeds {
		if d.ID == id {
			return d.Name
		}
	}
	return "Unknown"
}
