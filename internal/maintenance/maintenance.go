// Package maintenance реализует разовые служебные задачи, запускаемые вручную из cmd/maintenance.
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"freelance_backend/internal/services"

	"gorm.io/gorm"
)

const (
	CommandAssignManagers = "assign-managers"
	CommandNormalizeBios  = "normalize-bios"
)

var ErrUnknownCommand = errors.New("unknown command")

// Config: разобранные аргументы командной строки
type Config struct {
	Command    string
	DryRun     bool
	JSONOutput bool
	Timeout    time.Duration
}

// ParseConfig разбирает "<command> [flags]"
func ParseConfig(args []string, output io.Writer) (Config, error) {
	if len(args) == 0 {
		return Config{}, fmt.Errorf("%w: expected %s or %s", ErrUnknownCommand, CommandAssignManagers, CommandNormalizeBios)
	}

	cfg := Config{Command: args[0], Timeout: 10 * time.Minute}
	switch cfg.Command {
	case CommandAssignManagers, CommandNormalizeBios:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cfg.Command)
	}

	fs := flag.NewFlagSet(cfg.Command, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "print the result without writing to the database")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output JSON report")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := fs.Parse(args[1:]); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}

// Runner выполняет задачи поверх сервисов приложения
type Runner struct {
	assignments services.AssignmentService
	profiles    services.ProfileService
}

func NewRunner(container *services.ServiceContainer) *Runner {
	return &Runner{
		assignments: container.AssignmentService,
		profiles:    container.ProfileService,
	}
}

// NewDefaultRunner собирает Runner на стандартном контейнере сервисов.
// Токены и скрейпер задачам не нужны.
func NewDefaultRunner() *Runner {
	return NewRunner(services.NewServiceContainer(services.NewRepositories(), nil, services.MetadataDeps{}))
}

// Run выполняет команду и печатает отчёт в out
func (r *Runner) Run(ctx context.Context, db *gorm.DB, cfg Config, out io.Writer) error {
	var (
		report interface{}
		err    error
	)

	switch cfg.Command {
	case CommandAssignManagers:
		report, err = r.assignments.AssignUnassigned(ctx, db, cfg.DryRun)
	case CommandNormalizeBios:
		report, err = r.profiles.NormalizeBios(ctx, db, cfg.DryRun)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cfg.Command)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Command, err)
	}

	return printReport(out, cfg, report)
}

func printReport(out io.Writer, cfg Config, report interface{}) error {
	if cfg.JSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	switch rep := report.(type) {
	case *services.AssignmentReport:
		if rep.DryRun {
			for _, a := range rep.Plan {
				fmt.Fprintf(out, "project %s -> manager %s\n", a.ProjectID, a.ManagerID)
			}
		}
		fmt.Fprintf(out, "projects=%d managers=%d assigned=%d skipped=%d dry_run=%t\n",
			rep.Projects, rep.Managers, rep.Assigned, rep.Skipped, rep.DryRun)
		managerIDs := make([]string, 0, len(rep.ManagerLoad))
		for id := range rep.ManagerLoad {
			managerIDs = append(managerIDs, id)
		}
		sort.Strings(managerIDs)
		for _, id := range managerIDs {
			fmt.Fprintf(out, "manager %s total=%d\n", id, rep.ManagerLoad[id])
		}
	default:
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s dry_run=%t %s\n", cfg.Command, cfg.DryRun, data)
	}
	return nil
}
