package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dailyplanner/planner/internal/app"
	"github.com/dailyplanner/planner/internal/config"
	"github.com/dailyplanner/planner/pkg/calendar"
	"github.com/dailyplanner/planner/pkg/stats"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Calendar with month, week and day views.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the configuration file")

	addServe(cmd, &configPath)
	addAgenda(cmd, &configPath)
	return cmd
}

func addServe(topLevel *cobra.Command, configPath *string) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar API.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			application, err := app.NewApplication(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return application.Run(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}

// AgendaOptions are the flags of the agenda command.
type AgendaOptions struct {
	View    string
	Date    string
	Search  string
	Filters []string
	Lang    string
	NoColor bool
	Output  string
}

func addAgenda(topLevel *cobra.Command, configPath *string) {
	o := &AgendaOptions{}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print the events of a month, week or day.",
		Example: `
planner agenda
planner agenda --view week --date 2025-01-06
planner agenda --view day --search lunch --filter pop --filter jazz
planner agenda --view month -o csv
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return RunAgenda(cmd, cfg, o)
		},
	}
	cmd.Flags().StringVar(&o.View, "view", "", "month, week or day (defaults to calendar.initialview)")
	cmd.Flags().StringVar(&o.Date, "date", "", "date to show, YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&o.Search, "search", "", "only events whose title or description contains this text")
	cmd.Flags().StringSliceVar(&o.Filters, "filter", nil, "active filter id, repeatable")
	cmd.Flags().StringVar(&o.Lang, "lang", "", "label language, e.g. en or pt-BR")
	cmd.Flags().BoolVar(&o.NoColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "table", "table, or csv for the time scheduled per day and color")

	topLevel.AddCommand(cmd)
}

// RunAgenda builds the calendar from cfg, applies the options and prints it
// to the command's output.
func RunAgenda(cmd *cobra.Command, cfg config.Application, o *AgendaOptions) error {
	if o.NoColor {
		color.NoColor = true
	}
	if o.Lang != "" {
		cfg.Calendar.Language = o.Lang
	}
	deps, err := app.BuildDependencies(cfg, nil)
	if err != nil {
		return err
	}

	svc := deps.Host.Service()
	if o.View != "" {
		view, err := calendar.ParseView(o.View)
		if err != nil {
			return err
		}
		svc.SetView(view)
	}
	if o.Date != "" {
		date, err := time.ParseInLocation(time.DateOnly, o.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", o.Date, err)
		}
		svc.SelectDate(date)
	}
	svc.SetSearchQuery(o.Search)
	svc.SetActiveFilterIDs(o.Filters)

	switch o.Output {
	case "", "table":
		agenda := &Agenda{Labels: deps.Labels, MaxEvents: cfg.Calendar.MaxVisibleEvents}
		agenda.Render(cmd.OutOrStdout(), svc)
		return nil
	case "csv":
		summary := stats.Summarize(svc.Navigator().Days(), svc.FilteredEvents())
		out, err := stats.NewCsvStatsRenderer().RenderStats(summary)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	default:
		return fmt.Errorf("unknown output %q", o.Output)
	}
}
