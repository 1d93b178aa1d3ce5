/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "fmt"
    "os"
    "os/signal"
    "syscall"

    "github.com/HamedShams/tracker-report/internal/adapters/excel"
    "github.com/HamedShams/tracker-report/internal/adapters/tracker"
    "github.com/HamedShams/tracker-report/internal/config"
    "github.com/HamedShams/tracker-report/internal/domain"
    "github.com/HamedShams/tracker-report/internal/logger"
    "github.com/HamedShams/tracker-report/internal/services"
    "github.com/rs/zerolog"
    "github.com/spf13/cobra"
)

var Version = "dev"

type app struct {
    cfg config.Config
    log zerolog.Logger
    svc *services.Service
}

func main() {
    a := &app{}
    rootCmd := &cobra.Command{
        Use:           "trackerreport",
        Short:         "Monthly status reports from the issue tracker",
        Version:       Version,
        SilenceUsage:  true,
        SilenceErrors: true,
    }

    rootCmd.AddCommand(generateCmd(a))
    rootCmd.AddCommand(projectsCmd(a))

    if err := rootCmd.Execute(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

// load reads config and builds the service.
func (a *app) load() error {
    cfg, err := config.Load()
    if err != nil {
        return fmt.Errorf("config: %w", err)
    }
    a.cfg = cfg
    a.log = logger.New(cfg)
    a.svc = services.New(cfg, a.log, tracker.NewClient(cfg.Tracker, a.log))
    return nil
}

func generateCmd(a *app) *cobra.Command {
    var from, to, out string
    var projects []string
    cmd := &cobra.Command{
        Use:   "generate",
        Short: "Generate a workbook for a range of months",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            if err := a.load(); err != nil {
                return err
            }
            fp, err := domain.ParsePeriod(from)
            if err != nil {
                return err
            }
            tp := fp
            if to != "" {
                if tp, err = domain.ParsePeriod(to); err != nil {
                    return err
                }
            }
            ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
            defer stop()

            rep, err := a.svc.Generate(ctx, services.ReportRequest{From: fp, To: tp, Projects: projects})
            if err != nil {
                return err
            }
            if out == "" {
                out = rep.Filename()
            }
            if err := excel.NewExporter(a.cfg.Location()).WriteFile(out, rep); err != nil {
                return err
            }
            fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tasks\n", out, len(rep.Rows))
            return nil
        },
    }

    cmd.Flags().StringVar(&from, "from", "", "first month, YYYY-MM")
    cmd.Flags().StringVar(&to, "to", "", "last month, YYYY-MM (defaults to --from)")
    cmd.Flags().StringSliceVarP(&projects, "project", "p", nil, "project name; repeatable, defaults to report.projects")
    cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to the report file name)")
    _ = cmd.MarkFlagRequired("from")

    return cmd
}

func projectsCmd(a *app) *cobra.Command {
    return &cobra.Command{
        Use:   "projects",
        Short: "List tracker projects and the configured defaults",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            if err := a.load(); err != nil {
                return err
            }
            ps, err := a.svc.Projects(cmd.Context())
            if err != nil {
                return err
            }
            w := cmd.OutOrStdout()
            for _, p := range ps {
                fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Description)
            }
            fmt.Fprintf(w, "\ndefaults: %v\n", a.svc.DefaultProjects())
            return nil
        },
    }
}
