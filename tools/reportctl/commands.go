package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"creator-finance/internal/database"
	reporting "creator-finance/internal/reporting/domain"
)

func newMigrateCmd(e *env) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the embedded schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			if len(args) == 1 && args[0] == "down" {
				return database.MigrateDown(e.db, steps, e.logger)
			}
			return database.MigrateUp(e.db, e.logger)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "migrations to roll back with down")
	return cmd
}

func newStatementCmd(e *env) *cobra.Command {
	var (
		subjectID   string
		subjectKind string
		periodKind  string
		view        string
		year        int
		index       int
		out         string
	)
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Generate a financial statement or one of its views",
		Long: `Generate the statement of a brand, influencer or the platform.

--view selects income, balance, cash-flow or analysis; views cover the month given by
--index, or the whole year when --index is 0.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := e.services(ctx)
			if err != nil {
				return err
			}
			subject, err := reporting.NewSubject(subjectID, reporting.SubjectKind(subjectKind))
			if err != nil {
				return err
			}

			var report reporting.Report
			switch strings.ToLower(view) {
			case "":
				kind, err := reporting.ParsePeriodKind(periodKind)
				if err != nil {
					return err
				}
				stmt, err := a.Statements.Generate(ctx, subject, kind, year, index)
				if err != nil {
					return err
				}
				report = stmt
			case "income":
				report, err = a.Views.IncomeStatement(ctx, subject, year, index)
			case "balance":
				report, err = a.Views.BalanceSheet(ctx, subject, year, index)
			case "cash-flow":
				report, err = a.Views.CashFlowStatement(ctx, subject, year, index)
			case "analysis":
				report, err = a.Views.FinancialAnalysis(ctx, subject, year, index)
			default:
				return fmt.Errorf("unknown view %q", view)
			}
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), a.Renderer, report, subject.ID, out)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&subjectID, "subject-id", "", "brand or influencer id")
	flags.StringVar(&subjectKind, "subject-kind", string(reporting.SubjectBrand), "brand, influencer or platform")
	flags.StringVar(&periodKind, "period", string(reporting.PeriodMonthly), "period kind")
	flags.StringVar(&view, "view", "", "income, balance, cash-flow or analysis")
	flags.IntVar(&year, "year", 0, "calendar year")
	flags.IntVar(&index, "index", 0, "day, ISO week, month or quarter within the year")
	flags.StringVar(&out, "out", "", "write to file; the extension selects pdf, xlsx or json")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newCampaignCmd(e *env) *cobra.Command {
	var campaignID, brandID, periodKind, out string
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Generate a campaign profit and loss report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := e.services(ctx)
			if err != nil {
				return err
			}
			kind, err := reporting.ParsePeriodKind(periodKind)
			if err != nil {
				return err
			}
			report, err := a.Campaigns.GenerateCampaignPLReport(ctx, campaignID, brandID, kind)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), a.Renderer, report, report.BrandID, out)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&campaignID, "campaign-id", "", "campaign id")
	flags.StringVar(&brandID, "brand-id", "", "owning brand id")
	flags.StringVar(&periodKind, "period", string(reporting.PeriodLifetime), "lifetime, monthly or quarterly")
	flags.StringVar(&out, "out", "", "write to file; the extension selects pdf, xlsx or json")
	_ = cmd.MarkFlagRequired("campaign-id")
	_ = cmd.MarkFlagRequired("brand-id")
	return cmd
}

func newPlatformCmd(e *env) *cobra.Command {
	var (
		reportType string
		year       int
		index      int
		out        string
	)
	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Generate a platform revenue report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := e.services(ctx)
			if err != nil {
				return err
			}
			kind, err := reporting.ParsePeriodKind(reportType)
			if err != nil {
				return err
			}
			report, err := a.Platform.GeneratePlatformRevenueReport(ctx, kind, year, index)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), a.Renderer, report, reporting.PlatformSubjectID, out)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&reportType, "type", string(reporting.PeriodMonthly), "daily, weekly, monthly, quarterly or yearly")
	flags.IntVar(&year, "year", 0, "calendar year")
	flags.IntVar(&index, "index", 0, "day, ISO week, month or quarter within the year")
	flags.StringVar(&out, "out", "", "write to file; the extension selects pdf, xlsx or json")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newEarningsCmd(e *env) *cobra.Command {
	var (
		influencerID string
		year         int
		month        int
		out          string
	)
	cmd := &cobra.Command{
		Use:   "earnings",
		Short: "Summarize an influencer's earnings for a year or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := e.services(ctx)
			if err != nil {
				return err
			}
			summary, err := a.Earnings.GenerateInfluencerEarningsSummary(ctx, influencerID, year, month)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), a.Renderer, summary, influencerID, out)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&influencerID, "influencer-id", "", "influencer id")
	flags.IntVar(&year, "year", 0, "calendar year")
	flags.IntVar(&month, "month", 0, "month 1-12, 0 for the whole year")
	flags.StringVar(&out, "out", "", "write to file; the extension selects pdf, xlsx or json")
	_ = cmd.MarkFlagRequired("influencer-id")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
