package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/eugolor/finlit/internal/api"
	"github.com/eugolor/finlit/internal/calculation"
	"github.com/eugolor/finlit/internal/catalog"
	"github.com/eugolor/finlit/internal/config"
	"github.com/eugolor/finlit/internal/domain"
	"github.com/eugolor/finlit/internal/game"
	"github.com/eugolor/finlit/internal/logger"
	"github.com/eugolor/finlit/internal/quotes"
	"github.com/eugolor/finlit/internal/store"
	"github.com/eugolor/finlit/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "finlit",
	Short: "Financial literacy life simulator",
	Long:  "Simulate a financial life from first paycheque to retirement: taxes, investing, life events, and scoring.",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "finlit %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

// loadConfig reads --config when given, else the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile != "" {
		return catalog.LoadFile(cfg.CatalogFile)
	}
	return catalog.Load(), nil
}

// buildProvider picks the market data source: the sample table when offline,
// otherwise Yahoo with the sample table as fallback, behind a cache.
func buildProvider(cfg *config.Config) quotes.Provider {
	if cfg.Quotes.Offline {
		return quotes.NewStaticProvider()
	}
	fallback := quotes.NewFallback(quotes.NewYahooProvider(), quotes.NewStaticProvider())
	return quotes.NewCachedProvider(fallback, 15*time.Minute)
}

func buildMachine(cfg *config.Config, cat *catalog.Catalog) *game.Machine {
	return game.NewMachine(cat,
		calculation.NewSeededSource(seedOrClock(cfg.Seeds.Events)),
		calculation.NewSeededSource(seedOrClock(cfg.Seeds.Stocks)))
}

// seedOrClock derives a seed from the clock when the config leaves it at
// zero. Adjacent calls get distinct seeds.
var seedCounter int64

func seedOrClock(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	seedCounter++
	return time.Now().UnixNano() + seedCounter
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := logger.New()
		defer log.Sync()

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		var st store.Store
		if cfg.DatabasePath != "" {
			st, err = store.NewSQLiteStore(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open session store: %w", err)
			}
			defer st.Close()
		}

		provider := buildProvider(cfg)
		projector := quotes.NewProjector(provider, cfg.Quotes.ProjectionSeed)
		machine := buildMachine(cfg, cat)
		handler := api.NewHandler(cat, machine, provider, projector, st, log)

		// Warm the quote cache on a schedule so trades see fresh prices.
		if cached, ok := provider.(*quotes.CachedProvider); ok {
			watchlist := quotes.NewStaticProvider().Tickers()
			scheduler := cron.New()
			if _, err := scheduler.AddFunc(cfg.Quotes.RefreshCron, func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				if failed := cached.Refresh(ctx, watchlist); len(failed) > 0 {
					log.Warnw("quote refresh incomplete", "failed", failed)
				}
			}); err != nil {
				return fmt.Errorf("invalid quote refresh schedule %q: %w", cfg.Quotes.RefreshCron, err)
			}
			scheduler.Start()
			defer scheduler.Stop()
		}

		log.Infow("starting server", "addr", cfg.Server.Addr, "offline", cfg.Quotes.Offline)
		return handler.Start(cfg.Server.Addr, cfg.Server.AllowedOrigins)
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		return tui.Run(cat, buildMachine(cfg, cat), buildProvider(cfg))
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a full unattended game and print the outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		age, _ := cmd.Flags().GetInt("age")
		income, _ := cmd.Flags().GetFloat64("income")
		startingMoney, _ := cmd.Flags().GetFloat64("money")
		goalsFlag, _ := cmd.Flags().GetString("goals")
		years, _ := cmd.Flags().GetInt("years")
		seed, _ := cmd.Flags().GetInt64("seed")
		csvPath, _ := cmd.Flags().GetString("csv")

		machine := game.NewMachine(cat,
			calculation.NewSeededSource(seed),
			calculation.NewSeededSource(seed+1))

		profile := domain.PlayerProfile{
			Name:          name,
			Age:           age,
			Income:        decimal.NewFromFloat(income),
			Goals:         domain.ParseGoals(goalsFlag),
			StartingMoney: decimal.NewFromFloat(startingMoney),
		}
		state, err := machine.Apply(nil, game.Initialize{Profile: profile})
		if err != nil {
			return err
		}

		var history []*store.YearRecord
		for i := 0; i < years && !state.IsGameOver; i++ {
			state, err = machine.Apply(state, game.SimulateYear{})
			if err != nil {
				return err
			}
			eventID := ""
			if state.CurrentEvent != nil {
				eventID = state.CurrentEvent.ID
			}
			history = append(history, &store.YearRecord{
				Year:     state.Year,
				Age:      state.Age,
				NetWorth: state.NetWorth(),
				Cash:     state.Cash,
				EventID:  eventID,
				Points:   state.TotalPoints,
			})
		}

		fmt.Printf("%-6s %-4s %14s %14s %8s  %s\n", "YEAR", "AGE", "NET WORTH", "CASH", "POINTS", "EVENT")
		for _, rec := range history {
			fmt.Printf("%-6d %-4d %14s %14s %8d  %s\n",
				rec.Year, rec.Age,
				"$"+rec.NetWorth.StringFixed(2), "$"+rec.Cash.StringFixed(2),
				rec.Points, rec.EventID)
		}

		summary := machine.Summarize(state)
		fmt.Println()
		fmt.Printf("Final net worth:  $%s\n", summary.NetWorth.StringFixed(2))
		fmt.Printf("Personality:      %s\n", summary.Personality)
		fmt.Printf("Literacy score:   %d / 100\n", summary.LiteracyScore)
		fmt.Printf("Rank:             %s (%d points)\n", summary.Tier.Name, summary.TotalPoints)
		for _, line := range summary.Feedback {
			fmt.Printf("  - %s\n", line)
		}

		if csvPath != "" {
			f, err := os.Create(csvPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := gocsv.MarshalFile(&history, f); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}
			fmt.Printf("\nWrote year history to %s\n", csvPath)
		}
		return nil
	},
}

var taxCmd = &cobra.Command{
	Use:   "tax [income]",
	Short: "Compute combined federal and Ontario income tax",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		income, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("income must be a number: %w", err)
		}
		calc := calculation.NewTaxCalculator(catalog.Load())
		result := calc.Calculate(income)

		fmt.Printf("Gross income:    $%s\n", result.GrossIncome.StringFixed(2))
		fmt.Printf("Total tax:       $%s\n", result.TotalTax.StringFixed(2))
		fmt.Printf("Effective rate:  %s%%\n", result.EffectiveRate.StringFixed(2))
		fmt.Printf("Take-home pay:   $%s\n", result.TakeHome.StringFixed(2))
		return nil
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Recommend a portfolio allocation for an age, income, and goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetInt("age")
		income, _ := cmd.Flags().GetFloat64("income")
		goalsFlag, _ := cmd.Flags().GetString("goals")

		cat := catalog.Load()
		advisor := calculation.NewAllocationAdvisor(cat)
		plan := advisor.Recommend(age, decimal.NewFromFloat(income), domain.ParseGoals(goalsFlag))

		fmt.Println("Recommended allocation:")
		for _, fund := range cat.Funds {
			if pct, ok := plan.Allocation[fund.Kind]; ok {
				fmt.Printf("  %-12s %3d%%\n", fund.Name, pct)
			}
		}
		fmt.Printf("Monthly investment: $%s\n", plan.MonthlyInvestRecommended.StringFixed(2))
		fmt.Printf("Take-home pay:      $%s\n", plan.TaxInfo.TakeHome.StringFixed(2))
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Score a financial snapshot and print recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		income, _ := cmd.Flags().GetFloat64("income")
		cash, _ := cmd.Flags().GetFloat64("cash")
		monthly, _ := cmd.Flags().GetFloat64("monthly")
		charity, _ := cmd.Flags().GetFloat64("charity")
		holdings, _ := cmd.Flags().GetStringToString("portfolio")

		portfolio := make(map[domain.FundKind]decimal.Decimal, len(holdings))
		for kind, raw := range holdings {
			bal, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("portfolio balance for %s must be a number: %w", kind, err)
			}
			portfolio[domain.FundKind(kind)] = bal
		}

		cat := catalog.Load()
		input := calculation.BuildHealthInput(cat, portfolio,
			decimal.NewFromFloat(cash), decimal.NewFromFloat(income),
			decimal.NewFromFloat(monthly), decimal.NewFromFloat(charity))

		scorer := calculation.NewHealthScorer()
		result, err := scorer.Score(input)
		if err != nil {
			return err
		}

		fmt.Printf("Financial health: %.1f / 100\n\n", result.Score)
		for name, sub := range result.Subscores {
			fmt.Printf("  %-16s %.1f\n", name, sub)
		}
		fmt.Println()
		for _, rec := range result.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{serveCmd, playCmd, simulateCmd} {
		cmd.Flags().String("config", "", "Path to YAML config file")
	}

	simulateCmd.Flags().String("name", "Player", "Player name")
	simulateCmd.Flags().Int("age", 25, "Starting age")
	simulateCmd.Flags().Float64("income", 60000, "Annual income")
	simulateCmd.Flags().Float64("money", 5000, "Starting money")
	simulateCmd.Flags().String("goals", "", "Comma-separated goals (home, emergency, retirement, travel)")
	simulateCmd.Flags().Int("years", 40, "Maximum years to simulate")
	simulateCmd.Flags().Int64("seed", 1, "Random seed")
	simulateCmd.Flags().String("csv", "", "Write year-by-year history to a CSV file")

	allocateCmd.Flags().Int("age", 25, "Age")
	allocateCmd.Flags().Float64("income", 60000, "Annual income")
	allocateCmd.Flags().String("goals", "", "Comma-separated goals")

	healthCmd.Flags().Float64("income", 60000, "Annual income")
	healthCmd.Flags().Float64("cash", 0, "Cash on hand")
	healthCmd.Flags().Float64("monthly", 0, "Monthly investment contribution")
	healthCmd.Flags().Float64("charity", 0, "Annual charitable giving")
	healthCmd.Flags().StringToString("portfolio", nil, "Fund balances, e.g. tfsa=10000,etf=5000")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
