package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
	svc "github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
	"github.com/j-veylop/lotto-dashboard-tui/internal/version"
)

// withManager runs fn against headless services, logging to stderr.
func withManager(cmd *cobra.Command, fn func(*services.Manager) error) error {
	mgr, cleanup, err := openManager(true, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(mgr)
}

// fitProgress shows a bar on w while the cluster model is being fitted.
// The returned func finishes the bar.
func fitProgress(mgr *services.Manager, w io.Writer) func() {
	var bar *progressbar.ProgressBar
	mgr.SetFitProgress(func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetDescription("fitting clusters"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	})
	return func() {
		mgr.SetFitProgress(nil)
		if bar != nil {
			_ = bar.Finish()
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newGenerateCmd() *cobra.Command {
	var (
		model  string
		sets   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate recommended combinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(mgr *services.Manager) error {
				done := fitProgress(mgr, cmd.ErrOrStderr())
				rec, err := mgr.Generate(svc.Request{
					ModelType: models.ModelType(strings.ToLower(model)),
					NumSets:   sets,
				})
				done()
				if err != nil {
					return fmt.Errorf("generate failed: %w", err)
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), rec)
				}
				printRecommendation(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "generator: statistical or kmeans (default from DEFAULT_MODEL_TYPE)")
	cmd.Flags().IntVarP(&sets, "sets", "n", 0, fmt.Sprintf("number of sets, 1-%d (default from DEFAULT_NUM_SETS)", svc.MaxNumSets))
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		asJSON   bool
		clusters bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show number and pattern statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManager(cmd, func(mgr *services.Manager) error {
				overview, err := mgr.Statistics()
				if err != nil {
					return fmt.Errorf("statistics failed: %w", err)
				}

				if asJSON && !clusters {
					return writeJSON(cmd.OutOrStdout(), overview)
				}
				if !asJSON {
					printOverview(cmd.OutOrStdout(), overview)
				}
				if !clusters {
					return nil
				}

				done := fitProgress(mgr, cmd.ErrOrStderr())
				cm, err := mgr.ClusterModel()
				done()
				if err != nil {
					return fmt.Errorf("cluster fit failed: %w", err)
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), struct {
						*svc.Overview
						Clusters clusterSummary `json:"clusters"`
					}{overview, summarizeClusters(cm)})
				}
				printClusters(cmd.OutOrStdout(), cm)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&clusters, "clusters", false, "fit and show the cluster centroids")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "check NUMBERS...",
		Short:   "Check a combination against the draw history",
		Example: "  lotto check 1,7,13,22,38,45\n  lotto check 1 7 13 22 38 45",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			combo, err := models.ParseCombination(strings.Join(args, " "))
			if err != nil {
				return err
			}

			return withManager(cmd, func(mgr *services.Manager) error {
				ev, err := mgr.Evaluate(combo)
				if err != nil {
					return fmt.Errorf("check failed: %w", err)
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), ev)
				}
				printEvaluation(cmd.OutOrStdout(), ev)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Merge a history CSV into the draw store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(mgr *services.Manager) error {
				n, err := mgr.Import(args[0])
				if err != nil {
					return fmt.Errorf("import failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d draws from %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the draw history to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(mgr *services.Manager) error {
				if err := mgr.Export(args[0]); err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d draws to %s\n", len(mgr.History()), args[0])
				return nil
			})
		},
	}
}

func newAddDrawCmd() *cobra.Command {
	var (
		number  int
		winning string
		bonus   int
		prizes  []string
	)

	cmd := &cobra.Command{
		Use:     "add-draw",
		Short:   "Record a new draw",
		Example: "  lotto add-draw --number 1154 --winning 3,8,19,27,33,41 --bonus 5 --prize 1st=2500000000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := buildDraw(number, winning, bonus, prizes)
			if err != nil {
				return err
			}

			return withManager(cmd, func(mgr *services.Manager) error {
				if err := mgr.AddDraw(d); err != nil {
					return fmt.Errorf("add draw failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added draw %d\n", d.Number)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "draw number")
	cmd.Flags().StringVar(&winning, "winning", "", "six winning numbers, comma separated")
	cmd.Flags().IntVar(&bonus, "bonus", 0, "bonus number")
	cmd.Flags().StringArrayVar(&prizes, "prize", nil, "prize per tier as TIER=AMOUNT, repeatable")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("winning")
	_ = cmd.MarkFlagRequired("bonus")
	return cmd
}

// buildDraw validates add-draw flags.
func buildDraw(number int, winning string, bonus int, prizes []string) (models.Draw, error) {
	combo, err := models.ParseCombination(winning)
	if err != nil {
		return models.Draw{}, err
	}

	d := models.Draw{Number: number, Winning: combo, Bonus: bonus}
	for _, p := range prizes {
		tierText, amountText, ok := strings.Cut(p, "=")
		if !ok {
			return models.Draw{}, fmt.Errorf("prize %q: want TIER=AMOUNT", p)
		}
		tier, err := models.ParseTier(strings.TrimSpace(tierText))
		if err != nil {
			return models.Draw{}, fmt.Errorf("prize %q: %w", p, err)
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(amountText), ",", ""))
		if err != nil {
			return models.Draw{}, fmt.Errorf("prize %q: %w", p, err)
		}
		if d.Prizes == nil {
			d.Prizes = make(map[models.Tier]decimal.Decimal)
		}
		d.Prizes[tier] = amount
	}
	return d, d.Validate()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}
