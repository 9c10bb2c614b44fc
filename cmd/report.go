package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"trendbot/internal/repository"
	"trendbot/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a one-shot market report and save it to disk",
	Run:   RunReport,
}

// RunReport generates a single report without starting the bot: the text as
// markdown and the chart as PNG, under reports/<timestamp>/.
func RunReport(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer func() {
		if err := appDep.Close(); err != nil {
			log.Printf("Failed to close app dependency: %v", err)
		}
	}()

	repo := repository.NewRepository(appDep.cfg, appDep.cache, appDep.db.DB, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.bot)

	report := services.ReportService.GenerateReport(ctx)

	reportsDir := filepath.Join("reports", report.GeneratedAt.Format("20060102150405"))
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		log.Fatalf("Failed to create reports directory: %v", err)
	}

	reportPath := filepath.Join(reportsDir, "report.md")
	if err := os.WriteFile(reportPath, []byte(report.Text), 0o644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	fmt.Println("Report saved to", reportPath)

	if report.Chart != nil {
		chartPath := filepath.Join(reportsDir, "viz.png")
		if err := os.WriteFile(chartPath, report.Chart, 0o644); err != nil {
			log.Fatalf("Failed to write chart: %v", err)
		}
		fmt.Println("Visualization saved to", chartPath)
	}
}
