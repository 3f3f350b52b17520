package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/labstack/gommon/log"

	"pms-data-checker/internal/config"
	"pms-data-checker/internal/domain"
	"pms-data-checker/internal/gateway"
	"pms-data-checker/internal/usecase"
)

// runReport is the machine-readable summary printed at the end of a run.
type runReport struct {
	Hotel              string                       `json:"hotel"`
	Range              domain.DateRange             `json:"range"`
	Retrieval          *domain.RetrievalResult      `json:"retrieval"`
	Reconciliation     *domain.ReconciliationReport `json:"reconciliation,omitempty"`
	StatisticsFile     string                       `json:"statistics_file,omitempty"`
	ReconciliationFile string                       `json:"reconciliation_file,omitempty"`
}

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to the JSON configuration file (required unless PMS_* env vars are set)")
	hotelID := flag.String("hotel", "", "Hotel ID to retrieve statistics for (required)")
	startDateStr := flag.String("start", "", "Start date (YYYY-MM-DD) (required)")
	endDateStr := flag.String("end", "", "End date (YYYY-MM-DD) (required)")
	referenceFile := flag.String("reference", "", "Path to the reference dataset CSV (optional; enables reconciliation)")
	outDir := flag.String("out", ".", "Directory for the xlsx exports")
	workers := flag.Int("workers", usecase.DefaultWorkers, "Concurrent sub-range pipelines")
	pollTimeout := flag.Duration("poll-timeout", gateway.DefaultPollTimeout, "Maximum time to wait for one report job")
	flag.Parse()

	if *hotelID == "" || *startDateStr == "" || *endDateStr == "" {
		fmt.Println("Error: flags -hotel, -start and -end are required.")
		flag.Usage()
		os.Exit(1)
	}

	startDate, err := domain.ParseDate(*startDateStr)
	if err != nil {
		log.Fatalf("Error parsing start date: %v", err)
	}
	endDate, err := domain.ParseDate(*endDateStr)
	if err != nil {
		log.Fatalf("Error parsing end date: %v", err)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// --- Dependency Injection (Wiring the application) ---
	pmsClient := gateway.NewPMSClient(gateway.PMSClientConfig{PollTimeout: *pollTimeout})
	csvRepo := gateway.NewCSVReferenceRepository()
	excelWriter := gateway.NewExcelReportWriter(*outDir)

	retrievalUseCase := usecase.NewRetrievalUseCase(pmsClient, pmsClient, usecase.DefaultMaxRangeDays, *workers)
	reconciliationUseCase := usecase.NewReconciliationUseCase(csvRepo)

	req := domain.RunRequest{
		Context:     cfg.Connection(*hotelID),
		Credentials: cfg.Credentials(),
		Range:       domain.DateRange{Start: startDate, End: endDate},
	}

	// --- Execute the run ---
	ctx := context.Background()
	retrieval, err := retrievalUseCase.Retrieve(ctx, req)
	if err != nil {
		log.Fatalf("Retrieval failed: %v", err)
	}
	if retrieval.RangesCompleted == 0 {
		log.Fatalf("All %d sub-range(s) failed; nothing to export", retrieval.RangesFailed)
	}

	report := runReport{
		Hotel:     *hotelID,
		Range:     req.Range,
		Retrieval: retrieval,
	}

	report.StatisticsFile, err = excelWriter.WriteStatistics(*hotelID, req.Range, retrieval.Statistics)
	if err != nil {
		log.Fatalf("Failed to write statistics export: %v", err)
	}

	if *referenceFile != "" {
		runDate := domain.DateOf(time.Now())
		reconciliation, err := reconciliationUseCase.Reconcile(ctx, retrieval.Statistics, *referenceFile, runDate)
		if err != nil {
			log.Fatalf("Reconciliation failed: %v", err)
		}
		report.Reconciliation = reconciliation

		report.ReconciliationFile, err = excelWriter.WriteReconciliation(*hotelID, req.Range, reconciliation)
		if err != nil {
			log.Fatalf("Failed to write reconciliation export: %v", err)
		}
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON report: %v", err)
	}
	fmt.Println(string(output))

	if retrieval.RangesFailed > 0 {
		os.Exit(1)
	}
}
