package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"YieldSentinel/internal/chart"
	"YieldSentinel/internal/model"
	"YieldSentinel/internal/notifier"
	"YieldSentinel/internal/recorder"
	"YieldSentinel/internal/screener"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the daily screening task.
type Scheduler struct {
	Cron      *cron.Cron
	Pipeline  *screener.Pipeline
	Chart     *chart.Renderer
	Notifier  *notifier.DiscordNotifier
	Recorder  recorder.Recorder
	Symbols   []string
	Threshold float64
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *screener.Pipeline, cr *chart.Renderer, dn *notifier.DiscordNotifier, rec recorder.Recorder, symbols []string, threshold float64) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Pipeline:  p,
		Chart:     cr,
		Notifier:  dn,
		Recorder:  rec,
		Symbols:   symbols,
		Threshold: threshold,
		Ctx:       ctx,
	}
}

// Register registers the daily screening task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyScreen); err != nil {
		return fmt.Errorf("register daily screen: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the screening task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyScreen()
}

func (s *Scheduler) dailyScreen() {
	log.Printf("[INFO] running market screen: %d symbols, threshold %.1f%%", len(s.Symbols), s.Threshold)

	report, err := s.Pipeline.Screen(s.Ctx, s.Symbols, s.Threshold)
	if err != nil {
		log.Printf("[ERROR] screening run: %v", err)
		s.trySendText(notifier.FormatBatchAlert(err))
		return
	}

	log.Printf("[INFO] screen complete: %d qualified, %d skipped", len(report.Results), len(report.Skipped))
	for _, o := range report.Skipped {
		if o.Skip != model.SkipBelowThreshold {
			log.Printf("[WARN] skipped %s: %s", o.Symbol, o.Skip)
		}
	}

	// Every completed run goes into history, hits or not.
	if err := s.Recorder.RecordRun(report); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	if len(report.Results) == 0 {
		log.Printf("[INFO] no symbols with yield above %.1f%% today", s.Threshold)
		return
	}

	s.trySendText(notifier.FormatSummary(report, time.Now()))
	s.sendCharts(report)
}

// sendCharts renders and sends one chart message per qualifying symbol. Each
// image buffer lives only for the duration of its own send.
func (s *Scheduler) sendCharts(report *model.RunReport) {
	for i := range report.Results {
		result := &report.Results[i]

		img, err := s.Chart.Render(result.Series)
		if err != nil {
			log.Printf("[WARN] render chart %s: %v, skipping image", result.Symbol, err)
			continue
		}

		filename := fmt.Sprintf("%s_chart.png", result.Symbol)
		if err := s.Notifier.SendWithChart(result, img, filename); err != nil {
			log.Printf("[ERROR] send chart %s: %v", result.Symbol, err)
		}
	}
	log.Println("[INFO] all chart notifications processed")
}

func (s *Scheduler) trySendText(text string) {
	if err := s.Notifier.SendText(text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
