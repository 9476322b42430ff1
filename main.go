package main

import (
	"context"
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/stepboard/config"
	"github.com/stepboard/logging"
	"github.com/stepboard/models"
	"github.com/stepboard/server"
	"github.com/stepboard/tui"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}

	logFile, err := logging.Setup(logging.SetupParams{
		LogFileName: cfg.LogFile,
		LogToStdout: cfg.LogStdout,
		LogLevel:    cfg.LogLevel,
	})
	if err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	result, err := models.LoadSeries(cfg.DataDir, cfg.WindowDays)
	if err != nil {
		logrus.Fatalf("Failed to load step data: %v", err)
	}
	warnings := multierr.Errors(result.Warnings)
	logrus.Infof("Loaded %d users from %s (%d day files skipped)", len(result.Series), cfg.DataDir, len(warnings))

	vm := models.NewViewModel(result, cfg.SavedDir)
	vm.OnChange(func(c models.Change) {
		logrus.Debugf("view model changed: %s", c)
	})

	switch cfg.UI {
	case config.UITUI:
		runTUI(vm)
	default:
		runWeb(cfg, vm, len(warnings))
	}
}

func runTUI(vm *models.ViewModel) {
	p := tea.NewProgram(tui.New(vm), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logrus.Fatalf("Error starting program: %v", err)
	}
}

func runWeb(cfg *config.Config, vm *models.ViewModel, loadWarnings int) {
	reg := prometheus.NewRegistry()
	metrics := server.NewMetrics("stepboard", "web", reg)
	metrics.CounterLoadWarnings.Add(float64(loadWarnings))

	l, err := net.Listen("tcp", "localhost:"+cfg.Port)
	if err != nil {
		logrus.Fatalf("Failed to listen on port %s: %v", cfg.Port, err)
	}

	url := "http://" + l.Addr().String()
	if cfg.OpenBrowser {
		if err := browser.OpenURL(url); err != nil {
			logrus.Warnf("Could not open browser, visit %s: %v", url, err)
		}
	}
	logrus.Infof("Visit %s to see the dashboard", url)

	srv := server.New(vm, metrics, reg)
	if err := srv.Serve(l); err != nil {
		logrus.Fatalf("Server failed: %v", err)
	}
}
