package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/projectcompass/spyglass/internal/sim"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var listenAddr string
	var fixturesPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/spyglass/sim.yml)")
	flag.StringVar(&listenAddr, "listen", "", "override the listen address")
	flag.StringVar(&fixturesPath, "fixtures", "", "seed data file (YAML)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Compass Sim - Inquiry Service Simulator\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadSimConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if fixturesPath != "" {
		cfg.FixturesPath = fixturesPath
	}

	if err := runSim(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSim serves the simulated inquiry service until interrupted.
func runSim(cfg simConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var store *sim.Store
	if cfg.FixturesPath != "" {
		fix, err := sim.LoadFixtures(cfg.FixturesPath)
		if err != nil {
			return fmt.Errorf("failed to load fixtures: %w", err)
		}
		store = sim.NewStore(fix)
	} else {
		store = sim.NewStore()
	}

	server := sim.NewServer(cfg.ListenAddr, store)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start simulator: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		// Shutdown deadline starts now — not at boot.
		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	printStartupBanner(cfg, store)

	<-ctx.Done()

	if err := server.Stop(); err != nil {
		log.Printf("sim: shutdown: %v", err)
	}
	signal.Stop(sigCh)

	return nil
}

func printStartupBanner(cfg simConfig, store *sim.Store) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := cyan.Bold(true).Render(`
    ╔═╗╔═╗╔╦╗╔═╗╔═╗╔═╗╔═╗
    ║  ║ ║║║║╠═╝╠═╣╚═╗╚═╗
    ╚═╝╚═╝╩ ╩╩  ╩ ╩╚═╝╚═╝`)

	ver := dim.Render("sim v" + version)

	seed := store.RecentInquiries(0)
	departments := store.DepartmentStats()
	categories := store.CategoryDistribution()

	var lines []string
	lines = append(lines, "")
	lines = append(lines, logo)
	lines = append(lines, "    "+ver)
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Service"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render("http://"+cfg.ListenAddr)))
	if cfg.FixturesPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Fixtures       %s", check, dim.Render(shortenPath(cfg.FixturesPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Fixtures       %s", dot, dim.Render("built-in demo data")))
	}
	lines = append(lines, fmt.Sprintf("    %s  Seed Data      %s", check,
		dim.Render(fmt.Sprintf("%d inquiries, %d departments, %d categories",
			seed.Total, len(departments.Departments), len(categories.Categories)))))
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"))
	lines = append(lines, "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
