package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inlinefields/internal/app"
	"github.com/marcus/inlinefields/internal/config"
	"github.com/marcus/inlinefields/internal/decoration"
	"github.com/marcus/inlinefields/internal/keymap"
	"github.com/marcus/inlinefields/internal/pageindex"
	"github.com/marcus/inlinefields/internal/plugin"
	"github.com/marcus/inlinefields/internal/plugins/notes"
	"github.com/marcus/inlinefields/internal/state"
	"github.com/marcus/inlinefields/internal/styles"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	vaultRoot    = flag.String("vault", "", "vault root directory (overrides config)")
	positionFlag = flag.String("position", "", "checkbox position: left, right, replace or none")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	logPath      = flag.String("log", "", "write logs to this file instead of stderr")
	versionFlag  = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("inlinefields version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logger, closeLog, err := setupLogger(*logPath, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfgFile := *configPath
	if cfgFile == "" {
		cfgFile = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) > 0 && isSettingsCommand(args[0]) {
		if err := runSettings(os.Stdout, cfgFile, cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := applyFlags(cfg, *vaultRoot, *positionFlag); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Load persistent state (ignore errors - state is optional)
	_ = state.Init()

	var note string
	if len(args) > 0 {
		note = args[0]
	} else {
		note = state.GetLastNote()
	}
	if note == "" {
		usage()
		os.Exit(2)
	}
	rel, err := vaultRelative(cfg.Vault.Root, note)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	styles.ApplyThemeWithOverrides(cfg.UI.Theme, cfg.UI.Colors)

	idx, err := pageindex.Open(cfg.Vault.Root, cfg.IndexPath(), logger)
	if err != nil {
		logger.Warn("page index unavailable, autocomplete disabled", "err", err)
		idx = nil
	}
	if idx != nil {
		defer idx.Close()
	}

	km := keymap.NewRegistry()
	if unknown := km.ApplyOverrides(cfg.Keymap.Overrides); len(unknown) > 0 {
		logger.Warn("keymap overrides name unknown commands", "commands", strings.Join(unknown, ","))
	}

	workDir, _ := os.Getwd()
	pluginCtx := &plugin.Context{
		WorkDir:    workDir,
		ConfigPath: cfgFile,
		Config:     cfg,
		Keymap:     km,
		Logger:     logger,
	}
	registry := plugin.NewRegistry(pluginCtx)
	if err := registry.Register(notes.New(rel, idx)); err != nil {
		logger.Error("notes plugin failed to start", "err", err)
	}

	model := app.New(registry, km, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage:\n")
	fmt.Fprintf(out, "  inlinefields [flags] [note.md]\n")
	fmt.Fprintf(out, "  inlinefields [flags] fields list|add <field> <folder>|rm <field>\n")
	fmt.Fprintf(out, "  inlinefields [flags] position left|right|replace|none\n\n")
	fmt.Fprintf(out, "Flags:\n")
	flag.PrintDefaults()
}

// setupLogger logs to path when given, otherwise to stderr.
func setupLogger(path string, debugLevel bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debugLevel {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

// applyFlags layers command-line overrides on the loaded config.
func applyFlags(cfg *config.Config, vault, position string) error {
	if vault != "" {
		cfg.Vault.Root = config.ExpandPath(vault)
	}
	if position != "" {
		mode, ok := decoration.ParseMode(position)
		if !ok {
			return fmt.Errorf("unknown checkbox position %q", position)
		}
		cfg.Checkbox.Position = mode
	}
	return nil
}

// vaultRelative turns a note argument into a path relative to the vault.
// Absolute paths must lie inside the vault; relative ones are taken as
// already relative to it.
func vaultRelative(root, note string) (string, error) {
	note = config.ExpandPath(note)
	if !filepath.IsAbs(note) {
		return filepath.ToSlash(filepath.Clean(note)), nil
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve vault root: %w", err)
	}
	rel, err := filepath.Rel(absRoot, note)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("note %s is outside the vault %s", note, absRoot)
	}
	return filepath.ToSlash(rel), nil
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if dirty {
		revision += "-dirty"
	}
	return "devel+" + revision
}
