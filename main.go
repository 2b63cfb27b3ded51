package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mainframe/app"
	"mainframe/config"
	"mainframe/render"
)

var (
	printMode  bool
	noIntro    bool
	initConfig bool
	width      int
)

var rootCmd = &cobra.Command{
	Use:   "mainframe [site]",
	Short: "manni-dm.dev in the terminal",
	Long: `mainframe shows the manni-dm.dev site in the terminal: a boot-up
intro, the blog and links card grids and inline articles.

The optional site argument is a URL or a local directory holding
blog.json, links.json and the article fragments.

Configuration:
  Config file: ~/.config/mainframe/config.toml
  Generate with: mainframe --init-config > ~/.config/mainframe/config.toml`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().BoolVarP(&printMode, "print", "p", false, "print the blog cards to stdout and exit")
	rootCmd.Flags().BoolVar(&noIntro, "no-intro", false, "skip the boot-up intro")
	rootCmd.Flags().BoolVar(&initConfig, "init-config", false, "output the default config")
	rootCmd.Flags().IntVar(&width, "width", 80, "output width for --print when not in a terminal")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Generate default config and exit
	if initConfig {
		fmt.Print(config.DefaultTOML())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if len(args) == 1 {
		cfg.Site.Base = args[0]
	}

	log := zap.NewNop()
	if path, err := cfg.LogPath(); err == nil {
		if l, err := app.NewLogger(path, cfg.Logging.Level); err == nil {
			log = l
		} else {
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}
	}
	defer log.Sync()

	interactive := !printMode && render.IsTerminal(os.Stdin) && render.IsTerminal(os.Stdout)

	a, err := app.New(cfg, log, app.Options{Intro: interactive && !noIntro})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !interactive {
		w := width
		if tw, _, err := render.TerminalSize(); err == nil {
			w = tw
		}
		return a.Print(ctx, os.Stdout, w)
	}

	log.Info("starting", zap.String("site", cfg.Site.Base))
	return a.Run(ctx, os.Stdin, os.Stdout)
}
