package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/blackwell-systems/pagectl/internal/api"
	"github.com/blackwell-systems/pagectl/internal/config"
	"github.com/blackwell-systems/pagectl/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	client *api.Client
	logger *zap.Logger

	flagNoColor bool
	flagVerbose bool
	flagConfig  string
)

var appVersion = "dev"

// SetVersion records the build version reported by `pagectl version`.
func SetVersion(v string) {
	appVersion = v
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pagectl",
		Short: "Edit the pages of a document on a document server",
		Long: `pagectl edits paginated documents stored on a document server.

Select pages, move them, cut and paste them between documents, delete
them, and apply a new page order. Run 'pagectl edit <doc-id>' for the
interactive editor, or use the single-action commands in scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/pagectl/config.yml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		if flagConfig != "" {
			cfg, err = config.LoadFile(flagConfig)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// The editor owns the screen; its log only goes to log.file.
		fallback := "stderr"
		if cmd.Name() == "edit" {
			fallback = ""
		}
		logger, err = util.NewLogger(util.LogOptions{
			Level:    cfg.Log.Level,
			File:     cfg.Log.File,
			Verbose:  flagVerbose,
			Fallback: fallback,
		})
		if err != nil {
			return err
		}

		if cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}
		client, err = api.New(api.Options{
			BaseURL:       cfg.Server.BaseURL,
			Timeout:       cfg.Server.Timeout,
			Retries:       cfg.Server.Retries,
			CSRFCookie:    cfg.Server.CSRFCookie,
			CSRFHeader:    cfg.Server.CSRFHeader,
			SessionCookie: cfg.Server.SessionCookie,
			Session:       cfg.Server.Session,
			CSRFToken:     cfg.Server.CSRFToken,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}
		if !cfg.Server.Authenticated() {
			logger.Debug("no session cookie configured", zap.String("env", cfg.Server.SessionEnv))
		}
		return nil
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	}

	root.AddCommand(
		newEditCmd(),
		newPagesCmd(),
		newDeleteCmd(),
		newCutCmd(),
		newPasteCmd(),
		newReorderCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		stop()
		os.Exit(1)
	}
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
