package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/internal/quotestore"
	"github.com/msto63/chatbot/pkg/bot"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Show what the configured modules register",
	Long: `Builds the configured modules into a fresh registry and lists the
loaded modules, commands and triggers. Features that failed to load are
listed at the end; the exit status is non-zero if there were any.`,
	Args: cobra.NoArgs,
	RunE: runModules,
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}

func runModules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("loading config", err)
		return err
	}

	logger := log.Nop()
	if verbose {
		logger = newLogger(cfg)
	}

	store := quotestore.NewMemoryStore()
	defer store.Close()

	state, loadErrs, err := buildRegistry(cfg, store, logger)
	if err != nil {
		printError("loading modules", err)
		return err
	}

	printRegistry(cmd.OutOrStdout(), state, loadErrs)
	if len(loadErrs) > 0 {
		return loadErrs
	}
	return nil
}

func printRegistry(w io.Writer, state *bot.State, loadErrs bot.LoadErrors) {
	fmt.Fprintln(w, titleStyle.Render("Module registry"))

	fmt.Fprintln(w, headingStyle.Render("Modules"))
	for _, m := range state.Modules() {
		fmt.Fprintf(w, "  %s %s\n", m.Name(), mutedStyle.Render(m.ID().String()))
	}

	fmt.Fprintln(w, headingStyle.Render("Commands"))
	for _, c := range state.Commands() {
		line := c.Name()
		if c.SyntaxText() != "" {
			line += " " + c.SyntaxText()
		}
		if c.Auth() == bot.AuthOwner {
			line += mutedStyle.Render(" (owner)")
		}
		fmt.Fprintf(w, "  %s%s %s\n", commandTagStyle.Render(c.Provider().Name()), line, mutedStyle.Render(c.Help()))
	}

	fmt.Fprintln(w, headingStyle.Render("Triggers"))
	for _, t := range state.Triggers() {
		flags := []string{t.Priority().String()}
		if t.AlwaysWatching() {
			flags = append(flags, "always watching")
		}
		fmt.Fprintf(w, "  %s%s /%s/ %s\n",
			triggerTagStyle.Render(t.Provider().Name()), t.Name(), t.Regex(), mutedStyle.Render("["+strings.Join(flags, ", ")+"]"))
	}

	if len(loadErrs) > 0 {
		fmt.Fprintln(w, headingStyle.Render("Load errors"))
		for _, e := range loadErrs {
			fmt.Fprintf(w, "  %s %v\n", errorStyle.Render("x"), e)
		}
	}
}
