package commands

import (
	"github.com/bobmake/bob"
	"github.com/bobmake/bob/adapters/config"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Build the requested targets",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}

			session, err := config.Load(file)
			if err != nil {
				return err
			}

			opts, err := optionsFromFlags(cmd, args)
			if err != nil {
				return err
			}
			return bob.Run(cmd.Context(), session, opts)
		},
	}

	cmd.Flags().BoolP("always-make", "B", false, "Unconditionally build all declared targets")
	cmd.Flags().BoolP("debug", "d", false, "Print debug information")
	cmd.Flags().IntP("jobs", "j", 1, "Number of recipes to run at once")
	cmd.Flags().BoolP("silent", "s", false, "Don't echo commands")
	cmd.Flags().BoolP("keep-going", "k", false, "Keep going even if a recipe fails")
	cmd.Flags().BoolP("dry-run", "n", false, "Don't execute recipes, just print them")
	cmd.Flags().BoolP("compile-db", "c", false, "Write a compile_commands.json before building")

	return cmd
}

func optionsFromFlags(cmd *cobra.Command, args []string) (bob.Options, error) {
	opts := bob.Options{
		Targets: args,
		// Cobra already parsed the command line.
		Argv: []string{},
	}

	var err error
	if opts.AlwaysMake, err = cmd.Flags().GetBool("always-make"); err != nil {
		return opts, err
	}
	if opts.Debug, err = cmd.Flags().GetBool("debug"); err != nil {
		return opts, err
	}
	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, err
	}
	if opts.Silent, err = cmd.Flags().GetBool("silent"); err != nil {
		return opts, err
	}
	if opts.KeepGoing, err = cmd.Flags().GetBool("keep-going"); err != nil {
		return opts, err
	}
	if opts.DryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
		return opts, err
	}
	if opts.CompileDB, err = cmd.Flags().GetBool("compile-db"); err != nil {
		return opts, err
	}
	return opts, nil
}
