package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todotxt/internal/ui"
)

// -------------- subcommand impls ----------------

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [message...]",
		Short: "Add a new item (message may be several words, or -M)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.store.Add(a.messageParam(args))
			if err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, "Added to your TODO list: "+rec.Text)
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [index]",
		Short: "Remove the item with the given index (or -I)",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, raw, err := a.indexParam(args)
			if err != nil {
				return err
			}
			if err := a.store.Remove(n); err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, "Removed from your TODO list: "+raw)
			return nil
		},
	}
}

func (a *app) doneCmd() *cobra.Command {
	return a.setDoneCmd("done", "Mark the item with the given index as done", true,
		"Checked off item from your TODO list: ")
}

func (a *app) undoneCmd() *cobra.Command {
	return a.setDoneCmd("undone", "Mark the item with the given index as not done", false,
		"Unchecked item from your TODO list: ")
}

func (a *app) setDoneCmd(name, short string, done bool, okMsg string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [index]",
		Short: short + " (or -I)",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, raw, err := a.indexParam(args)
			if err != nil {
				return err
			}
			if err := a.store.SetDone(n, done); err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, okMsg+raw)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var panel, group bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the list",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if panel {
				return a.listPanel(group)
			}
			out, err := a.store.Render()
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(a.opt.Stdout, "Nothing was found in your TODO list! 😊")
				return nil
			}
			fmt.Fprintln(a.opt.Stdout, "TODO list:\n"+ui.Text(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&panel, "panel", false, "draw a framed view with counts and progress")
	cmd.Flags().BoolVar(&group, "group", false, "with --panel, group output by pending/done")
	return cmd
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, "Your TODO list has been cleared!")
			return nil
		},
	}
}

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and edit the list interactively",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.opt.Browse(a.store)
		},
	}
}
