package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage save slots",
	Long: `List, browse and delete the snapshots written with ctrl+s.

Examples:
  tilequest saves list
  tilequest saves browse
  tilequest saves delete quicksave`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSavesList,
}

var savesBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse save slots interactively",
	Args:  cobra.NoArgs,
	RunE:  runSavesBrowse,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete every snapshot of a slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesBrowseCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSavesList(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListSnapshots()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No saves yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Press ctrl+s while playing to save.")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-16s  %-4s  %-8s  %-16s  %s\n", "Slot", "Map", "Size", "Saved", "ID")
	fmt.Fprintf(out, "  %-16s  %-4s  %-8s  %-16s  %s\n", "----", "---", "----", "-----", "--")

	for _, e := range entries {
		fmt.Fprintf(out, "  %-16s  %-4d  %-8s  %-16s  %s\n",
			e.Name, e.MapIndex, fmt.Sprintf("%d B", e.Size), e.CreatedAt.Format("2006-01-02 15:04"), e.ID)
	}
	return nil
}

func runSavesBrowse(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunSaves(store, width, height)
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.DeleteSnapshots(args[0])
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no snapshots in slot %q", args[0])
	}
	stderrLogger().Info("deleted snapshots", "slot", args[0], "count", n)
	return nil
}
