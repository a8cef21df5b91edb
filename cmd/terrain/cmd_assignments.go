package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/convo-terrain/internal/assignments"
	"github.com/danielpatrickdp/convo-terrain/internal/format"
	"github.com/danielpatrickdp/convo-terrain/internal/logging"
)

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Manage precomputed cluster assignments in the SQLite store",
}

var assignmentsImportCmd = &cobra.Command{
	Use:   "import <table.yaml|table.json>",
	Short: "Upsert an assignment table into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssignmentsImport,
}

var assignmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored assignments",
	Args:  cobra.NoArgs,
	RunE:  runAssignmentsList,
}

func init() {
	assignmentsCmd.AddCommand(assignmentsImportCmd)
	assignmentsCmd.AddCommand(assignmentsListCmd)
}

func openStore() (*assignments.Store, error) {
	return assignments.NewStore(cfg.Storage.Path, logging.For(logging.ComponentAssignments))
}

func runAssignmentsImport(cmd *cobra.Command, args []string) error {
	table, err := assignments.FileSource{Path: args[0]}.Load(cmd.Context())
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	importID, n, err := store.Import(cmd.Context(), table)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if _, ok := tableMode(); ok {
		_, err := fmt.Fprintf(w, "imported %d assignments (import %s)\n", n, importID)
		return err
	}
	return writeJSON(w, map[string]any{"import_id": importID, "count": n})
}

func runAssignmentsList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	m, ok := tableMode()
	if !ok {
		if list == nil {
			list = []assignments.Assignment{}
		}
		return writeJSON(w, list)
	}
	t := format.NewTable(m)
	t.Header("Conversation", "Cluster", "Label")
	for _, a := range list {
		t.Row(a.ConversationID, a.ClusterName, string(a.Label))
	}
	t.Footer("TOTAL", len(list), "")
	_, err = fmt.Fprintln(w, t.String())
	return err
}
