package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/classgen/hierarchy"
)

var (
	listLimit    int
	listFullOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List legal hierarchies",
	Long: `List the hierarchies generate would write, in the same order, without
writing any program.

Hierarchies are numbered from 1 in search order. Without random overrides
this is also the program number generate uses. With --override random,
hierarchy K is written as programs (K-1)*V+1 through K*V, where V is
--variants.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "limit number of hierarchies shown (0 = unlimited)")
	listCmd.Flags().BoolVar(&listFullOnly, "full", false, "only show hierarchies with every class present")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%-6s %-8s %-28s %s\n", "ID", "CLASSES", "KEYS", "HIERARCHY")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 80))

	id := 0
	shown := 0
	for h := range hierarchy.All(cfg.SearchOptions()) {
		id++
		if listFullOnly && !h.Full() {
			continue
		}
		fmt.Fprintf(output, "%-6d %-8d %-28s %s\n", id, h.Len(), formatKeys(h.OrderKeys()), h)
		shown++
		if listLimit > 0 && shown >= listLimit {
			break
		}
	}

	fmt.Fprintf(output, "\nTotal: %d hierarchies shown\n", shown)
	return nil
}

func formatKeys(keys []uint64) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d", k)
	}
	return strings.Join(parts, ",")
}
