package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/classgen/hierarchy"
)

var (
	dumpFormat string
	dumpLimit  int
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump legal hierarchies with ancestry and cast chains",
	Long: `Dump every legal hierarchy in structured format, including each
class's direct bases, ancestor sets, unambiguous ancestors and the cast
chains the generated program uses.

Supported formats:
  - text: Human-readable text (default)
  - json: JSON format`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
	dumpCmd.Flags().IntVarP(&dumpLimit, "limit", "n", 0, "limit number of hierarchies dumped (0 = unlimited)")
}

type HierarchyDump struct {
	ID      int         `json:"id"`
	Shape   string      `json:"shape"`
	Classes []ClassDump `json:"classes"`
}

type ClassDump struct {
	Index               int        `json:"index"`
	Parents             []string   `json:"parents"`
	OrderKey            uint64     `json:"order_key"`
	NonVirtualAncestors []int      `json:"non_virtual_ancestors"`
	VirtualAncestors    []int      `json:"virtual_ancestors"`
	Unambiguous         []int      `json:"unambiguous_ancestors"`
	CastChains          []CastDump `json:"cast_chains,omitempty"`
}

type CastDump struct {
	Ancestor int      `json:"ancestor"`
	Chains   []string `json:"chains"`
}

func runDump(cmd *cobra.Command, args []string) error {
	if dumpFormat != "json" && dumpFormat != "text" {
		return fmt.Errorf("unknown format: %s", dumpFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var dumps []HierarchyDump
	id := 0
	for h := range hierarchy.All(cfg.SearchOptions()) {
		id++
		d, err := buildDump(h, id)
		if err != nil {
			return err
		}
		dumps = append(dumps, d)
		if dumpLimit > 0 && len(dumps) >= dumpLimit {
			break
		}
	}

	if dumpFormat == "json" {
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return enc.Encode(dumps)
	}
	dumpText(dumps)
	return nil
}

func buildDump(h *hierarchy.Hierarchy, id int) (HierarchyDump, error) {
	d := HierarchyDump{ID: id, Shape: h.String()}
	n := h.N()
	for i, c := range h.Classes() {
		cd := ClassDump{
			Index:               i,
			Parents:             []string{},
			OrderKey:            c.OrderKey(),
			NonVirtualAncestors: c.NonVirtualAncestors(),
			VirtualAncestors:    c.VirtualAncestors(),
			Unambiguous:         h.UnambiguousAncestors(i),
		}
		for _, p := range c.Parents() {
			cd.Parents = append(cd.Parents, p.Format(n))
		}
		for _, a := range cd.Unambiguous {
			chains, err := h.CastChains(i, a)
			if err != nil {
				return d, fmt.Errorf("failed to build cast chains for c%d: %w", i, err)
			}
			cd.CastChains = append(cd.CastChains, CastDump{Ancestor: a, Chains: chains})
		}
		d.Classes = append(d.Classes, cd)
	}
	return d, nil
}

func dumpText(dumps []HierarchyDump) {
	for _, d := range dumps {
		fmt.Fprintf(output, "=== Hierarchy %d ===\n", d.ID)
		fmt.Fprintf(output, "%s\n", d.Shape)
		for _, c := range d.Classes {
			fmt.Fprintf(output, "  c%d (key %d)\n", c.Index, c.OrderKey)
			if len(c.Parents) > 0 {
				fmt.Fprintf(output, "    bases:       %v\n", c.Parents)
			}
			fmt.Fprintf(output, "    non-virtual: %v\n", c.NonVirtualAncestors)
			fmt.Fprintf(output, "    virtual:     %v\n", c.VirtualAncestors)
			for _, cast := range c.CastChains {
				for _, chain := range cast.Chains {
					fmt.Fprintf(output, "    c%d via %s\n", cast.Ancestor, chain)
				}
			}
		}
		fmt.Fprintln(output)
	}
}
