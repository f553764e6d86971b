package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mx-llm/vuechunk/pkg/catalog"
	"github.com/mx-llm/vuechunk/pkg/extractor"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [NAME]",
	Short: "Show components from a written snapshot",
	Long: `Show one component by class name or file path, or list components with
--search (class, path, method or property names) or --emits (event name).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

var (
	inspectIn     string
	inspectJSON   bool
	inspectSearch string
	inspectEmits  string
)

func init() {
	inspectCmd.Flags().StringVar(&inspectIn, "in", "", "Snapshot file to read (default: out from config, then \"vue_chunks_ast.json\")")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the component as JSON")
	inspectCmd.Flags().StringVar(&inspectSearch, "search", "", "List components matching a keyword")
	inspectCmd.Flags().StringVar(&inspectEmits, "emits", "", "List components emitting an event")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	modes := 0
	for _, set := range []bool{len(args) == 1, inspectSearch != "", inspectEmits != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return fmt.Errorf("give exactly one of NAME, --search or --emits")
	}

	cfg, err := loadProjectConfig("")
	if err != nil {
		return err
	}
	qs, err := catalog.LoadAndQuery(resolveSnapshotPath(inspectIn, cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case inspectSearch != "":
		results := qs.ListComponents(inspectSearch)
		if len(results) == 0 {
			fmt.Fprintf(out, "No components match %q\n", inspectSearch)
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "%-24s %s  (%s)\n", displayName(r.Component), r.Component.FilePath, r.MatchReason)
		}
		return nil

	case inspectEmits != "":
		comps := qs.ComponentsEmitting(inspectEmits)
		if len(comps) == 0 {
			fmt.Fprintf(out, "No components emit %q\n", inspectEmits)
			return nil
		}
		for _, c := range comps {
			fmt.Fprintf(out, "%-24s %s\n", displayName(c), c.FilePath)
		}
		return nil
	}

	comp, ok := qs.GetComponent(args[0])
	if !ok {
		return fmt.Errorf("component %q not found in %s", args[0], qs.Catalog.Source)
	}
	if inspectJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(comp)
	}
	printComponentHuman(out, comp)
	return nil
}

func displayName(comp *extractor.ComponentDescriptor) string {
	if comp.ClassName == "" {
		return "(no class)"
	}
	return comp.ClassName
}

// printComponentHuman prints a human-readable component summary.
func printComponentHuman(w io.Writer, comp *extractor.ComponentDescriptor) {
	fmt.Fprintf(w, "%s  [%s]\n", displayName(comp), comp.FilePath)

	emits := make(map[string]bool, len(comp.Emits))
	for _, e := range comp.Emits {
		emits[e] = true
	}

	fmt.Fprintln(w)
	printNameList(w, "Methods", comp.Methods, nil)
	fmt.Fprintln(w)
	printNameList(w, "Properties", comp.Properties, emits)

	fmt.Fprintln(w)
	if strings.TrimSpace(comp.Template) == "" {
		fmt.Fprintln(w, "Template  (none)")
		return
	}
	fmt.Fprintln(w, "Template")
	fmt.Fprintln(w, "  "+strings.Repeat("─", 40))
	for _, line := range strings.Split(comp.Template, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// printNameList renders a titled list; names in marked get an "(emits)" tag.
func printNameList(w io.Writer, title string, names []string, marked map[string]bool) {
	if len(names) == 0 {
		fmt.Fprintf(w, "%s  (none)\n", title)
		return
	}

	fmt.Fprintln(w, title)
	for _, name := range names {
		if marked[name] {
			fmt.Fprintf(w, "  %s  (emits)\n", name)
			continue
		}
		fmt.Fprintf(w, "  %s\n", name)
	}
}
