// Package main generates a single markdown file documenting every sitedeploy command.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/runvoy/sitedeploy/cmd/cli/cmd"
	"github.com/runvoy/sitedeploy/internal/constants"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const (
	docsDirPermissions  = 0o750
	docsFilePermissions = 0o644
)

func main() {
	var outFile string
	flag.StringVar(&outFile, "out", "./docs/CLI.md", "output file for generated markdown")
	flag.Parse()

	if outFile == "" {
		log.Fatal("error: output file is required")
	}

	if err := os.MkdirAll(filepath.Dir(outFile), docsDirPermissions); err != nil {
		log.Fatalf("error: creating output directory: %s", err)
	}

	var buf bytes.Buffer
	if err := render(&buf, cmd.RootCmd()); err != nil {
		log.Fatalf("error: %s", err)
	}

	if err := os.WriteFile(filepath.Clean(outFile), buf.Bytes(), docsFilePermissions); err != nil {
		log.Fatalf("error: writing %s: %s", outFile, err)
	}

	log.Printf("generated CLI documentation in %s", outFile)
}

// render writes the title and one section per available command, depth first in name order.
func render(w io.Writer, root *cobra.Command) error {
	root.DisableAutoGenTag = true

	if _, err := fmt.Fprintf(w, "# %s CLI\n\nAll commands with their flags and examples.\n\n", constants.ProjectName); err != nil {
		return err
	}
	return renderCommand(w, root, 2)
}

func renderCommand(w io.Writer, c *cobra.Command, level int) error {
	if !c.IsAvailableCommand() && c.HasParent() {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s %s\n\n", strings.Repeat("#", level), c.CommandPath()); err != nil {
		return err
	}
	if c.Short != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", c.Short); err != nil {
			return err
		}
	}
	if c.Long != "" && c.Long != c.Short {
		if _, err := fmt.Fprintf(w, "%s\n\n", c.Long); err != nil {
			return err
		}
	}
	if c.Example != "" {
		if _, err := fmt.Fprintf(w, "**Examples:**\n\n```bash\n%s\n```\n\n", c.Example); err != nil {
			return err
		}
	}

	var generated bytes.Buffer
	if err := doc.GenMarkdown(c, &generated); err != nil {
		return fmt.Errorf("generating markdown for %s: %w", c.CommandPath(), err)
	}
	if options := optionsSection(generated.String()); options != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", options); err != nil {
			return err
		}
	}

	children := slices.Clone(c.Commands())
	slices.SortFunc(children, func(a, b *cobra.Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	for _, child := range children {
		if err := renderCommand(w, child, level+1); err != nil {
			return err
		}
	}

	return nil
}

// optionsSection extracts the "### Options" block (both local and inherited flags) from
// cobra's generated markdown, dropping the "SEE ALSO" links.
func optionsSection(markdown string) string {
	start := strings.Index(markdown, "### Options")
	if start < 0 {
		return ""
	}
	section := markdown[start:]
	if end := strings.Index(section, "### SEE ALSO"); end > 0 {
		section = section[:end]
	}
	return strings.TrimSpace(section)
}
