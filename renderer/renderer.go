package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
)

// Templates are assemblies, like portfolio.md, made of partials named after
// them, like portfolio_title.md. A partial is invoked by its file name
// without extension: {{template "portfolio_title" .}}.
//
//go:embed *.md
var templates embed.FS

// Markdown renders the report valued on day as a markdown document.
func Markdown(report *holdings.Report, day date.Date) string {
	return RenderPortfolio(NewPortfolio(report, day))
}

// RenderPortfolio renders the Portfolio struct to a markdown string.
func RenderPortfolio(p *Portfolio) string {
	return renderTemplate("portfolio", p)
}

// renderTemplate executes an assembly. Failures are rendered in place of the document.
func renderTemplate(assembly string, data any) string {
	tmpl, err := parseAssembly(assembly)
	if err != nil {
		return err.Error()
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", assembly, err)
	}
	return b.String()
}

// parseAssembly parses assembly.md with all its partials.
func parseAssembly(assembly string) (*template.Template, error) {
	main, err := fs.ReadFile(templates, assembly+".md")
	if err != nil {
		return nil, fmt.Errorf("error reading template %q: %w", assembly, err)
	}
	tmpl, err := template.New(assembly).Parse(string(main))
	if err != nil {
		return nil, fmt.Errorf("error parsing template %q: %w", assembly, err)
	}

	partials, err := partialFiles(assembly)
	if err != nil {
		return nil, err
	}
	for _, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return nil, fmt.Errorf("error reading partial %q: %w", file, err)
		}
		if _, err := tmpl.New(strings.TrimSuffix(file, ".md")).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("error parsing partial %q: %w", file, err)
		}
	}
	return tmpl, nil
}

// partialFiles lists the partial files of assembly, sorted.
func partialFiles(assembly string) ([]string, error) {
	return fs.Glob(templates, assembly+"_*.md")
}
