// Command docgen-inspect reports what a template package contains: its
// members, the variables its render members reference, and, given a
// manifest, how far the supplied data satisfies the declared fields.
//
// The command exits non-zero when a required manifest field is neither in
// the data nor covered by a default.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docgen/pkg/archive"
	"github.com/goliatone/go-docgen/pkg/manifest"
	"github.com/goliatone/go-docgen/pkg/pipeline"
	"github.com/goliatone/go-docgen/pkg/render"
)

func main() {
	manifestPath := flag.String("manifest", "", "manifest to check the template against")
	dataFile := flag.String("data", "", "YAML or JSON data file checked against the manifest")
	membersFlag := flag.String("members", strings.Join(pipeline.DefaultRenderMembers(), ","),
		"comma separated members scanned for template constructs")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] template.odt\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nInspect a template package: members, referenced variables, manifest coverage.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	templatePath := flag.Arg(0)

	rep, err := buildReport(templatePath, *manifestPath, *dataFile, splitList(*membersFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect %s: %v\n", templatePath, err)
		os.Exit(1)
	}
	printReport(os.Stdout, rep)
	if rep.missingRequired() > 0 {
		os.Exit(1)
	}
}

type report struct {
	Members   []archive.MemberInfo
	Variables map[string][]string
	ScanOrder []string
	Fields    []fieldStatus
}

type fieldStatus struct {
	Name     string
	Required bool
	State    string
}

func (r *report) missingRequired() int {
	n := 0
	for _, field := range r.Fields {
		if field.State == "missing" {
			n++
		}
	}
	return n
}

func buildReport(templatePath, manifestPath, dataFile string, scanMembers []string) (*report, error) {
	members, err := archive.List(templatePath)
	if err != nil {
		return nil, err
	}

	rep := &report{Members: members, Variables: map[string][]string{}, ScanOrder: scanMembers}
	for _, name := range scanMembers {
		if !hasMember(members, name) {
			continue
		}
		content, err := archive.ReadMember(templatePath, name)
		if err != nil {
			return nil, err
		}
		rep.Variables[name] = scanVariables(string(content))
	}

	if manifestPath == "" {
		return rep, nil
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	data := map[string]any{}
	if dataFile != "" {
		raw, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse data file %s: %w", dataFile, err)
		}
	}
	for _, name := range m.FieldNames() {
		field, _ := m.Field(name)
		rep.Fields = append(rep.Fields, fieldStatus{
			Name:     name,
			Required: field.Required,
			State:    fieldState(field, data),
		})
	}
	return rep, nil
}

func fieldState(field manifest.Field, data map[string]any) string {
	if value, ok := data[field.Name]; ok && value != nil {
		return "satisfied"
	}
	if field.Default != nil {
		return "defaulted"
	}
	if field.Required {
		return "missing"
	}
	return "unset"
}

var (
	exprPattern   = regexp.MustCompile(`\{\{(.*?)\}\}`)
	tagPattern    = regexp.MustCompile(`\{%(.*?)%\}`)
	identPattern  = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_]+)*`)
	forPattern    = regexp.MustCompile(`^for\s+([A-Za-z_][A-Za-z0-9_]*)(?:\s*,\s*([A-Za-z_][A-Za-z0-9_]*))?\s+in\s`)
	stringLit     = regexp.MustCompile(`"[^"]*"|'[^']*'`)
	filterPattern = regexp.MustCompile(`\|\s*[A-Za-z_][A-Za-z0-9_]*`)
)

// Keywords and engine-provided names that caller data never has to satisfy.
var skipIdents = map[string]bool{
	"for": true, "endfor": true, "in": true, "if": true, "elif": true,
	"else": true, "endif": true, "not": true, "and": true, "or": true,
	"with": true, "endwith": true, "set": true, "block": true,
	"endblock": true, "true": true, "false": true, "none": true,
	"forloop": true, "loop": true,
	"translate": true, "current_lang": true,
	render.LanguageKey: true,
}

// scanVariables extracts the identifiers a template source references in
// {{ expression }} and {% tag %} constructs. Loop-bound names, keywords,
// filters, and string literals are dropped, so the result is the set of
// names the caller's data is expected to carry.
func scanVariables(source string) []string {
	locals := map[string]bool{}
	found := map[string]bool{}

	collect := func(fragment string) {
		fragment = stringLit.ReplaceAllString(fragment, "")
		fragment = filterPattern.ReplaceAllString(fragment, " ")
		for _, ident := range identPattern.FindAllString(fragment, -1) {
			root, _, _ := strings.Cut(ident, ".")
			if skipIdents[root] || locals[root] {
				continue
			}
			found[ident] = true
		}
	}

	for _, match := range tagPattern.FindAllStringSubmatch(source, -1) {
		body := strings.TrimSpace(match[1])
		if sub := forPattern.FindStringSubmatch(body); sub != nil {
			locals[sub[1]] = true
			if sub[2] != "" {
				locals[sub[2]] = true
			}
		}
		collect(body)
	}
	for _, match := range exprPattern.FindAllStringSubmatch(source, -1) {
		collect(match[1])
	}

	if len(found) == 0 {
		return nil
	}
	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printReport(w io.Writer, rep *report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MEMBER\tSIZE\tMETHOD")
	for _, member := range rep.Members {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", member.Name, member.UncompressedSize, method(member))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Referenced variables:")
	for _, name := range rep.ScanOrder {
		vars, scanned := rep.Variables[name]
		switch {
		case !scanned:
			fmt.Fprintf(w, "  %s: not in package\n", name)
		case len(vars) == 0:
			fmt.Fprintf(w, "  %s: none\n", name)
		default:
			fmt.Fprintf(w, "  %s: %s\n", name, strings.Join(vars, ", "))
		}
	}

	if len(rep.Fields) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manifest coverage:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, field := range rep.Fields {
		requirement := "optional"
		if field.Required {
			requirement = "required"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", field.Name, requirement, field.State)
	}
	_ = tw.Flush()
}

func method(member archive.MemberInfo) string {
	if member.Compressed {
		return "deflate"
	}
	return "store"
}

func hasMember(members []archive.MemberInfo, name string) bool {
	for _, member := range members {
		if member.Name == name {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
