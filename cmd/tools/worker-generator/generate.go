package main

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"numerology-workers/pkg/registry"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// files maps each generated file to the template that renders it.
var files = []struct {
	name     string
	template string
}{
	{"config.go", "config.go.tmpl"},
	{"models.go", "models.go.tmpl"},
	{"schema.go", "schema.go.tmpl"},
	{"handler.go", "handler.go.tmpl"},
	{"handler_test.go", "handler_test.go.tmpl"},
}

// Field is one struct field derived from a schema property.
type Field struct {
	Name     string
	Type     string
	JSON     string
	Required bool
}

// Scaffold is the data every template renders from.
type Scaffold struct {
	Package      string
	TaskType     string
	Description  string
	TimeoutExpr  string
	InputSchema  string
	OutputSchema string
	InputFields  []Field
	OutputFields []Field
	SampleInput  string
}

// NewScaffold derives the template data for act.
func NewScaffold(act registry.Activity) (*Scaffold, error) {
	if act.TaskType == "" {
		return nil, fmt.Errorf("activity %q has no task type", act.ID)
	}

	in, err := indentSchema(act.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("input schema: %w", err)
	}
	out, err := indentSchema(act.OutputSchema)
	if err != nil {
		return nil, fmt.Errorf("output schema: %w", err)
	}

	return &Scaffold{
		Package:      packageName(act.TaskType),
		TaskType:     act.TaskType,
		Description:  act.Description,
		TimeoutExpr:  timeoutExpr(act.Timeout),
		InputSchema:  in,
		OutputSchema: out,
		InputFields:  fields(act.InputSchema),
		OutputFields: fields(act.OutputSchema),
		SampleInput:  sampleInput(act.InputSchema),
	}, nil
}

// Generate writes the worker package for act under root/<category>/<task type> and
// returns the paths written. Existing files are never overwritten.
func Generate(act registry.Activity, root string) ([]string, error) {
	s, err := NewScaffold(act)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(root, categoryDir(act.Category), act.TaskType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			return written, fmt.Errorf("%s already exists", path)
		}

		src, err := render(f.template, s)
		if err != nil {
			return written, fmt.Errorf("failed to render %s: %w", f.name, err)
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func render(name string, s *Scaffold) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, s); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

func packageName(taskType string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(taskType))
}

func categoryDir(category string) string {
	if category == "" {
		return "numerology"
	}
	return strings.ToLower(category)
}

func timeoutExpr(timeout string) string {
	d, err := time.ParseDuration(timeout)
	if err != nil || d <= 0 {
		return "30 * time.Second"
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	}
	return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
}

func indentSchema(schema map[string]interface{}) (string, error) {
	if schema == nil {
		schema = map[string]interface{}{"type": "object"}
	}
	b, err := json.MarshalIndent(schema, "", "\t")
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(b, '`') {
		return "", fmt.Errorf("schema contains a backtick")
	}
	return string(b), nil
}

func properties(schema map[string]interface{}) (map[string]map[string]interface{}, map[string]bool) {
	props := map[string]map[string]interface{}{}
	if raw, ok := schema["properties"].(map[string]interface{}); ok {
		for name, v := range raw {
			if p, ok := v.(map[string]interface{}); ok {
				props[name] = p
			}
		}
	}

	required := map[string]bool{}
	if raw, ok := schema["required"].([]interface{}); ok {
		for _, v := range raw {
			if name, ok := v.(string); ok {
				required[name] = true
			}
		}
	}
	return props, required
}

func sortedKeys(m map[string]map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fields(schema map[string]interface{}) []Field {
	props, required := properties(schema)
	out := make([]Field, 0, len(props))
	for _, name := range sortedKeys(props) {
		out = append(out, Field{
			Name:     fieldName(name),
			Type:     goType(props[name]["type"]),
			JSON:     name,
			Required: required[name],
		})
	}
	return out
}

func goType(jsonType interface{}) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// fieldName turns user_id, user-id and userId into UserID.
func fieldName(prop string) string {
	parts := strings.FieldsFunc(prop, func(r rune) bool { return r == '_' || r == '-' })
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	name := b.String()
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}

// sampleInput renders a Go map literal body holding a value for every required
// input property.
func sampleInput(schema map[string]interface{}) string {
	props, required := properties(schema)
	var entries []string
	for _, name := range sortedKeys(props) {
		if !required[name] {
			continue
		}
		entries = append(entries, fmt.Sprintf("%q: %s", name, sampleValue(props[name])))
	}
	return strings.Join(entries, ", ")
}

func sampleValue(prop map[string]interface{}) string {
	if enum, ok := prop["enum"].([]interface{}); ok && len(enum) > 0 {
		if b, err := json.Marshal(enum[0]); err == nil {
			return string(b)
		}
	}
	switch prop["type"] {
	case "string":
		return `"sample"`
	case "integer", "number":
		if lo, ok := prop["minimum"].(float64); ok {
			return fmt.Sprintf("%v", lo)
		}
		return "1"
	case "boolean":
		return "true"
	case "array":
		return "[]interface{}{}"
	default:
		return "map[string]interface{}{}"
	}
}
