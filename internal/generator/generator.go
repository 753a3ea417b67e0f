package generator

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mcncl/proptyper/internal/config"
	"github.com/mcncl/proptyper/internal/errors"
	"github.com/mcncl/proptyper/internal/models"
	"github.com/mcncl/proptyper/internal/schema"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// reservedWords cannot be declared with const in a module
var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true, "arguments": true, "eval": true,
}

// ValidIdentifier reports whether name can be used as a JavaScript binding
func ValidIdentifier(name string) bool {
	return identifierRegex.MatchString(name) && !reservedWords[name]
}

// Emitter turns an inferred schema into the contents of an output file
type Emitter interface {
	Emit(node *models.SchemaNode, name string) (string, error)
}

// NewEmitter returns the Emitter for the configured output format
func NewEmitter(cfg *config.Config) Emitter {
	if cfg.Output.Format == config.FormatJSONSchema {
		return schema.NewEmitter(cfg)
	}
	return NewGeneratorWithConfig(cfg)
}

// Generator renders schemas as prop-types declarations
type Generator struct {
	importName     string
	importPath     string
	indent         string
	header         string
	unknownAsAny   bool
	requiredFields bool
}

// NewGenerator creates a new Generator with default settings
func NewGenerator() *Generator {
	return NewGeneratorWithConfig(config.NewConfig())
}

// NewGeneratorWithConfig creates a new Generator using the render settings of cfg
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{
		importName:     cfg.Render.ImportName,
		importPath:     cfg.Render.ImportPath,
		indent:         cfg.Render.Indent,
		header:         cfg.Output.FileHeader,
		unknownAsAny:   cfg.Render.UnknownAsAny,
		requiredFields: cfg.Render.RequiredFields,
	}
}

// Emit wraps the rendered schema into a complete module that imports
// prop-types, declares the schema under name and exports it.
func (g *Generator) Emit(node *models.SchemaNode, name string) (string, error) {
	if !ValidIdentifier(name) {
		return "", errors.NewGenerateError(fmt.Sprintf("'%s' is not a valid JavaScript identifier", name), errors.ErrInvalidName)
	}

	var buf bytes.Buffer
	if g.header != "" {
		for _, line := range strings.Split(strings.TrimRight(g.header, "\n"), "\n") {
			buf.WriteString(strings.TrimRight("// "+line, " ") + "\n")
		}
		buf.WriteString("\n")
	}
	buf.WriteString(fmt.Sprintf("import %s from '%s'\n\n", g.importName, g.importPath))
	buf.WriteString(fmt.Sprintf("const %s = %s\n\n", name, g.Render(node, 0)))
	buf.WriteString(fmt.Sprintf("export default %s\n", name))
	return buf.String(), nil
}

// Render returns the prop-types expression for node. The first line carries
// no indentation; nested lines are indented for depth+1 and the closing line
// for depth.
func (g *Generator) Render(node *models.SchemaNode, depth int) string {
	if node == nil || node.IsEmpty() {
		return g.placeholder()
	}
	switch node.Kind {
	case models.PrimitiveNode:
		return g.primitive(node.Primitive)
	case models.ArrayNode:
		return fmt.Sprintf("%s.arrayOf(\n%s%s\n%s)",
			g.importName, g.pad(depth+1), g.Render(node.Elem, depth+1), g.pad(depth))
	case models.ObjectNode:
		lines := make([]string, 0, len(node.Fields))
		for _, f := range node.Fields {
			lines = append(lines, fmt.Sprintf("%s%s: %s,", g.pad(depth+1), propertyKey(f.Name), g.field(f, depth+1)))
		}
		return fmt.Sprintf("%s.shape({\n%s\n%s})", g.importName, strings.Join(lines, "\n"), g.pad(depth))
	case models.UnionNode:
		alts := make([]string, 0, len(node.Alternatives))
		for _, alt := range node.Alternatives {
			alts = append(alts, g.pad(depth+1)+g.Render(alt, depth+1))
		}
		return fmt.Sprintf("%s.oneOfType([\n%s\n%s])", g.importName, strings.Join(alts, ",\n"), g.pad(depth))
	}
	return g.placeholder()
}

func (g *Generator) field(f models.Field, depth int) string {
	rendered := g.Render(f.Schema, depth)
	if g.requiredFields && f.Required && rendered != "" {
		return rendered + ".isRequired"
	}
	return rendered
}

func (g *Generator) primitive(kind models.PrimitiveKind) string {
	switch kind {
	case models.StringType:
		return g.importName + ".string"
	case models.NumberType:
		return g.importName + ".number"
	case models.BooleanType:
		return g.importName + ".bool"
	default:
		return g.placeholder()
	}
}

// placeholder is what null, [] and {} render as: nothing, unless any is
// requested.
func (g *Generator) placeholder() string {
	if g.unknownAsAny {
		return g.importName + ".any"
	}
	return ""
}

func (g *Generator) pad(depth int) string {
	return strings.Repeat(g.indent, depth)
}

func propertyKey(name string) string {
	if identifierRegex.MatchString(name) {
		return name
	}
	// JSON string escapes are valid JavaScript string escapes
	quoted, err := json.Marshal(name)
	if err != nil {
		return `"` + name + `"`
	}
	return string(quoted)
}
