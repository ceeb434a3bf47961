// Package patterns implements C6, the exchange pattern engine: named
// acceptance templates (regex-like, with escaped placeholder substitution)
// and TX templates (literal substitution with whitespace normalization).
//
// Grounded on config.go's YAML-backed settings idiom (nested structs with
// yaml tags, a Load/Reload pair that falls back to defaults on any error)
// generalized from a flat settings document to the patterns document of
// spec.md §6.
package patterns

import (
	"log"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the parsed exchange-patterns file: S0/S2/S5 each map a key to
// one or more regex-like acceptance templates, and TX maps a template name
// to a literal-substitution template string.
type Document struct {
	S0 map[string][]string `yaml:"s0"`
	S2 map[string][]string `yaml:"s2"`
	S5 map[string][]string `yaml:"s5"`
	TX map[string]string   `yaml:"tx"`
}

type fileShape struct {
	Patterns rawDocument `yaml:"patterns"`
}

// rawDocument accepts either a single string or a list of strings per key,
// since spec.md §6 allows "a pattern or list of patterns".
type rawDocument struct {
	S0 map[string]stringList `yaml:"s0"`
	S2 map[string]stringList `yaml:"s2"`
	S5 map[string]stringList `yaml:"s5"`
	TX map[string]string     `yaml:"tx"`
}

type stringList []string

func (s *stringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var one string
		if err := value.Decode(&one); err != nil {
			return err
		}
		*s = []string{one}
		return nil
	}
	var many []string
	if err := value.Decode(&many); err != nil {
		return err
	}
	*s = many
	return nil
}

// Engine holds the active pattern document, already merged over defaults.
type Engine struct {
	doc Document
}

// Default returns the engine seeded from built-in defaults only.
func Default() *Engine {
	return &Engine{doc: cloneDocument(defaults)}
}

// Load reads a patterns file and merges it over the built-in defaults.
// Any parse error, or a missing file, falls back entirely to defaults with
// a logged warning, per spec.md §6's "fall back to built-in defaults
// silently with a warning".
func Load(path string) *Engine {
	e := Default()
	if path == "" {
		return e
	}
	if err := e.Reload(path); err != nil {
		log.Printf("[Patterns] using defaults: %v", err)
	}
	return e
}

// Reload re-reads path and merges it over the built-in defaults, replacing
// the engine's active document. Keys absent from the file keep their
// default value.
func (e *Engine) Reload(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fs fileShape
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return err
	}

	merged := cloneDocument(defaults)
	mergeLists(merged.S0, fs.Patterns.S0)
	mergeLists(merged.S2, fs.Patterns.S2)
	mergeLists(merged.S5, fs.Patterns.S5)
	for k, v := range fs.Patterns.TX {
		merged.TX[k] = v
	}
	e.doc = merged
	return nil
}

func mergeLists(dst map[string][]string, src map[string]stringList) {
	for k, v := range src {
		if len(v) > 0 {
			dst[k] = []string(v)
		}
	}
}

func cloneDocument(d Document) Document {
	c := Document{
		S0: make(map[string][]string, len(d.S0)),
		S2: make(map[string][]string, len(d.S2)),
		S5: make(map[string][]string, len(d.S5)),
		TX: make(map[string]string, len(d.TX)),
	}
	for k, v := range d.S0 {
		c.S0[k] = append([]string(nil), v...)
	}
	for k, v := range d.S2 {
		c.S2[k] = append([]string(nil), v...)
	}
	for k, v := range d.S5 {
		c.S5[k] = append([]string(nil), v...)
	}
	for k, v := range d.TX {
		c.TX[k] = v
	}
	return c
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// renderAcceptance substitutes {NAME} placeholders in template with the
// regex-escaped value from values, leaving the rest of the template as
// literal regex metacharacters, per spec.md §4.6.
func renderAcceptance(template string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := values[name]; ok {
			return regexp.QuoteMeta(v)
		}
		return m
	})
}

// CompileAcceptance renders and compiles an acceptance template. If it
// fails to compile, the caller should fall back to a default; this
// function only reports the error, per spec.md §7's "invalid regex in user
// patterns: skipped with a warning".
func CompileAcceptance(template string, values map[string]string) (*regexp.Regexp, error) {
	rendered := "^(?:" + renderAcceptance(template, values) + ")$"
	re, err := regexp.Compile(rendered)
	if err != nil {
		log.Printf("[Patterns] invalid acceptance pattern %q: %v", template, err)
		return nil, err
	}
	return re, nil
}

// RenderTX substitutes {NAME} placeholders literally and collapses runs of
// spaces, per spec.md §4.6.
func RenderTX(template string, values map[string]string) string {
	rendered := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := values[name]; ok {
			return v
		}
		return m
	})
	return strings.Join(strings.Fields(rendered), " ")
}

// AcceptAny reports whether any template in the list, once rendered and
// compiled, matches the subject in full. Templates are tried in order;
// one that fails to compile is skipped.
func (e *Engine) AcceptAny(templates []string, values map[string]string, subject string) bool {
	for _, tmpl := range templates {
		re, err := CompileAcceptance(tmpl, values)
		if err != nil {
			continue
		}
		if re.MatchString(subject) {
			return true
		}
	}
	return false
}

func (e *Engine) S0(key string) []string { return e.doc.S0[key] }
func (e *Engine) S2(key string) []string { return e.doc.S2[key] }
func (e *Engine) S5(key string) []string { return e.doc.S5[key] }
func (e *Engine) TX(key string) string   { return e.doc.TX[key] }
