package formula

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/fatih/camelcase"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/openkeg/openkeg/internal/domain"
)

// definition is the on-disk shape of a formula definition.
type definition struct {
	Name          string      `yaml:"name"            validate:"required_without=Class,omitempty,formula_name"`
	Class         string      `yaml:"class"           validate:"required_without=Name,omitempty,alphanum"`
	FullName      string      `yaml:"full_name"`
	Version       string      `yaml:"version"         validate:"required,excludes=/"`
	KegOnly       bool        `yaml:"keg_only"`
	KegOnlyReason string      `yaml:"keg_only_reason"`
	Requirements  []string    `yaml:"requirements"    validate:"dive,required"`
	Dependencies  []string    `yaml:"dependencies"    validate:"dive,required"`
	Options       []string    `yaml:"options"         validate:"dive,required"`
	Service       *serviceDef `yaml:"service"`
	Caveats       string      `yaml:"caveats"`
}

type serviceDef struct {
	Plist   string `yaml:"plist"`
	Startup bool   `yaml:"startup"`
	Manual  string `yaml:"manual"`
}

var formulaNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9@+._-]*$`)

// YAMLLoader implements domain.FormulaLoader for YAML formula definitions.
type YAMLLoader struct {
	validate *validator.Validate
}

func New() *YAMLLoader {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("formula_name", func(fl validator.FieldLevel) bool {
		return formulaNamePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("registering formula_name validation: %v", err))
	}
	return &YAMLLoader{validate: v}
}

// Load reads the definition at path and lays the formula out under layout.
func (l *YAMLLoader) Load(path string, layout domain.Layout) (*domain.Formula, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading formula: %w", err)
	}

	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := l.validate.Struct(def); err != nil {
		return nil, fmt.Errorf("invalid formula %s: %w", path, err)
	}

	name := def.Name
	if name == "" {
		name = NameFromClass(def.Class)
	}

	f := &domain.Formula{
		Name:          name,
		FullName:      def.FullName,
		Version:       def.Version,
		KegOnly:       def.KegOnly,
		KegOnlyReason: strings.TrimSpace(def.KegOnlyReason),
		Requirements:  def.Requirements,
		Dependencies:  def.Dependencies,
		Options:       def.Options,
		Build:         domain.BuildOptions{Unused: def.Options},
		Layout:        layout,
	}
	if def.Service != nil {
		f.Service = &domain.ServiceDescriptor{
			Plist:   def.Service.Plist,
			Startup: def.Service.Startup,
			Manual:  strings.TrimSpace(def.Service.Manual),
		}
	}

	if strings.TrimSpace(def.Caveats) != "" {
		tmpl, err := template.New(name).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			Parse(def.Caveats)
		if err != nil {
			return nil, fmt.Errorf("parsing caveats of %s: %w", name, err)
		}
		f.CaveatsFunc = func(f *domain.Formula) (string, error) {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, f); err != nil {
				return "", fmt.Errorf("executing caveats template: %w", err)
			}
			return buf.String(), nil
		}
	}

	return f, nil
}

// NameFromClass turns a formula class name back into the formula name:
// words are lowercased and joined with dashes, digits stick to the word
// before them and "AT" before a number becomes "@" (PostgresqlAT14 is
// postgresql@14).
func NameFromClass(class string) string {
	words := camelcase.Split(class)
	var b strings.Builder
	for i, w := range words {
		switch {
		case w == "AT" && i+1 < len(words) && isDigits(words[i+1]):
			b.WriteString("@")
		case isDigits(w):
			b.WriteString(w)
		default:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "@") {
				b.WriteString("-")
			}
			b.WriteString(strings.ToLower(w))
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
