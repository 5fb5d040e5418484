package manifest

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/padbridge/padbridge-go/pkg/input"
)

// GeneratedHeader starts every generated file.
const GeneratedHeader = "// Code generated by padbridge-gen. DO NOT EDIT."

// Generation errors.
var (
	ErrInvalidTypeName = errors.New("type name must be <package>.<Type>")
	ErrNameCollision   = errors.New("generated identifier collision")
	ErrKindConflict    = errors.New("action declared with different kinds")
)

type layoutData struct {
	Header   string
	Package  string
	Type     string
	Product  string
	Sets     []setData
	Controls []controlData
}

type setData struct {
	Name  string
	Field string
}

type controlData struct {
	Name        string
	Field       string
	HandleField string
	Kind        input.ControlKind
}

func (c controlData) KindConst() string {
	return "input.Kind" + c.Kind.String()
}

func (c controlData) ControlType() string {
	return c.Kind.String() + "Control"
}

func (c controlData) Digital() bool {
	return c.Kind == input.KindButton
}

// Read returns the expression that samples the action for handle h.
func (c controlData) Read() string {
	switch c.Kind {
	case input.KindButton:
		return fmt.Sprintf("api.DigitalActionData(h, l.%s).Pressed", c.HandleField)
	case input.KindAxis:
		return fmt.Sprintf("api.AnalogActionData(h, l.%s).Position.X", c.HandleField)
	default:
		return fmt.Sprintf("api.AnalogActionData(h, l.%s).Position", c.HandleField)
	}
}

const layoutTmpl = `{{.Header}}

package {{.Package}}

import (
	"github.com/padbridge/padbridge-go/pkg/controller"
	"github.com/padbridge/padbridge-go/pkg/gateway"
	"github.com/padbridge/padbridge-go/pkg/handle"
	"github.com/padbridge/padbridge-go/pkg/input"
)

// Product is the controller product {{.Type}} is registered for.
const Product = {{quote .Product}}

// {{.Type}} is a controller layout generated from an action manifest.
type {{.Type}} struct {
{{- range .Controls}}
	{{.Field}} *input.{{.ControlType}}
{{- end}}
{{range .Sets}}
	{{.Field}} handle.ActionSetHandle
{{- end}}
{{range .Controls}}
	{{.HandleField}} handle.ActionHandle
{{- end}}
}

// New{{.Type}} returns an unresolved layout.
func New{{.Type}}() controller.Layout {
	return &{{.Type}}{}
}

// Register adds the layout to reg for {{.Product}} controllers.
func Register(reg *controller.Registry) error {
	return reg.Register(controller.Matcher{Interface: controller.InterfaceName, Product: Product}, New{{.Type}})
}

// Controls implements controller.Layout.
func (l *{{.Type}}) Controls() []input.ControlSpec {
	return []input.ControlSpec{
{{- range .Controls}}
		{Name: {{quote .Name}}, Kind: {{.KindConst}}},
{{- end}}
	}
}

// FinishSetup implements controller.Layout.
func (l *{{.Type}}) FinishSetup(d *controller.Device) error {
{{- if .Controls}}
	var err error
{{- end}}
{{- range .Controls}}
	if l.{{.Field}}, err = input.GetControl[*input.{{.ControlType}}](d.Input(), {{quote .Name}}); err != nil {
		return err
	}
{{- end}}
	return nil
}

// ResolveActions implements controller.Layout.
func (l *{{.Type}}) ResolveActions(r *controller.Resolver) {
{{- range .Sets}}
	l.{{.Field}} = r.ActionSet({{quote .Name}})
{{- end}}
{{- range .Controls}}
{{- if .Digital}}
	l.{{.HandleField}} = r.DigitalAction({{quote .Name}})
{{- else}}
	l.{{.HandleField}} = r.AnalogAction({{quote .Name}})
{{- end}}
{{- end}}
}

// Update implements controller.Layout.
func (l *{{.Type}}) Update(d *controller.Device, api gateway.Gateway) {
{{- if .Controls}}
	h := d.Handle()
	// QueueState logs its own failures.
	_ = d.QueueState(map[string]any{
{{- range .Controls}}
		{{quote .Name}}: {{.Read}},
{{- end}}
	})
{{- end}}
}
`

var layoutTemplate = template.Must(template.New("layout").Funcs(template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}).Parse(layoutTmpl))

// Generate returns Go source for a controller layout covering every set and
// action of tree. typeName is "<package>.<Type>"; the type name doubles as
// the product the layout registers for.
func Generate(tree *Node, typeName string) (string, error) {
	pkg, typ, ok := strings.Cut(typeName, ".")
	if !ok || !isIdent(pkg) || !isIdent(typ) || !unicode.IsUpper(rune(typ[0])) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTypeName, typeName)
	}

	sets, err := Sets(tree)
	if err != nil {
		return "", err
	}

	data := layoutData{Header: GeneratedHeader, Package: pkg, Type: typ, Product: typ}
	used := map[string]string{"Product": "constant"}
	claim := func(ident, what string) error {
		if prev, dup := used[ident]; dup {
			return fmt.Errorf("%w: %s used by %s and %s", ErrNameCollision, ident, prev, what)
		}
		used[ident] = what
		return nil
	}

	kinds := make(map[string]input.ControlKind)
	for _, s := range sets {
		sd := setData{Name: s.Name, Field: exportedName(s.Name) + "Set"}
		if err := claim(sd.Field, "set "+s.Name); err != nil {
			return "", err
		}
		data.Sets = append(data.Sets, sd)

		for _, a := range s.Actions {
			if k, seen := kinds[a.Name]; seen {
				if k != a.Kind {
					return "", fmt.Errorf("%w: %q is %s and %s", ErrKindConflict, a.Name, k, a.Kind)
				}
				continue
			}
			kinds[a.Name] = a.Kind
			cd := controlData{
				Name:        a.Name,
				Field:       exportedName(a.Name),
				HandleField: exportedName(a.Name) + "Action",
				Kind:        a.Kind,
			}
			if err := claim(cd.Field, "control "+a.Name); err != nil {
				return "", err
			}
			if err := claim(cd.HandleField, "action "+a.Name); err != nil {
				return "", err
			}
			data.Controls = append(data.Controls, cd)
		}
	}

	var b strings.Builder
	if err := layoutTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render layout: %w", err)
	}
	out, err := imports.Process(strings.ToLower(typ)+".go", []byte(b.String()), nil)
	if err != nil {
		return "", fmt.Errorf("format layout: %w", err)
	}
	return string(out), nil
}

// exportedName turns an action or set name into an exported identifier:
// "look_stick" and "look stick" become "LookStick".
func exportedName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteByte('X')
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
