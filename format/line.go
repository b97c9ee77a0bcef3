package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javagen/java"
)

// LineEncoder writes one tab-separated line per declaration, for grepping
// and diffing generated models.
type LineEncoder struct {
	w    io.Writer
	unit *java.CompilationUnit
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(unit *java.CompilationUnit) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	if e.unit == nil {
		return nil, errors.New("no compilation unit to encode")
	}
	var sb strings.Builder
	u := e.unit

	for _, t := range u.Types {
		name := t.Name
		if u.Package != "" {
			name = u.Package + "." + t.Name
		}
		fmt.Fprintf(&sb, "class\t%s\t%s\t%s\n", name, t.Modifiers.Render(java.KindType), t.Extends)

		for _, f := range t.Fields {
			fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n",
				f.Name,
				f.Type,
				f.Modifiers.Render(java.KindField),
			)
		}

		for _, m := range t.Methods {
			fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\n",
				m.Name,
				m.ReturnType,
				parametersStr(m.Parameters),
				m.Modifiers.Render(java.KindMethod),
			)
		}
	}

	return []byte(sb.String()), nil
}

func parametersStr(params []*java.MethodParameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
