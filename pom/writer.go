package pom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

const indent = "    "

// Marshal renders p as a pom.xml document with the XML declaration,
// 4-space indentation and a trailing newline. Missing namespace attributes
// are filled in.
func Marshal(p *Project) ([]byte, error) {
	out := *p
	if out.Xmlns == "" {
		out.Xmlns = Namespace
	}
	if out.XmlnsXSI == "" {
		out.XmlnsXSI = XSINamespace
	}
	if out.SchemaLocation == "" {
		out.SchemaLocation = SchemaLocation
	}
	if out.ModelVersion == "" {
		out.ModelVersion = ModelVersion
	}

	body, err := xml.MarshalIndent(&out, "", indent)
	if err != nil {
		return nil, fmt.Errorf("marshal pom: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write renders p to w.
func Write(w io.Writer, p *Project) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
