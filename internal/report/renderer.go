package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an output format with no renderer
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes a report to w
type Renderer interface {
	Render(w io.Writer, rep *Report) error
}

// NewRenderer returns the renderer for format: "text", "json" or "yaml"
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return TextRenderer{}, nil
	case "json":
		return JSONRenderer{Indent: "  "}, nil
	case "yaml":
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// TextRenderer prints buys then sells, one line per signal, followed by the
// execution time
type TextRenderer struct{}

// Render implements Renderer
func (TextRenderer) Render(w io.Writer, rep *Report) error {
	var b strings.Builder

	b.WriteString("Buy Signals:\n")
	for _, e := range rep.Buys {
		writeLine(&b, "Buy", e)
	}
	b.WriteString("\nSell Signals:\n")
	for _, e := range rep.Sells {
		writeLine(&b, "Sell", e)
	}
	if len(rep.Drift) > 0 {
		b.WriteString("\nDrift Check:\n")
		for _, d := range rep.Drift {
			status := "ok"
			if d.Exceeded {
				status = "above tolerance"
			}
			fmt.Fprintf(&b, "%s window %d: max drift %g (%s)\n", d.Role, d.Window, d.MaxDrift, status)
		}
	}
	fmt.Fprintf(&b, "Execution time: %s\n", rep.Elapsed)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLine(b *strings.Builder, verb string, e Entry) {
	fmt.Fprintf(b, "%s at index %d, Price: %s", verb, e.Position, e.Price.StringFixed(2))
	if e.Label != "" {
		fmt.Fprintf(b, " (%s)", e.Label)
	}
	b.WriteString("\n")
}

// JSONRenderer writes the report as a JSON document
type JSONRenderer struct {
	Indent string
}

// Render implements Renderer
func (r JSONRenderer) Render(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", r.Indent)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// YAMLRenderer writes the report as a YAML document
type YAMLRenderer struct{}

// Render implements Renderer
func (YAMLRenderer) Render(w io.Writer, rep *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
