package export

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/insightloom-cli/internal/analysis"
	"github.com/KaramelBytes/insightloom-cli/internal/utils"
)

// Format names an output encoding for a report.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
	HTML     Format = "html"
	Text     Format = "text"
)

var formats = []Format{JSON, YAML, Markdown, HTML, Text}

// Formats lists the supported output formats.
func Formats() []Format { return append([]Format(nil), formats...) }

// ParseFormat accepts a format name or a common alias ("md", "yml", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	case "text", "txt":
		return Text, nil
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unsupported format %q (use %s)", s, strings.Join(names, "|"))
}

// Ext is the file extension used when writing reports of this format.
func (f Format) Ext() string {
	switch f {
	case Markdown:
		return "md"
	case Text:
		return "txt"
	default:
		return string(f)
	}
}

// Render encodes rep in format f.
func Render(rep *analysis.Report, f Format) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("render %s: nil report", f)
	}
	switch f {
	case JSON:
		b, err := utils.PrettyJSON(rep)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case YAML:
		b, err := yaml.Marshal(rep)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	case Markdown:
		return []byte(RenderMarkdown(rep)), nil
	case HTML:
		return RenderHTML(rep), nil
	case Text:
		return []byte(RenderText(rep)), nil
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}
