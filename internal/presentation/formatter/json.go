package formatter

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
)

// JSONFormatter renders the structured report document.
type JSONFormatter struct{}

// NewJSONFormatter creates a new instance of JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the indented JSON document to stdout.
func (f *JSONFormatter) Format(report *model.Report) error {
	data, err := Marshal(report)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Marshal encodes the report document for the summary file and stdout.
func Marshal(report *model.Report) ([]byte, error) {
	return sonic.MarshalIndent(report, "", "  ")
}
