// Package payload recovers structured values from the loosely serialized
// detection payloads exported by the upstream producers. The cells are
// JSON-like but come from several writers with inconsistent quoting, so
// parsing is a short-circuit chain of increasingly permissive stages.
package payload

import (
	"regexp"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
)

var (
	// Decimal("42") style wrappers left over from the storage layer's
	// numeric type. Stripped down to the bare numeral first, everywhere.
	decimalWrapper = regexp.MustCompile(`Decimal\(\s*['"]?([0-9eE+\-.]+)['"]?\s*\)`)

	trueToken  = regexp.MustCompile(`\bTrue\b`)
	falseToken = regexp.MustCompile(`\bFalse\b`)
	noneToken  = regexp.MustCompile(`\bNone\b`)
)

// Parse converts one raw payload cell into a structured value. It returns
// nil when nothing can be recovered; a failed parse never yields a partial
// structure. Only mappings and sequences are accepted as roots because
// every downstream consumer searches a container.
func Parse(cell string) *model.Value {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	s = decimalWrapper.ReplaceAllString(s, "$1")

	if v := parseStrict(s); v != nil {
		return v
	}
	if v := parseStrict(normalize(s)); v != nil {
		return v
	}
	if v := parsePermissive(s); v != nil {
		return v
	}
	return nil
}

// parseStrict accepts only byte sequences sonic validates as JSON, then
// decodes them through the order-preserving reader.
func parseStrict(s string) *model.Value {
	if !containerRoot(s) {
		return nil
	}
	if !sonic.Valid([]byte(s)) {
		return nil
	}
	v, err := decodeLiteral(s)
	if err != nil {
		return nil
	}
	return v
}

// parsePermissive reads the looser literal dialect directly.
func parsePermissive(s string) *model.Value {
	if !containerRoot(s) {
		return nil
	}
	v, err := decodeLiteral(s)
	if err != nil {
		return nil
	}
	return v
}

// normalize rewrites the common non-JSON conventions into JSON: single
// quotes and the True/False/None literal tokens. The quote swap is blunt
// on purpose; strings that break under it simply fail this stage.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = trueToken.ReplaceAllString(s, "true")
	s = falseToken.ReplaceAllString(s, "false")
	s = noneToken.ReplaceAllString(s, "null")
	return s
}

func containerRoot(s string) bool {
	return len(s) > 0 && (s[0] == '{' || s[0] == '[')
}
