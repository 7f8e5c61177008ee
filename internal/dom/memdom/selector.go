package memdom

import (
	"fmt"
	"strings"
	"sync"
)

var (
	xpathCacheMu sync.Mutex
	xpathCache   = map[string]string{}
)

// compileSelector translates the supported CSS subset into an XPath
// expression rooted at the context node. Results are cached per selector.
func compileSelector(selector string) (string, error) {
	xpathCacheMu.Lock()
	if expr, ok := xpathCache[selector]; ok {
		xpathCacheMu.Unlock()
		return expr, nil
	}
	xpathCacheMu.Unlock()

	parts, err := splitCompounds(selector)
	if err != nil {
		return "", err
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("empty selector")
	}
	var b strings.Builder
	b.WriteString(".")
	for _, part := range parts {
		step, err := compileCompound(part)
		if err != nil {
			return "", fmt.Errorf("selector %q: %w", selector, err)
		}
		b.WriteString("//")
		b.WriteString(step)
	}
	expr := b.String()

	xpathCacheMu.Lock()
	xpathCache[selector] = expr
	xpathCacheMu.Unlock()
	return expr, nil
}

// splitCompounds splits on whitespace outside attribute brackets.
func splitCompounds(selector string) ([]string, error) {
	var (
		parts []string
		cur   strings.Builder
		depth int
		quote rune
	)
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}
	for _, r := range strings.TrimSpace(selector) {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case r == '[':
			depth++
			cur.WriteRune(r)
		case r == ']':
			depth--
			cur.WriteRune(r)
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if depth != 0 || quote != 0 {
		return nil, fmt.Errorf("unbalanced selector %q", selector)
	}
	flush()
	return parts, nil
}

func compileCompound(compound string) (string, error) {
	tag := "*"
	var preds []string
	i := 0
	readIdent := func() string {
		start := i
		for i < len(compound) && isIdentByte(compound[i]) {
			i++
		}
		return compound[start:i]
	}
	if i < len(compound) && isIdentByte(compound[i]) {
		tag = strings.ToLower(readIdent())
	} else if i < len(compound) && compound[i] == '*' {
		i++
	}
	for i < len(compound) {
		switch compound[i] {
		case '.':
			i++
			name := readIdent()
			if name == "" {
				return "", fmt.Errorf("empty class name")
			}
			preds = append(preds, fmt.Sprintf("contains(concat(' ', normalize-space(@class), ' '), ' %s ')", name))
		case '#':
			i++
			id := readIdent()
			if id == "" {
				return "", fmt.Errorf("empty id")
			}
			preds = append(preds, fmt.Sprintf("@id='%s'", id))
		case '[':
			end := strings.IndexByte(compound[i:], ']')
			if end < 0 {
				return "", fmt.Errorf("unterminated attribute")
			}
			pred, err := compileAttribute(compound[i+1 : i+end])
			if err != nil {
				return "", err
			}
			preds = append(preds, pred)
			i += end + 1
		default:
			return "", fmt.Errorf("unsupported token %q", compound[i:])
		}
	}
	var b strings.Builder
	b.WriteString(tag)
	for _, p := range preds {
		b.WriteString("[")
		b.WriteString(p)
		b.WriteString("]")
	}
	return b.String(), nil
}

func compileAttribute(body string) (string, error) {
	name, value, hasValue := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty attribute name")
	}
	if !hasValue {
		return "@" + name, nil
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	if strings.ContainsRune(value, '\'') {
		return "", fmt.Errorf("attribute value %q contains a single quote", value)
	}
	return fmt.Sprintf("@%s='%s'", name, value), nil
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
