package templexp

import (
	"fmt"
	"maps"
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 变量快照
// ═══════════════════════════════════════════════════════════════════════════

// Expander 基于固定的变量快照执行展开。
//
// 快照在创建时确定，之后环境变量的变化不会影响结果；
// 每次 [Expander.Expand] 都在快照副本上进行，":=" 赋值不会泄漏到下一次展开。
type Expander struct {
	vars map[string]string
}

// NewExpander 由 "KEY=VALUE" 列表（如 os.Environ()）创建展开器。
func NewExpander(environ []string) *Expander {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if name, value, ok := strings.Cut(kv, "="); ok {
			vars[name] = value
		}
	}

	return &Expander{vars: vars}
}

// Expand 对 text 执行 Shell 参数展开。
func (e *Expander) Expand(text string) (string, error) {
	return expandParameters(text, maps.Clone(e.vars))
}

// ExpandTemplate 使用当前进程环境展开 text。
//
// 支持语法：
//   - ${VAR} - 变量替换
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// 返回展开后的字符串；仅在必填校验失败时返回 error。
func ExpandTemplate(text string) (string, error) {
	return NewExpander(os.Environ()).Expand(text)
}

// ═══════════════════════════════════════════════════════════════════════════
// 表达式解析
// ═══════════════════════════════════════════════════════════════════════════

// parameter 一个 ${...} 表达式。
type parameter struct {
	name     string
	op       string // "", "-", ":-", "+", ":+", "?", ":?", "=", ":="
	word     string
	nullable bool // op 以 ":" 开头，空值视同未设置
}

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

func parseParameter(expr string) (parameter, bool) {
	if expr == "" || !isNameStart(expr[0]) {
		return parameter{}, false
	}

	i := 1
	for i < len(expr) && isNameChar(expr[i]) {
		i++
	}
	p := parameter{name: expr[:i]}
	rest := expr[i:]
	if rest == "" {
		return p, true
	}

	if rest[0] == ':' {
		p.nullable = true
		rest = rest[1:]
	}
	if rest == "" || !strings.ContainsRune("-+?=", rune(rest[0])) {
		return parameter{}, false
	}
	p.op = expr[i : len(expr)-len(rest)+1]
	p.word = rest[1:]

	return p, true
}

// ═══════════════════════════════════════════════════════════════════════════
// 展开
// ═══════════════════════════════════════════════════════════════════════════

func (p parameter) expand(vars map[string]string) (string, error) {
	val, isSet := vars[p.name]
	missing := !isSet || (p.nullable && val == "")

	switch p.op {
	case "":
		return val, nil
	case "-", ":-":
		if missing {
			return expandWord(p.word, vars)
		}
		return val, nil
	case "+", ":+":
		if missing {
			return "", nil
		}
		return expandWord(p.word, vars)
	case "?", ":?":
		if missing {
			if p.word == "" {
				return "", fmt.Errorf("templexp: %s: parameter null or not set", p.name)
			}
			return "", fmt.Errorf("templexp: %s: %s", p.name, p.word)
		}
		return val, nil
	case "=", ":=":
		if missing {
			word, err := expandWord(p.word, vars)
			if err != nil {
				return "", err
			}
			vars[p.name] = word
			return word, nil
		}
		return val, nil
	}

	return val, nil
}

func expandWord(word string, vars map[string]string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return expandParameters(word, vars)
}

func expandParameters(text string, vars map[string]string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2
			continue
		case '{':
		default:
			buf.WriteByte('$')
			i++
			continue
		}

		end := matchingBrace(text, i+2)
		if end == -1 {
			buf.WriteByte('$')
			i++
			continue
		}

		p, ok := parseParameter(text[i+2 : end])
		if !ok {
			// 无法识别的表达式保持原样
			buf.WriteString(text[i : end+1])
			i = end + 1
			continue
		}
		expanded, err := p.expand(vars)
		if err != nil {
			return "", err
		}
		buf.WriteString(expanded)
		i = end + 1
	}

	return buf.String(), nil
}

func matchingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}
