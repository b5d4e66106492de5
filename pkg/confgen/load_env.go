package confgen

import (
	"bufio"
	"bytes"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

// decodeEnv 解析 dotenv 文件。
//
// godotenv 会对未加单引号的值做 $VAR 替换，未定义的变量静默变为空串，
// 因此含未转义 "$" 的值在解析前即被拒绝。
// godotenv 返回无序 map，字段按 key 排序以保证输出稳定。
func decodeEnv(_ string, content []byte) (Node, error) {
	lines, err := scanEnvLines(content)
	if err != nil {
		return Node{}, err
	}

	vars, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		return Node{}, err
	}

	root := Node{Kind: KindMapping}
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		root.Fields = append(root.Fields, Field{
			Key:         key,
			KeyIsString: true,
			Value:       Node{Kind: KindScalar, Scalar: ScalarString, Value: vars[key], Line: lines[key]},
			Line:        lines[key],
		})
	}

	return root, nil
}

// scanEnvLines 记录每个 key 的行号，并拒绝会被 godotenv 替换的值。
func scanEnvLines(content []byte) (map[string]int, error) {
	lines := make(map[string]int)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	var (
		openKey  string // 跨行双引号值所属的 key
		openLine int
	)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if openKey != "" {
			body, closed := quotedPrefix(line)
			if hasExpansion(body) {
				return nil, envSubstitutionError(openKey, openLine)
			}
			if closed {
				openKey = ""
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.TrimPrefix(trimmed, "export ")
		sep := strings.IndexAny(trimmed, "=:")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:sep])
		value := strings.TrimSpace(trimmed[sep+1:])
		if _, seen := lines[key]; !seen {
			lines[key] = n
		}

		switch {
		case strings.HasPrefix(value, "'"):
			continue
		case strings.HasPrefix(value, `"`):
			body, closed := quotedPrefix(value[1:])
			if hasExpansion(body) {
				return nil, envSubstitutionError(key, n)
			}
			if !closed {
				openKey, openLine = key, n
			}
		default:
			if comment := strings.LastIndex(value, " #"); comment >= 0 {
				value = value[:comment]
			}
			if hasExpansion(value) {
				return nil, envSubstitutionError(key, n)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// hasExpansion 报告 s 中是否存在未以反斜杠转义的 "$"。
func hasExpansion(s string) bool {
	for i := range len(s) {
		if s[i] == '$' && (i == 0 || s[i-1] != '\\') {
			return true
		}
	}

	return false
}

// quotedPrefix 返回首个未转义双引号之前的内容，closed 表示找到了该引号。
func quotedPrefix(s string) (body string, closed bool) {
	for i := range len(s) {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			return s[:i], true
		}
	}

	return s, false
}

func envSubstitutionError(key string, line int) error {
	return &Error{
		Kind: ErrUnsupportedValueType,
		Key:  key,
		Line: line,
		Err:  errors.New(`value contains "$" substitution; single-quote the value or escape it as \$`),
	}
}
