package confgen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKey 将任意 key 转换为小写下划线形式 (snake_case)。
//
// 规则：
//   - 先做 Unicode NFC 归一化
//   - 字母、数字、组合符号之外的字符均为分隔符
//   - 小写/数字 → 大写处断词 (serverPort → server_port, v2Api → v2_api)
//   - 连续大写的最后一个字母后跟小写时断词 (HTTPServer → http_server)
//   - 每个词转小写后以 "_" 连接，不产生首尾或连续的下划线
//
// 函数是全函数且幂等：NormalizeKey(NormalizeKey(k)) == NormalizeKey(k)。
func NormalizeKey(key string) string {
	words := splitWords([]rune(norm.NFC.String(key)))
	for i, word := range words {
		// Caser 有状态，不能跨 goroutine 共享，每次新建
		words[i] = norm.NFC.String(cases.Lower(language.Und).String(word))
	}

	return strings.Join(words, "_")
}

func splitWords(runes []rune) []string {
	var words []string
	start := -1
	for i, r := range runes {
		if !isWordRune(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if startsWord(runes, i) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}

	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.M, r)
}

// hasLowerForm 以"存在小写映射"定义大写，小写化后的文本不会再触发断词。
func hasLowerForm(r rune) bool {
	return unicode.ToLower(r) != r
}

// startsWord 报告 runes[i] 是否开启新词，调用方保证 runes[i-1] 是词内字符。
func startsWord(runes []rune, i int) bool {
	cur, prev := runes[i], runes[i-1]
	if !hasLowerForm(cur) {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	return hasLowerForm(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// GoName 由 snake_case 标识符生成导出的 Go 名称 (server_port → ServerPort)。
func GoName(identifier string) string {
	var b strings.Builder
	for word := range strings.SplitSeq(identifier, "_") {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(word[size:])
	}

	return b.String()
}

// isExportedIdentifier 报告 name 是否为合法且导出的 Go 标识符。
func isExportedIdentifier(name string) bool {
	return token.IsIdentifier(name) && token.IsExported(name)
}
