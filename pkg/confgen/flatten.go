package confgen

import (
	"errors"
	"fmt"
	"slices"
)

// NormalizedEntry 归一化后的一条配置。
type NormalizedEntry struct {
	Identifier string // snake_case 标识符，如 server_port
	GoName     string // 导出的 Go 名称，如 ServerPort
	Key        string // 源文件中的原始 key
	Value      string
	Line       int
}

// ConfigSet 一次生成过程中的有序、不可变配置集合。
type ConfigSet struct {
	entries []NormalizedEntry
}

// Len 返回条目数量。
func (s *ConfigSet) Len() int {
	return len(s.entries)
}

// Entries 返回条目副本，保持源文件顺序。
func (s *ConfigSet) Entries() []NormalizedEntry {
	return slices.Clone(s.entries)
}

// Lookup 按 snake_case 标识符查找条目。
func (s *ConfigSet) Lookup(identifier string) (NormalizedEntry, bool) {
	for _, e := range s.entries {
		if e.Identifier == identifier {
			return e, true
		}
	}

	return NormalizedEntry{}, false
}

// mapValues 返回逐条替换值之后的新集合，原集合不变。
func (s *ConfigSet) mapValues(fn func(NormalizedEntry) (string, error)) (*ConfigSet, error) {
	out := &ConfigSet{entries: make([]NormalizedEntry, len(s.entries))}
	for i, e := range s.entries {
		value, err := fn(e)
		if err != nil {
			return nil, err
		}
		e.Value = value
		out.entries[i] = e
	}

	return out, nil
}

// Flatten 校验文档形状并归一化全部 key。
//
// reserved 为生成文件自身会声明的名称（结构体类型名、构造函数名），
// 与之冲突的 Go 名称返回 ErrReservedIdentifier。
//
// 校验顺序（每个字段）：key 为字符串 → 值为标量字符串 → 标识符合法 → 唯一 → 未保留。
// 空文档得到空集合。
func Flatten(doc *Document, reserved ...string) (*ConfigSet, error) {
	root := doc.Root
	switch root.Kind {
	case KindEmpty:
		return &ConfigSet{}, nil
	case KindMapping:
	default:
		return nil, &Error{
			Kind: ErrUnexpectedShape,
			Path: doc.Path,
			Line: root.Line,
			Err:  fmt.Errorf("got %s root, want mapping", root.describe()),
		}
	}

	set := &ConfigSet{entries: make([]NormalizedEntry, 0, len(root.Fields))}
	byIdentifier := make(map[string]string, len(root.Fields))
	byGoName := make(map[string]string, len(root.Fields))

	for _, field := range root.Fields {
		fail := func(kind error, err error) error {
			return &Error{Kind: kind, Path: doc.Path, Key: field.Key, Line: field.Line, Err: err}
		}

		if !field.KeyIsString {
			return nil, fail(ErrUnexpectedShape, errors.New("mapping key must be a string"))
		}
		if !field.Value.IsString() {
			return nil, fail(ErrUnsupportedValueType, fmt.Errorf("got %s value, want string", field.Value.describe()))
		}

		identifier := NormalizeKey(field.Key)
		goName := GoName(identifier)
		if identifier == "" || !isExportedIdentifier(goName) {
			return nil, fail(ErrInvalidIdentifier, fmt.Errorf("normalizes to %q, which is not a valid Go name", identifier))
		}
		if prev, ok := byIdentifier[identifier]; ok {
			return nil, fail(ErrDuplicateIdentifier, fmt.Errorf("key %q also normalizes to %q", prev, identifier))
		}
		if prev, ok := byGoName[goName]; ok {
			return nil, fail(ErrDuplicateIdentifier, fmt.Errorf("key %q also produces Go name %s", prev, goName))
		}
		if slices.Contains(reserved, goName) {
			return nil, fail(ErrReservedIdentifier, fmt.Errorf("generated file already declares %s", goName))
		}

		byIdentifier[identifier] = field.Key
		byGoName[goName] = field.Key
		set.entries = append(set.entries, NormalizedEntry{
			Identifier: identifier,
			GoName:     goName,
			Key:        field.Key,
			Value:      field.Value.Value,
			Line:       field.Line,
		})
	}

	return set, nil
}
