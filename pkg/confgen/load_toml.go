package confgen

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
)

// decodeTOML 逐条读取表达式以保留 key 顺序。
//
// [table]、[[array]] 与点号 key 都会产生一个 mapping/sequence 值的字段，
// 交由校验阶段报告 ErrUnsupportedValueType；表内的键值对不再单独列出。
// unstable.Parser 不检查重复定义，顶层 key 与表头的重复在此报告为格式错误。
func decodeTOML(_ string, content []byte) (Node, error) {
	p := unstable.Parser{}
	p.Reset(content)

	root := Node{Kind: KindMapping}
	defined := make(map[string]bool)
	define := func(key []string) error {
		name := strings.Join(key, ".")
		if defined[name] {
			return fmt.Errorf("toml: key %q defined more than once", name)
		}
		defined[name] = true

		return nil
	}

	inTable := false
	arrays := make(map[string]bool)
	for p.NextExpression() {
		expr := p.Expression()

		switch expr.Kind {
		case unstable.Table:
			inTable = true
			key := tomlKey(expr.Key())
			if err := define(key); err != nil {
				return Node{}, err
			}
			root.Fields = append(root.Fields, tomlField(key, Node{Kind: KindMapping}))
		case unstable.ArrayTable:
			inTable = true
			// [[name]] 可以重复出现，只记录第一次
			key := tomlKey(expr.Key())
			name := strings.Join(key, ".")
			if arrays[name] {
				continue
			}
			if err := define(key); err != nil {
				return Node{}, err
			}
			arrays[name] = true
			root.Fields = append(root.Fields, tomlField(key, Node{Kind: KindSequence}))
		case unstable.KeyValue:
			if inTable {
				continue
			}
			key := tomlKey(expr.Key())
			if err := define(key); err != nil {
				return Node{}, err
			}
			if len(key) > 1 {
				root.Fields = append(root.Fields, tomlField(key, Node{Kind: KindMapping}))
				continue
			}
			root.Fields = append(root.Fields, tomlField(key, tomlValue(expr.Value())))
		default:
		}
	}
	if err := p.Error(); err != nil {
		return Node{}, err
	}

	return root, nil
}

func tomlKey(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}

	return parts
}

func tomlField(key []string, value Node) Field {
	name := ""
	if len(key) > 0 {
		name = key[0]
	}

	return Field{Key: name, KeyIsString: true, Value: value}
}

func tomlValue(n *unstable.Node) Node {
	switch n.Kind {
	case unstable.String:
		return Node{Kind: KindScalar, Scalar: ScalarString, Value: string(n.Data)}
	case unstable.Integer:
		return Node{Kind: KindScalar, Scalar: ScalarInt, Value: string(n.Data)}
	case unstable.Float:
		return Node{Kind: KindScalar, Scalar: ScalarFloat, Value: string(n.Data)}
	case unstable.Bool:
		return Node{Kind: KindScalar, Scalar: ScalarBool, Value: string(n.Data)}
	case unstable.Array:
		return Node{Kind: KindSequence}
	case unstable.InlineTable:
		return Node{Kind: KindMapping}
	default:
		return Node{Kind: KindScalar, Scalar: ScalarOther, Value: string(n.Data)}
	}
}
