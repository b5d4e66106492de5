package confgen

import (
	"bytes"
	"errors"
	"io"

	yamlv3 "go.yaml.in/yaml/v3"
)

const (
	yamlStrTag       = "!!str"
	yamlIntTag       = "!!int"
	yamlFloatTag     = "!!float"
	yamlBoolTag      = "!!bool"
	yamlNullTag      = "!!null"
	yamlTimestampTag = "!!timestamp"
)

// decodeYAML 使用 yaml.Node 解析，保留 key 顺序与标量 tag。
//
// 空文件与 null 文档视为空 mapping；流中出现第二个文档为 ErrUnexpectedShape。
func decodeYAML(_ string, content []byte) (Node, error) {
	dec := yamlv3.NewDecoder(bytes.NewReader(content))

	var doc yamlv3.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Node{Kind: KindEmpty}, nil
		}
		return Node{}, err
	}

	var extra yamlv3.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return Node{}, err
	default:
		return Node{}, &Error{Kind: ErrUnexpectedShape, Line: extra.Line, Err: errors.New("multiple documents in one file")}
	}

	root := yamlRoot(&doc)
	if root == nil || (root.Kind == yamlv3.ScalarNode && root.ShortTag() == yamlNullTag) {
		return Node{Kind: KindEmpty}, nil
	}
	if root.Kind != yamlv3.MappingNode {
		return yamlValue(root), nil
	}

	out := Node{Kind: KindMapping, Line: root.Line}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := resolveYAMLAlias(root.Content[i])
		out.Fields = append(out.Fields, Field{
			Key:         key.Value,
			KeyIsString: key.Kind == yamlv3.ScalarNode && key.ShortTag() == yamlStrTag,
			Value:       yamlValue(root.Content[i+1]),
			Line:        root.Content[i].Line,
		})
	}

	return out, nil
}

func yamlRoot(doc *yamlv3.Node) *yamlv3.Node {
	if doc.Kind != yamlv3.DocumentNode {
		return resolveYAMLAlias(doc)
	}
	if len(doc.Content) == 0 {
		return nil
	}

	return resolveYAMLAlias(doc.Content[0])
}

func resolveYAMLAlias(n *yamlv3.Node) *yamlv3.Node {
	for n.Kind == yamlv3.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

// yamlValue 只记录节点种类，不展开嵌套内容。
func yamlValue(n *yamlv3.Node) Node {
	line := n.Line
	n = resolveYAMLAlias(n)

	switch n.Kind {
	case yamlv3.MappingNode:
		return Node{Kind: KindMapping, Line: line}
	case yamlv3.SequenceNode:
		return Node{Kind: KindSequence, Line: line}
	case yamlv3.ScalarNode:
		return Node{Kind: KindScalar, Scalar: yamlScalarType(n.ShortTag()), Value: n.Value, Line: line}
	default:
		return Node{Kind: KindScalar, Scalar: ScalarOther, Line: line}
	}
}

func yamlScalarType(tag string) ScalarType {
	switch tag {
	// 日期形式的裸标量按原文保留为字符串
	case yamlStrTag, yamlTimestampTag:
		return ScalarString
	case yamlIntTag:
		return ScalarInt
	case yamlFloatTag:
		return ScalarFloat
	case yamlBoolTag:
		return ScalarBool
	case yamlNullTag:
		return ScalarNull
	default:
		return ScalarOther
	}
}
