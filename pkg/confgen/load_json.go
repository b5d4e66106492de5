package confgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// decodeJSON 以 token 流读取 JSON，保留 key 顺序。
//
// 仅根对象逐项展开；嵌套值只记录种类。重复 key 原样保留，交由校验阶段报告。
// 空文件与 null 视为空文档。
func decodeJSON(_ string, content []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Node{Kind: KindEmpty}, nil
		}
		return Node{}, err
	}
	if tok != json.Delim('{') {
		return decodeJSONValue(content)
	}

	root := Node{Kind: KindMapping, Line: 1}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Node{}, fmt.Errorf("unexpected token %v in object", tok)
		}
		line := lineAt(content, dec.InputOffset())

		var value any
		if err := dec.Decode(&value); err != nil {
			return Node{}, err
		}
		root.Fields = append(root.Fields, Field{
			Key:         key,
			KeyIsString: true,
			Value:       jsonValue(value, line),
			Line:        line,
		})
	}
	if _, err := dec.Token(); err != nil {
		if errors.Is(err, io.EOF) {
			return Node{}, io.ErrUnexpectedEOF
		}
		return Node{}, err
	}
	if err := expectJSONEnd(dec); err != nil {
		return Node{}, err
	}

	return root, nil
}

// decodeJSONValue 处理根不是对象的文档，null 视为空文档。
func decodeJSONValue(content []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return Node{}, err
	}
	if err := expectJSONEnd(dec); err != nil {
		return Node{}, err
	}
	if value == nil {
		return Node{Kind: KindEmpty}, nil
	}

	return jsonValue(value, 1), nil
}

func expectJSONEnd(dec *json.Decoder) error {
	switch _, err := dec.Token(); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errors.New("unexpected data after top-level value")
	}
}

func jsonValue(v any, line int) Node {
	switch v := v.(type) {
	case string:
		return Node{Kind: KindScalar, Scalar: ScalarString, Value: v, Line: line}
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return Node{Kind: KindScalar, Scalar: ScalarInt, Value: v.String(), Line: line}
		}
		return Node{Kind: KindScalar, Scalar: ScalarFloat, Value: v.String(), Line: line}
	case bool:
		return Node{Kind: KindScalar, Scalar: ScalarBool, Value: strconv.FormatBool(v), Line: line}
	case nil:
		return Node{Kind: KindScalar, Scalar: ScalarNull, Value: "null", Line: line}
	case map[string]any:
		return Node{Kind: KindMapping, Line: line}
	case []any:
		return Node{Kind: KindSequence, Line: line}
	default:
		return Node{Kind: KindScalar, Scalar: ScalarOther, Line: line}
	}
}

// lineAt 返回 offset 所在的 1 起始行号。
func lineAt(content []byte, offset int64) int {
	offset = min(offset, int64(len(content)))

	return 1 + bytes.Count(content[:offset], []byte("\n"))
}
