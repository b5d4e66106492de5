package confgen

import (
	"errors"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL 读取顶层属性，按源文件偏移排序。
//
// 块 (block) 记为 mapping 值，交由校验阶段拒绝；
// 属性在无变量的上下文中求值，引用变量或函数的表达式视为非字面量。
func decodeHCL(path string, content []byte) (Node, error) {
	file, diags := hclparse.NewParser().ParseHCL(content, path)
	if diags.HasErrors() {
		return Node{}, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return Node{}, errors.New("unsupported HCL body")
	}

	type located struct {
		offset int
		field  Field
	}
	items := make([]located, 0, len(body.Attributes)+len(body.Blocks))
	for name, attr := range body.Attributes {
		items = append(items, located{
			offset: attr.SrcRange.Start.Byte,
			field: Field{
				Key:         name,
				KeyIsString: true,
				Value:       hclValue(attr.Expr),
				Line:        attr.SrcRange.Start.Line,
			},
		})
	}
	for _, block := range body.Blocks {
		items = append(items, located{
			offset: block.TypeRange.Start.Byte,
			field: Field{
				Key:         block.Type,
				KeyIsString: true,
				Value:       Node{Kind: KindMapping, Line: block.TypeRange.Start.Line},
				Line:        block.TypeRange.Start.Line,
			},
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].offset < items[j].offset })

	root := Node{Kind: KindMapping, Line: 1}
	for _, item := range items {
		root.Fields = append(root.Fields, item.field)
	}

	return root, nil
}

func hclValue(expr hclsyntax.Expression) Node {
	line := expr.Range().Start.Line

	val, diags := expr.Value(nil)
	if diags.HasErrors() || !val.IsWhollyKnown() {
		return Node{Kind: KindScalar, Scalar: ScalarOther, Line: line}
	}
	if val.IsNull() {
		return Node{Kind: KindScalar, Scalar: ScalarNull, Line: line}
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return Node{Kind: KindScalar, Scalar: ScalarString, Value: val.AsString(), Line: line}
	case ty == cty.Bool:
		return Node{Kind: KindScalar, Scalar: ScalarBool, Line: line}
	case ty == cty.Number:
		if val.AsBigFloat().IsInt() {
			return Node{Kind: KindScalar, Scalar: ScalarInt, Line: line}
		}
		return Node{Kind: KindScalar, Scalar: ScalarFloat, Line: line}
	case ty.IsObjectType() || ty.IsMapType():
		return Node{Kind: KindMapping, Line: line}
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		return Node{Kind: KindSequence, Line: line}
	default:
		return Node{Kind: KindScalar, Scalar: ScalarOther, Line: line}
	}
}
