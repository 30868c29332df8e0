package markup

import "fmt"

// Kind tags expression variants. Names follow the ESTree node types.
type Kind int

const (
	kindInvalid Kind = iota

	KindIdentifier
	KindMemberExpression
	KindLiteral
	KindLogicalExpression

	KindThis
	KindJSXElement
	KindJSXFragment
	KindJSXEmptyExpression
	KindCallExpression
	KindNewExpression
	KindConditionalExpression
	KindUnaryExpression
	KindBinaryExpression
	KindAssignmentExpression
	KindTemplateLiteral
	KindArrowFunctionExpression
	KindFunctionExpression
	KindArrayExpression
	KindObjectExpression
	KindSpreadElement
	KindSequenceExpression
)

var kindValueMap = map[Kind]string{
	KindIdentifier:              "Identifier",
	KindMemberExpression:        "MemberExpression",
	KindLiteral:                 "Literal",
	KindLogicalExpression:       "LogicalExpression",
	KindThis:                    "ThisExpression",
	KindJSXElement:              "JSXElement",
	KindJSXFragment:             "JSXFragment",
	KindJSXEmptyExpression:      "JSXEmptyExpression",
	KindCallExpression:          "CallExpression",
	KindNewExpression:           "NewExpression",
	KindConditionalExpression:   "ConditionalExpression",
	KindUnaryExpression:         "UnaryExpression",
	KindBinaryExpression:        "BinaryExpression",
	KindAssignmentExpression:    "AssignmentExpression",
	KindTemplateLiteral:         "TemplateLiteral",
	KindArrowFunctionExpression: "ArrowFunctionExpression",
	KindFunctionExpression:      "FunctionExpression",
	KindArrayExpression:         "ArrayExpression",
	KindObjectExpression:        "ObjectExpression",
	KindSpreadElement:           "SpreadElement",
	KindSequenceExpression:      "SequenceExpression",
}

func (k Kind) String() string {
	v, ok := kindValueMap[k]
	if !ok {
		return fmt.Sprintf("kind-invalid(%d)", k)
	}

	return v
}
