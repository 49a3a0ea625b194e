package compiler

import "github.com/vango-dev/zx/pkg/syntax"

// NodeKind is the semantic kind of a syntax node.
type NodeKind uint8

const (
	KindOther NodeKind = iota // Passthrough, copied verbatim
	KindSourceFile
	KindHostCode
	KindComment
	KindMarkupRoot
	KindElement
	KindSelfClosingElement
	KindFragment
	KindStartTag
	KindEndTag
	KindTagName
	KindAttribute
	KindBuiltinAttribute
	KindAttributeName
	KindString
	KindStringContent
	KindBuiltinIdentifier
	KindExpressionBlock
	KindExpression
	KindArrayType
	KindText
	KindIfExpression
	KindIfBlock
	KindForExpression
	KindForBlock
	KindWhileExpression
	KindWhileBlock
	KindSwitchExpression
	KindSwitchBlock
	KindSwitchCase
	KindPayload
	KindIdentifier
	KindAssignmentExpression
	KindBlock
	KindVariableDeclaration
	KindBuiltinFunction
	KindArguments
)

var kindByType = map[string]NodeKind{
	syntax.TypeSourceFile:          KindSourceFile,
	syntax.TypeHostCode:            KindHostCode,
	syntax.TypeComment:             KindComment,
	syntax.TypeZxBlock:             KindMarkupRoot,
	syntax.TypeElement:             KindElement,
	syntax.TypeSelfClosingElement:  KindSelfClosingElement,
	syntax.TypeFragment:            KindFragment,
	syntax.TypeStartTag:            KindStartTag,
	syntax.TypeEndTag:              KindEndTag,
	syntax.TypeTagName:             KindTagName,
	syntax.TypeAttribute:           KindAttribute,
	syntax.TypeBuiltinAttribute:    KindBuiltinAttribute,
	syntax.TypeAttributeName:       KindAttributeName,
	syntax.TypeString:              KindString,
	syntax.TypeStringContent:       KindStringContent,
	syntax.TypeBuiltinIdentifier:   KindBuiltinIdentifier,
	syntax.TypeExpressionBlock:     KindExpressionBlock,
	syntax.TypeExpression:          KindExpression,
	syntax.TypeArrayType:           KindArrayType,
	syntax.TypeText:                KindText,
	syntax.TypeIfExpression:        KindIfExpression,
	syntax.TypeIfBlock:             KindIfBlock,
	syntax.TypeForExpression:       KindForExpression,
	syntax.TypeForBlock:            KindForBlock,
	syntax.TypeWhileExpression:     KindWhileExpression,
	syntax.TypeWhileBlock:          KindWhileBlock,
	syntax.TypeSwitchExpression:    KindSwitchExpression,
	syntax.TypeSwitchBlock:         KindSwitchBlock,
	syntax.TypeSwitchCase:          KindSwitchCase,
	syntax.TypePayload:             KindPayload,
	syntax.TypeIdentifier:          KindIdentifier,
	syntax.TypeAssignment:          KindAssignmentExpression,
	syntax.TypeBlock:               KindBlock,
	syntax.TypeVariableDeclaration: KindVariableDeclaration,
	syntax.TypeBuiltinFunction:     KindBuiltinFunction,
	syntax.TypeArguments:           KindArguments,
}

// Classify returns the kind of a syntax node. Unknown node types, and nil,
// classify as KindOther.
func Classify(n *syntax.Node) NodeKind {
	if n == nil {
		return KindOther
	}
	return kindByType[n.Kind()]
}

// String returns the grammar name of the kind.
func (k NodeKind) String() string {
	for typ, kind := range kindByType {
		if kind == k {
			return typ
		}
	}
	return "other"
}

// IsMarkup reports whether the kind is an element, fragment or markup root.
func (k NodeKind) IsMarkup() bool {
	switch k {
	case KindMarkupRoot, KindElement, KindSelfClosingElement, KindFragment:
		return true
	}
	return false
}

// IsControlFlow reports whether the kind is one of the control-flow forms.
func (k NodeKind) IsControlFlow() bool {
	switch k {
	case KindIfExpression, KindIfBlock,
		KindForExpression, KindForBlock,
		KindWhileExpression, KindWhileBlock,
		KindSwitchExpression, KindSwitchBlock:
		return true
	}
	return false
}
