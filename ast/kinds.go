package ast

// NodeKind identifies the syntactic category of an AST vertex.
type NodeKind uint8

const (
	// NodeInvalid is the zero kind, never created.
	NodeInvalid NodeKind = iota

	// Root and names.
	Greql2Expression
	Variable
	Identifier
	FunctionId
	TypeId
	RoleId
	RecordId
	Quantifier
	Direction

	// Literals.
	IntLiteral
	DoubleLiteral
	StringLiteral
	BoolLiteral
	UndefinedLiteral
	ThisVertex
	ThisEdge

	// Expressions.
	FunctionApplication
	ConditionalExpression
	QuantifiedExpression
	LetExpression
	WhereExpression
	Definition
	Declaration
	SimpleDeclaration
	ListComprehension
	SetComprehension
	MapComprehension
	VertexSetExpression
	EdgeSetExpression
	SetConstruction
	ListConstruction
	ListRangeConstruction
	TupleConstruction
	RecordConstruction
	RecordElement
	MapConstruction
	ForwardVertexSet
	BackwardVertexSet
	PathExistence

	// Path descriptions.
	SimplePathDescription
	AggregationPathDescription
	EdgePathDescription
	AlternativePathDescription
	SequentialPathDescription
	IntermediateVertexPathDescription
	IteratedPathDescription
	ExponentiatedPathDescription
	TransposedPathDescription
	OptionalPathDescription
	EdgeRestriction

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	NodeInvalid:                       "Invalid",
	Greql2Expression:                  "Greql2Expression",
	Variable:                          "Variable",
	Identifier:                        "Identifier",
	FunctionId:                        "FunctionId",
	TypeId:                            "TypeId",
	RoleId:                            "RoleId",
	RecordId:                          "RecordId",
	Quantifier:                        "Quantifier",
	Direction:                         "Direction",
	IntLiteral:                        "IntLiteral",
	DoubleLiteral:                     "DoubleLiteral",
	StringLiteral:                     "StringLiteral",
	BoolLiteral:                       "BoolLiteral",
	UndefinedLiteral:                  "UndefinedLiteral",
	ThisVertex:                        "ThisVertex",
	ThisEdge:                          "ThisEdge",
	FunctionApplication:               "FunctionApplication",
	ConditionalExpression:             "ConditionalExpression",
	QuantifiedExpression:              "QuantifiedExpression",
	LetExpression:                     "LetExpression",
	WhereExpression:                   "WhereExpression",
	Definition:                        "Definition",
	Declaration:                       "Declaration",
	SimpleDeclaration:                 "SimpleDeclaration",
	ListComprehension:                 "ListComprehension",
	SetComprehension:                  "SetComprehension",
	MapComprehension:                  "MapComprehension",
	VertexSetExpression:               "VertexSetExpression",
	EdgeSetExpression:                 "EdgeSetExpression",
	SetConstruction:                   "SetConstruction",
	ListConstruction:                  "ListConstruction",
	ListRangeConstruction:             "ListRangeConstruction",
	TupleConstruction:                 "TupleConstruction",
	RecordConstruction:                "RecordConstruction",
	RecordElement:                     "RecordElement",
	MapConstruction:                   "MapConstruction",
	ForwardVertexSet:                  "ForwardVertexSet",
	BackwardVertexSet:                 "BackwardVertexSet",
	PathExistence:                     "PathExistence",
	SimplePathDescription:             "SimplePathDescription",
	AggregationPathDescription:        "AggregationPathDescription",
	EdgePathDescription:               "EdgePathDescription",
	AlternativePathDescription:        "AlternativePathDescription",
	SequentialPathDescription:         "SequentialPathDescription",
	IntermediateVertexPathDescription: "IntermediateVertexPathDescription",
	IteratedPathDescription:           "IteratedPathDescription",
	ExponentiatedPathDescription:      "ExponentiatedPathDescription",
	TransposedPathDescription:         "TransposedPathDescription",
	OptionalPathDescription:           "OptionalPathDescription",
	EdgeRestriction:                   "EdgeRestriction",
}

func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// IsComprehension reports whether k is a from-report comprehension.
func (k NodeKind) IsComprehension() bool {
	return k == ListComprehension || k == SetComprehension || k == MapComprehension
}

// IsDefinitionExpression reports whether k is a let or where expression.
func (k NodeKind) IsDefinitionExpression() bool {
	return k == LetExpression || k == WhereExpression
}

// IsPathDescription reports whether k describes a path.
func (k NodeKind) IsPathDescription() bool {
	return k >= SimplePathDescription && k <= OptionalPathDescription
}

// IsLiteral reports whether k is a literal.
func (k NodeKind) IsLiteral() bool {
	return k >= IntLiteral && k <= ThisEdge
}

// IsThisLiteral reports whether k is thisVertex or thisEdge.
func (k NodeKind) IsThisLiteral() bool {
	return k == ThisVertex || k == ThisEdge
}

// EdgeKind identifies the aggregation relation an edge represents.
// Every edge points from a child to its structural parent.
type EdgeKind uint8

const (
	// EdgeInvalid is the zero kind, never created.
	EdgeInvalid EdgeKind = iota

	IsQueryExprOf
	IsBoundVarOf
	IsIdOf
	IsFunctionIdOf
	IsArgumentOf
	IsTypeExprOf
	IsConditionOf
	IsTrueExprOf
	IsFalseExprOf
	IsQuantifierOf
	IsQuantifiedDeclOf
	IsBoundExprOfQuantifiedExpression
	IsDefinitionOf
	IsVarOf
	IsExprOf
	IsBoundExprOfDefinition
	IsSimpleDeclOf
	IsDeclaredVarOf
	IsTypeExprOfDeclaration
	IsConstraintOf
	IsCompDeclOf
	IsCompResultDefOf
	IsKeyExprOfComprehension
	IsValueExprOfComprehension
	IsMaxCountOf
	IsTableHeaderOf
	IsPartOf
	IsFirstValueOf
	IsLastValueOf
	IsRecordIdOf
	IsRecordExprOf
	IsRecordElementOf
	IsKeyExprOfConstruction
	IsValueExprOfConstruction
	IsTypeRestrOf
	IsStartExprOf
	IsTargetExprOf
	IsPathOf
	IsDirectionOf
	IsEdgeRestrOf
	IsEdgeExprOf
	IsAlternativePathOf
	IsSequenceElementOf
	IsSubPathOf
	IsIntermediateVertexOf
	IsIteratedPathOf
	IsExponentiatedPathOf
	IsExponentOf
	IsTransposedPathOf
	IsOptionalPathOf
	IsStartRestrOf
	IsGoalRestrOf
	IsTypeIdOf
	IsRoleIdOf
	IsBooleanPredicateOfEdgeRestriction

	edgeKindCount
)

var edgeKindNames = [edgeKindCount]string{
	EdgeInvalid:                         "Invalid",
	IsQueryExprOf:                       "IsQueryExprOf",
	IsBoundVarOf:                        "IsBoundVarOf",
	IsIdOf:                              "IsIdOf",
	IsFunctionIdOf:                      "IsFunctionIdOf",
	IsArgumentOf:                        "IsArgumentOf",
	IsTypeExprOf:                        "IsTypeExprOf",
	IsConditionOf:                       "IsConditionOf",
	IsTrueExprOf:                        "IsTrueExprOf",
	IsFalseExprOf:                       "IsFalseExprOf",
	IsQuantifierOf:                      "IsQuantifierOf",
	IsQuantifiedDeclOf:                  "IsQuantifiedDeclOf",
	IsBoundExprOfQuantifiedExpression:   "IsBoundExprOfQuantifiedExpression",
	IsDefinitionOf:                      "IsDefinitionOf",
	IsVarOf:                             "IsVarOf",
	IsExprOf:                            "IsExprOf",
	IsBoundExprOfDefinition:             "IsBoundExprOfDefinition",
	IsSimpleDeclOf:                      "IsSimpleDeclOf",
	IsDeclaredVarOf:                     "IsDeclaredVarOf",
	IsTypeExprOfDeclaration:             "IsTypeExprOfDeclaration",
	IsConstraintOf:                      "IsConstraintOf",
	IsCompDeclOf:                        "IsCompDeclOf",
	IsCompResultDefOf:                   "IsCompResultDefOf",
	IsKeyExprOfComprehension:            "IsKeyExprOfComprehension",
	IsValueExprOfComprehension:          "IsValueExprOfComprehension",
	IsMaxCountOf:                        "IsMaxCountOf",
	IsTableHeaderOf:                     "IsTableHeaderOf",
	IsPartOf:                            "IsPartOf",
	IsFirstValueOf:                      "IsFirstValueOf",
	IsLastValueOf:                       "IsLastValueOf",
	IsRecordIdOf:                        "IsRecordIdOf",
	IsRecordExprOf:                      "IsRecordExprOf",
	IsRecordElementOf:                   "IsRecordElementOf",
	IsKeyExprOfConstruction:             "IsKeyExprOfConstruction",
	IsValueExprOfConstruction:           "IsValueExprOfConstruction",
	IsTypeRestrOf:                       "IsTypeRestrOf",
	IsStartExprOf:                       "IsStartExprOf",
	IsTargetExprOf:                      "IsTargetExprOf",
	IsPathOf:                            "IsPathOf",
	IsDirectionOf:                       "IsDirectionOf",
	IsEdgeRestrOf:                       "IsEdgeRestrOf",
	IsEdgeExprOf:                        "IsEdgeExprOf",
	IsAlternativePathOf:                 "IsAlternativePathOf",
	IsSequenceElementOf:                 "IsSequenceElementOf",
	IsSubPathOf:                         "IsSubPathOf",
	IsIntermediateVertexOf:              "IsIntermediateVertexOf",
	IsIteratedPathOf:                    "IsIteratedPathOf",
	IsExponentiatedPathOf:               "IsExponentiatedPathOf",
	IsExponentOf:                        "IsExponentOf",
	IsTransposedPathOf:                  "IsTransposedPathOf",
	IsOptionalPathOf:                    "IsOptionalPathOf",
	IsStartRestrOf:                      "IsStartRestrOf",
	IsGoalRestrOf:                       "IsGoalRestrOf",
	IsTypeIdOf:                          "IsTypeIdOf",
	IsRoleIdOf:                          "IsRoleIdOf",
	IsBooleanPredicateOfEdgeRestriction: "IsBooleanPredicateOfEdgeRestriction",
}

func (k EdgeKind) String() string {
	if k < edgeKindCount {
		return edgeKindNames[k]
	}
	return "Unknown"
}

// DeclaresVariable reports whether an edge of kind k binds its child
// variable rather than using it.
func (k EdgeKind) DeclaresVariable() bool {
	return k == IsDeclaredVarOf || k == IsVarOf || k == IsBoundVarOf
}

// Attribute names set on nodes.
const (
	AttrName           = "name"
	AttrQueryText      = "queryText"
	AttrImportedTypes  = "importedTypes"
	AttrIntValue       = "intValue"
	AttrDoubleValue    = "doubleValue"
	AttrStringValue    = "stringValue"
	AttrBoolValue      = "boolValue"
	AttrDirValue       = "dirValue"
	AttrTimes          = "times"
	AttrOutAggregation = "outAggregation"
	AttrExcluded       = "excluded"
	AttrType           = "type"
)

// Direction attribute values.
const (
	DirOut = "out"
	DirIn  = "in"
	DirAny = "any"
)
