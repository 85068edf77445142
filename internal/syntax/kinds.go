// # internal/syntax/kinds.go
package syntax

// DefinitionKind identifies which definition construct introduced an element.
type DefinitionKind int

const (
	DefPart DefinitionKind = iota
	DefPort
	DefAction
	DefState
	DefItem
	DefAttribute
	DefRequirement
	DefConcern
	DefCase
	DefAnalysisCase
	DefVerificationCase
	DefUseCase
	DefView
	DefViewpoint
	DefRendering
	DefConstraint
	DefConnection
	DefInterface
	DefEnumeration
	DefAllocation
	DefOccurrence
)

var defKindNames = map[DefinitionKind]string{
	DefPart:             "part",
	DefPort:             "port",
	DefAction:           "action",
	DefState:            "state",
	DefItem:             "item",
	DefAttribute:        "attribute",
	DefRequirement:      "requirement",
	DefConcern:          "concern",
	DefCase:             "case",
	DefAnalysisCase:     "analysis case",
	DefVerificationCase: "verification case",
	DefUseCase:          "use case",
	DefView:             "view",
	DefViewpoint:        "viewpoint",
	DefRendering:        "rendering",
	DefConstraint:       "constraint",
	DefConnection:       "connection",
	DefInterface:        "interface",
	DefEnumeration:      "enum",
	DefAllocation:       "allocation",
	DefOccurrence:       "occurrence",
}

func (k DefinitionKind) String() string {
	if n, ok := defKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// UsageKind identifies which usage construct introduced an element.
type UsageKind int

const (
	UsePart UsageKind = iota
	UsePort
	UseAction
	UseState
	UseItem
	UseAttribute
	UseRequirement
	UseConcern
	UseCase
	UseView
	UseConstraint
	UseConnection
	UseInterface
	UseOccurrence
	UseRef
	UseSatisfyRequirement
	UsePerformAction
	UseExhibitState
	UseIncludeUseCase
)

var useKindNames = map[UsageKind]string{
	UsePart:               "part",
	UsePort:               "port",
	UseAction:             "action",
	UseState:              "state",
	UseItem:               "item",
	UseAttribute:          "attribute",
	UseRequirement:        "requirement",
	UseConcern:            "concern",
	UseCase:               "case",
	UseView:               "view",
	UseConstraint:         "constraint",
	UseConnection:         "connection",
	UseInterface:          "interface",
	UseOccurrence:         "occurrence",
	UseRef:                "ref",
	UseSatisfyRequirement: "satisfy",
	UsePerformAction:      "perform",
	UseExhibitState:       "exhibit",
	UseIncludeUseCase:     "include",
}

func (k UsageKind) String() string {
	if n, ok := useKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ClassifierKind distinguishes the KerML classifier flavors.
type ClassifierKind int

const (
	ClassClass ClassifierKind = iota
	ClassClassifier
	ClassDataType
	ClassStruct
	ClassAssociation
	ClassBehavior
	ClassFunction
)

var classifierKindNames = map[ClassifierKind]string{
	ClassClass:       "class",
	ClassClassifier:  "classifier",
	ClassDataType:    "datatype",
	ClassStruct:      "struct",
	ClassAssociation: "assoc",
	ClassBehavior:    "behavior",
	ClassFunction:    "function",
}

func (k ClassifierKind) String() string {
	if n, ok := classifierKindNames[k]; ok {
		return n
	}
	return "unknown"
}
