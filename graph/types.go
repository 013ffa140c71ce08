package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ComponentType discriminates the kind of flow step a node represents.
// The zero value means the node carries no type.
type ComponentType int

const (
	TypeResult              ComponentType = 3
	TypeTaskList            ComponentType = 7
	TypeNotice              ComponentType = 8
	TypeFindProperty        ComponentType = 9
	TypePlanningConstraints ComponentType = 11
	TypeQuestion            ComponentType = 100
	TypeChecklist           ComponentType = 105
	TypeTextInput           ComponentType = 110
	TypeFileUploadAndLabel  ComponentType = 145
	TypeAnswer              ComponentType = 200
	TypeContent             ComponentType = 250
	TypeInternalPortal      ComponentType = 300
	TypeExternalPortal      ComponentType = 310
	TypeSection             ComponentType = 360
	TypePay                 ComponentType = 400
	TypeCalculate           ComponentType = 700
)

var typeNames = map[ComponentType]string{
	TypeResult:              "Result",
	TypeTaskList:            "TaskList",
	TypeNotice:              "Notice",
	TypeFindProperty:        "FindProperty",
	TypePlanningConstraints: "PlanningConstraints",
	TypeQuestion:            "Question",
	TypeChecklist:           "Checklist",
	TypeTextInput:           "TextInput",
	TypeFileUploadAndLabel:  "FileUploadAndLabel",
	TypeAnswer:              "Answer",
	TypeContent:             "Content",
	TypeInternalPortal:      "InternalPortal",
	TypeExternalPortal:      "ExternalPortal",
	TypeSection:             "Section",
	TypePay:                 "Pay",
	TypeCalculate:           "Calculate",
}

func (t ComponentType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// ParseComponentType accepts either a registered name or a number.
func ParseComponentType(s string) (ComponentType, error) {
	for t, n := range typeNames {
		if n == s {
			return t, nil
		}
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrUnknownType
	}
	return ComponentType(i), nil
}

// UnmarshalJSON accepts a number or a registered name.
func (t *ComponentType) UnmarshalJSON(d []byte) error {
	var s string
	if err := json.Unmarshal(d, &s); err == nil {
		v, err := ParseComponentType(s)
		if err != nil {
			return fmt.Errorf("%w: %q", err, s)
		}
		*t = v
		return nil
	}
	var i int
	if err := json.Unmarshal(d, &i); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownType, d)
	}
	*t = ComponentType(i)
	return nil
}
