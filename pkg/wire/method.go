package wire

// Method identifies the gateway operation of a request.
type Method uint8

const (
	MethodRunFrame                     Method = 1
	MethodConnectedControllers         Method = 2
	MethodActionSetHandle              Method = 3
	MethodDigitalActionHandle          Method = 4
	MethodAnalogActionHandle           Method = 5
	MethodDigitalActionData            Method = 6
	MethodAnalogActionData             Method = 7
	MethodActivateActionSet            Method = 8
	MethodCurrentActionSet             Method = 9
	MethodActivateActionSetLayer       Method = 10
	MethodDeactivateActionSetLayer     Method = 11
	MethodDeactivateAllActionSetLayers Method = 12
	MethodActiveActionSetLayers        Method = 13
	MethodControllerProduct            Method = 14
)

var methodNames = map[Method]string{
	MethodRunFrame:                     "RunFrame",
	MethodConnectedControllers:         "ConnectedControllers",
	MethodActionSetHandle:              "ActionSetHandle",
	MethodDigitalActionHandle:          "DigitalActionHandle",
	MethodAnalogActionHandle:           "AnalogActionHandle",
	MethodDigitalActionData:            "DigitalActionData",
	MethodAnalogActionData:             "AnalogActionData",
	MethodActivateActionSet:            "ActivateActionSet",
	MethodCurrentActionSet:             "CurrentActionSet",
	MethodActivateActionSetLayer:       "ActivateActionSetLayer",
	MethodDeactivateActionSetLayer:     "DeactivateActionSetLayer",
	MethodDeactivateAllActionSetLayers: "DeactivateAllActionSetLayers",
	MethodActiveActionSetLayers:        "ActiveActionSetLayers",
	MethodControllerProduct:            "ControllerProduct",
}

// String returns the gateway method name.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid returns true if the method is known.
func (m Method) IsValid() bool {
	_, ok := methodNames[m]
	return ok
}
