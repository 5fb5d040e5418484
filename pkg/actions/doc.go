// Package actions is the action-enablement model.
//
// An Asset holds named action maps. Each Map groups typed actions and can be
// enabled or disabled; subscribers are told about transitions synchronously.
// Maps correspond one-to-one with vendor action sets, and actions with vendor
// action handles.
//
// Assets are usually loaded from YAML:
//
//	maps:
//	  - name: gameplay
//	    actions:
//	      - name: fire
//	        type: Button
//	        binding: <Gamepad>/buttonSouth
//	      - name: look
//	        type: Stick
package actions
