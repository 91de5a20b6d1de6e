// Package validator compiles JSON Schema documents into reusable validators.
//
// Validation normalizes the input in place while it checks it:
//
//   - type coercion in "array" mode (strings to numbers/booleans, scalars to
//     single-element arrays and back),
//   - default filling for absent properties and tuple items (UseDefaults),
//   - removal of properties rejected by "additionalProperties": false
//     (RemoveAdditional).
//
// Every Factory registers three custom keywords: isNotEmpty (strings),
// isNotEmptyArray (arrays) and isPassword (strings). More can be added with
// Factory.AddKeyword.
//
// Typical usage:
//
//	f := validator.NewFactory()
//	v, err := f.Compile(schema)
//	entity, err := v.Validate(map[string]any{"firstName": ""})
//	if ve, ok := validator.AsEntityError(err); ok {
//		fmt.Println(ve.Fields["firstName"])
//	}
package validator
