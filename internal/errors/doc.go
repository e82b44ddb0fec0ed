// Package errors provides the structured diagnostics used across vtree.
//
// Every condition the engine can report, fatal or not, has a registered code
// that maps to a category, a severity, a short message and a longer detail.
// Fatal conditions (bad element types, hooks called outside a render) are
// raised as *Error values; recoverable ones (missing keys, hook count drift,
// runaway re-renders) are logged through log/slog and execution continues.
//
// # Codes
//
//   - V001-V009: API misuse (fatal)
//   - V010-V019: list keys
//   - V020-V029: hooks and the render loop
//   - V030-V039: presentation backend
//   - V040-V049: configuration
//   - V050-V059: snapshot stores
//   - V060-V069: CLI
//
// # Usage
//
//	err := errors.New(errors.CodeMissingKey).
//	    WithComponent("<TodoList>").
//	    WithSuggestion("Pass a unique key prop to every item")
//
//	fmt.Println(err.Format())
//	// Output:
//	// WARNING V010: Missing key in list
//	//
//	//   <TodoList>
//	//
//	//   All elements in a list should have a unique key prop assigned to them.
//	//
//	//   Hint: Pass a unique key prop to every item
package errors
