// Package engine defines the contract of the text-editing engine hosted by
// the binding.
//
// The engine itself is an external collaborator. It is loaded once per
// process (see package loader) and supplies:
//
//	Engine         - entry point: model registry, editor factories, theming
//	ModelRegistry  - URI-addressed lookup and creation of models
//	Model          - shared, disposable text resource
//	Editor         - a view onto one model with undoable edits
//	DiffEditor     - original/modified pair of models
//
// Package textengine provides an in-memory implementation.
package engine
