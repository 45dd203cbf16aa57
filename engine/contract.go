package engine

// Position is a 1-based line/column location in a model.
type Position struct {
	Line   int
	Column int
}

// Range is a span of text between two positions, end exclusive.
type Range struct {
	Start Position
	End   Position
}

// Edit replaces the text in Range with Text.
type Edit struct {
	Text  string
	Range Range
	// ForceMoveMarkers moves cursors and decorations at the range end along
	// with the inserted text.
	ForceMoveMarkers bool
}

// Model is an editable text resource owned by the engine.
//
// Models are shared: several editors may display the same model. Identity
// is stable for the model's lifetime so models can be reference counted.
type Model interface {
	ID() string
	// URI is empty for anonymous models.
	URI() string
	Identity() string
	Value() string
	SetValue(value string)
	Language() string
	FullRange() Range
	Dispose()
	IsDisposed() bool
}

// ModelRegistry looks up and creates models by URI.
type ModelRegistry interface {
	// GetModel returns the live model registered under uri.
	GetModel(uri string) (Model, bool)
	// CreateModel creates a model. An empty uri creates an anonymous model.
	CreateModel(value, language, uri string) Model
}

// EditorOptions are the construction options shared by editors.
type EditorOptions struct {
	Model    Model
	Theme    string
	ReadOnly bool
}

// Editor is a single view onto a model.
type Editor interface {
	Model() Model
	SetModel(m Model)
	Value() string
	SetValue(value string)
	ReadOnly() bool
	SetReadOnly(readOnly bool)
	// ExecuteEdits applies edits as one undoable operation and reports
	// whether they were applied.
	ExecuteEdits(source string, edits []Edit) bool
	// PushUndoStop closes the current undo group.
	PushUndoStop()
	Undo() bool
	// OnDidChangeContent registers fn for changes to the displayed model.
	OnDidChangeContent(fn func()) (unsubscribe func())
	Dispose()
}

// DiffEditor shows two models side by side.
type DiffEditor interface {
	SetModels(original, modified Model)
	Original() Model
	Modified() Model
	// ModifiedEditor is the editable side of the diff.
	ModifiedEditor() Editor
	OnDidUpdateDiff(fn func()) (unsubscribe func())
	Dispose()
}

// Engine is the loaded editing engine.
type Engine interface {
	Models() ModelRegistry
	CreateEditor(opts EditorOptions) Editor
	CreateDiffEditor(opts EditorOptions) DiffEditor
	SetTheme(theme string)
	Theme() string
	SetModelLanguage(m Model, language string)
}
