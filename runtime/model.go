package runtime

import (
	"github.com/wippyai/editorbind/engine"
	"github.com/wippyai/editorbind/resource"
)

// GetOrCreateModel returns the model at path, creating it with value and
// language when it does not exist. An empty path always creates a new
// anonymous model.
func GetOrCreateModel(models engine.ModelRegistry, value, language, path string) engine.Model {
	if path != "" {
		if m, ok := models.GetModel(path); ok {
			return m
		}
	}
	return models.CreateModel(value, language, path)
}

// acquireModel returns the model for path registered with tr, pinned when
// keepAlive is set. A shared model that another scope is disposing is
// replaced by a fresh one at the same path.
func acquireModel(tr *resource.Tracker, models engine.ModelRegistry, value, language, path string, keepAlive bool) engine.Model {
	m := GetOrCreateModel(models, value, language, path)
	if err := tr.Register(m); err != nil {
		m = models.CreateModel(value, language, path)
		_ = tr.Register(m)
	}
	if keepAlive {
		tr.Pin(m)
	}
	return m
}

// SetEditorValue replaces the editor's text. On writable editors the change is
// a single edit followed by an undo stop, so it can be undone like typing.
func SetEditorValue(ed engine.Editor, value string) {
	if ed.ReadOnly() {
		ed.SetValue(value)
		return
	}
	m := ed.Model()
	if m == nil {
		return
	}
	ed.ExecuteEdits("", []engine.Edit{{
		Range:            m.FullRange(),
		Text:             value,
		ForceMoveMarkers: true,
	}})
	ed.PushUndoStop()
}
