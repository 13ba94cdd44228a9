package dom

// Window is https://html.spec.whatwg.org/#the-window-object
// It owns the event loop's task queue and the active document.
type Window struct {
	Target

	document *Node
	tasks    *TaskQueue
}

// NewWindow creates a window with an empty task queue and a blank HTML
// document whose DefaultView is the window.
func NewWindow() *Window {
	w := &Window{tasks: NewTaskQueue()}
	w.SetDocument(NewHTMLDocument(""))
	return w
}

// Document returns the window's active document.
func (w *Window) Document() *Node {
	return w.document
}

// SetDocument makes doc the window's active document.
func (w *Window) SetDocument(doc *Node) {
	if w.document != nil && w.document.Document != nil {
		w.document.DefaultView = nil
	}
	w.document = doc
	if doc != nil && doc.Document != nil {
		doc.DefaultView = w
	}
}

func (w *Window) Tasks() *TaskQueue {
	return w.tasks
}

// SetTimeout queues fn to run on a later turn of the event loop.
func (w *Window) SetTimeout(fn func()) {
	w.tasks.Queue(fn)
}

func (w *Window) DispatchEvent(e *Event) bool {
	return dispatch(w, e)
}
