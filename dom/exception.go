package dom

import (
	"fmt"

	"github.com/pkg/errors"
)

// DOMException names used by this package.
// https://webidl.spec.whatwg.org/#idl-DOMException-error-names
const (
	HierarchyRequestError = "HierarchyRequestError"
	InvalidCharacterError = "InvalidCharacterError"
	NotFoundError         = "NotFoundError"
	NotSupportedError     = "NotSupportedError"
	SyntaxError           = "SyntaxError"
	InvalidStateError     = "InvalidStateError"
)

// DOMException is https://webidl.spec.whatwg.org/#idl-DOMException
type DOMException struct {
	Name    string
	Message string
}

func (e *DOMException) Error() string {
	return e.Name + ": " + e.Message
}

func newDOMException(name, format string, args ...interface{}) error {
	return errors.WithStack(&DOMException{
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	})
}

// IsDOMException reports whether err was caused by a DOMException with the given name.
func IsDOMException(err error, name string) bool {
	e, ok := errors.Cause(err).(*DOMException)
	return ok && e.Name == name
}
