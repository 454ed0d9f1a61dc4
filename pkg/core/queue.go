package core

import (
	"reflect"
	"time"

	"github.com/go-drift/retained/pkg/errors"
	"github.com/go-drift/retained/pkg/graph"
)

// Listener receives payloads delivered to the node it was registered on.
type Listener func(payload any, ctx *ListenerCtx)

// CommandListener receives host commands such as menu selections.
type CommandListener func(cmd uint32, ctx *ListenerCtx)

type itemKind int

const (
	itemEvent itemKind = iota
	itemAddListener
	itemClearListeners
)

type queueItem struct {
	kind     itemKind
	id       graph.ID
	payload  any
	listener Listener
}

// AddListener registers fn to receive payloads of type T delivered to node.
// Registration is deferred until the event queue is next drained. A payload
// of any other type is reported as a dispatch error and otherwise ignored.
func AddListener[T any](ui *Ui, node graph.ID, fn func(payload T, ctx *ListenerCtx)) {
	ui.AddListenerFunc(node, func(payload any, ctx *ListenerCtx) {
		v, ok := payload.(T)
		if !ok {
			errors.Report(&errors.UIError{
				Op:   "core.AddListener",
				Kind: errors.KindDispatch,
				Err: &errors.TypeMismatchError{
					Want: reflect.TypeFor[T]().String(),
					Got:  payload,
				},
				Timestamp: time.Now(),
			})
			return
		}
		fn(v, ctx)
	})
}
