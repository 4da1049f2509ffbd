// Package remotedata ofrece un contenedor de tres estados para representar
// una petición asíncrona en vuelo: Empty → Loading → Valid.
package remotedata

// State estado del ciclo de vida del contenedor.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateValid
)

// String nombre legible del estado.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateValid:
		return "valid"
	}
	return "unknown"
}

// RemoteData máquina de estados de un solo uso por petición lógica:
// Empty --StartLoading--> Loading --FinishLoading(v)--> Valid(v).
// Valid es terminal; una nueva petición construye una nueva instancia.
// Sin control de concurrencia propio: los callers serializan transiciones.
type RemoteData[T any] struct {
	state State
	data  T
}

// Empty construye el contenedor en estado inicial, sin dato.
func Empty[T any]() *RemoteData[T] {
	return &RemoteData[T]{state: StateEmpty}
}

// StartLoading marca la petición como en vuelo. Solo transiciona desde Empty;
// en cualquier otro estado es un no-op (Valid es terminal).
func (d *RemoteData[T]) StartLoading() {
	if d.state == StateEmpty {
		d.state = StateLoading
	}
}

// FinishLoading completa la petición con su valor. Solo transiciona desde
// Loading; en cualquier otro estado es un no-op.
func (d *RemoteData[T]) FinishLoading(value T) {
	if d.state == StateLoading {
		d.data = value
		d.state = StateValid
	}
}

// State devuelve el estado actual.
func (d *RemoteData[T]) State() State { return d.state }

// Data devuelve el valor y true solo cuando el estado es Valid.
func (d *RemoteData[T]) Data() (T, bool) {
	if d.state != StateValid {
		var zero T
		return zero, false
	}
	return d.data, true
}
