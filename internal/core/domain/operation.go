package domain

// Status is the lifecycle stage of an asynchronous call.
type Status int

const (
	// StatusIdle means nothing has been requested yet, or the state was reset.
	StatusIdle Status = iota
	// StatusPending means a request is in flight.
	StatusPending
	// StatusSuccess means the last request succeeded.
	StatusSuccess
	// StatusFailure means the last request failed.
	StatusFailure
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Operation is an immutable record of one tracked call.
// Transitions return a new record and never modify the receiver.
type Operation[T any] struct {
	Status Status
	Data   *T
	Err    string
}

// Pending returns the state of a call that has just started.
// Previous data is kept and the error is cleared.
func (o Operation[T]) Pending() Operation[T] {
	return Operation[T]{Status: StatusPending, Data: o.Data}
}

// Succeeded returns the state after a successful call.
func (o Operation[T]) Succeeded(data T) Operation[T] {
	return Operation[T]{Status: StatusSuccess, Data: &data}
}

// Failed returns the state after a failed call. Previous data is kept.
func (o Operation[T]) Failed(msg string) Operation[T] {
	return Operation[T]{Status: StatusFailure, Data: o.Data, Err: msg}
}

// WithData replaces the data and clears the error without a request.
// A pending call stays pending.
func (o Operation[T]) WithData(data T) Operation[T] {
	status := StatusSuccess
	if o.InFlight() {
		status = StatusPending
	}
	return Operation[T]{Status: status, Data: &data}
}

// Reset returns the initial state.
func (o Operation[T]) Reset() Operation[T] {
	return Operation[T]{}
}

// InFlight reports whether a call is pending.
func (o Operation[T]) InFlight() bool {
	return o.Status == StatusPending
}

// HasError reports whether the last call failed.
func (o Operation[T]) HasError() bool {
	return o.Err != ""
}
