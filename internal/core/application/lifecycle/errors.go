package lifecycle

// ErrorKind classifies why a status change attempt failed.
// All kinds are terminal for the current attempt: there is no automatic
// retry, and none of them mutate the order or its history.
type ErrorKind int

const (
	// KindPolicyRejection: the transition is illegal given locally known
	// state. Detected before any call to the authoritative store.
	KindPolicyRejection ErrorKind = iota + 1

	// KindServerRejection: the authoritative store refused the transition,
	// e.g. it observed a newer status than the local cache. The reason is
	// the server's, verbatim.
	KindServerRejection

	// KindTransportFailure: the request could not complete at all.
	// Distinct from a rejection: the server never said no.
	KindTransportFailure

	// KindConcurrentAttemptRejected: a status change for this order is
	// already in flight; the second request is refused, not queued.
	KindConcurrentAttemptRejected
)

// String returns the kind's name for logs.
func (k ErrorKind) String() string {
	switch k {
	case KindPolicyRejection:
		return "policy_rejection"
	case KindServerRejection:
		return "server_rejection"
	case KindTransportFailure:
		return "transport_failure"
	case KindConcurrentAttemptRejected:
		return "concurrent_attempt_rejected"
	default:
		return "unknown"
	}
}

// Stable reasons for failures the coordinator detects itself.
const (
	ReasonAttemptInProgress = "a status change request is already in progress for this order"
	ReasonUnreachable       = "could not reach server"
)

// TransitionError is the failure result of a status change attempt.
// Reason carries the operator-facing text; for server rejections it is the
// store's reason verbatim, never paraphrased.
type TransitionError struct {
	Kind   ErrorKind
	Reason string
	Cause  error
}

func (e *TransitionError) Error() string {
	return e.Reason
}

func (e *TransitionError) Unwrap() error {
	return e.Cause
}

// IsPolicyRejection reports whether the attempt was rejected by the local pre-check.
func (e *TransitionError) IsPolicyRejection() bool {
	return e != nil && e.Kind == KindPolicyRejection
}

// IsServerRejection reports whether the authoritative store refused the attempt.
func (e *TransitionError) IsServerRejection() bool {
	return e != nil && e.Kind == KindServerRejection
}

// IsTransportFailure reports whether the attempt never reached a verdict.
func (e *TransitionError) IsTransportFailure() bool {
	return e != nil && e.Kind == KindTransportFailure
}

// IsConcurrentAttemptRejected reports whether another attempt was already in flight.
func (e *TransitionError) IsConcurrentAttemptRejected() bool {
	return e != nil && e.Kind == KindConcurrentAttemptRejected
}
