// Package survey is the answer-state and validation engine behind a survey
// session: the partial answer store, step navigation, the per-question-type
// completeness rules and the transform from answers to a submission payload.
//
// Everything here is synchronous and free of I/O. State types are values
// whose setters return the next state, so a Session can be copied, compared
// and tested without any global reset.
package survey
