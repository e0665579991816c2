package survey

import (
	"bytes"
	"encoding/json"
)

// AnswerStore holds the partial answer of each question, keyed by question id.
//
// The store is a value: setters return the next store and leave the receiver
// untouched, so a caller holding an older store keeps seeing the old state.
// Insertion order is remembered; re-setting an existing id keeps its slot,
// clearing an id releases it.
type AnswerStore struct {
	values map[string]Answer
	order  []string
}

// NewAnswerStore returns an empty store.
func NewAnswerStore() AnswerStore {
	return AnswerStore{values: map[string]Answer{}}
}

// Get returns the stored answer. The boolean is false when the question is unanswered.
func (s AnswerStore) Get(questionID string) (Answer, bool) {
	a, ok := s.values[questionID]
	return a, ok
}

// Set replaces the answer for questionID wholesale. A nil answer clears it.
// Any value is accepted, including shapes that do not match the question type.
func (s AnswerStore) Set(questionID string, a Answer) AnswerStore {
	if a == nil {
		return s.Clear(questionID)
	}

	next := s.clone()
	if _, exists := next.values[questionID]; !exists {
		next.order = append(next.order, questionID)
	}
	next.values[questionID] = a
	return next
}

// Clear removes the answer for questionID.
func (s AnswerStore) Clear(questionID string) AnswerStore {
	if _, exists := s.values[questionID]; !exists {
		return s
	}

	next := s.clone()
	delete(next.values, questionID)
	for i, id := range next.order {
		if id == questionID {
			next.order = append(next.order[:i], next.order[i+1:]...)
			break
		}
	}
	return next
}

// Len returns the number of stored answers.
func (s AnswerStore) Len() int {
	return len(s.order)
}

// IDs returns the answered question ids in insertion order.
func (s AnswerStore) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Retain drops answers whose question is not part of the catalog.
func (s AnswerStore) Retain(catalog Catalog) AnswerStore {
	next := s
	for _, id := range s.order {
		if _, ok := catalog.Question(id); !ok {
			next = next.Clear(id)
		}
	}
	return next
}

// MarshalJSON encodes the store as an object in insertion order.
func (s AnswerStore) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.values[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s AnswerStore) clone() AnswerStore {
	next := AnswerStore{
		values: make(map[string]Answer, len(s.values)+1),
		order:  make([]string, len(s.order), len(s.order)+1),
	}
	for k, v := range s.values {
		next.values[k] = v
	}
	copy(next.order, s.order)
	return next
}
