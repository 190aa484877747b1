package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t, &DuplicateKeyError{Kind: KeyTemplate, Name: "T1"}, `duplicate template name "T1"`)
	assert.EqualError(t,
		&UnresolvedReferenceError{Kind: KeyGroup, Name: "G9", Group: "C1", Entry: 3},
		`group "C1" entry 3 references unknown group "G9"`)
	assert.EqualError(t,
		&InvalidValueError{Field: "prob", Value: "x", Err: errors.New("bad")},
		`invalid prob "x": bad`)
}

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", &DuplicateKeyError{Kind: KeyGroup, Name: "G"})
	assert.True(t, IsDuplicateKey(wrapped))
	assert.False(t, IsUnresolvedReference(wrapped))
	assert.False(t, IsMalformedEntry(wrapped))

	inner := &InvalidValueError{Field: "count", Value: "z", Err: errors.New("bad")}
	malformed := &MalformedEntryError{Group: "G", Entry: 0, Err: inner}
	var ve *InvalidValueError
	assert.ErrorAs(t, malformed, &ve)
	assert.Same(t, inner, ve)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Reason: ReasonDuplicateItem, Group: "G1", Entry: 2, Name: "apple", Detail: "skipped"}
	assert.Equal(t, `duplicate_item: group "G1" entry 2: apple (skipped)`, d.String())

	doc := Diagnostic{Reason: ReasonExtraProbTemplateBlock, Entry: -1, Name: "block 1", Detail: "3 templates ignored"}
	assert.Equal(t, "extra_prob_template_block: block 1 (3 templates ignored)", doc.String())
}
