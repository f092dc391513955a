package validation

import "sort"

// FieldForm is the key used when an error belongs to the form as a whole.
const FieldForm = "form"

var fieldOrder = map[string]int{
	FieldUsername:        0,
	FieldEmail:           1,
	FieldPassword:        2,
	FieldConfirmPassword: 3,
	FieldForm:            4,
}

// FieldErrors maps a field name to a human-readable message. A key is present
// only while that field is invalid.
type FieldErrors map[string]string

// Empty reports whether no field is invalid.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Has reports whether field currently has an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Get returns the message for field, or "" when it is valid.
func (fe FieldErrors) Get(field string) string { return fe[field] }

// Fields returns the invalid field names in form order.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		oi, iok := fieldOrder[fields[i]]
		oj, jok := fieldOrder[fields[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return fields[i] < fields[j]
		}
	})
	return fields
}

// Messages returns every message in form order.
func (fe FieldErrors) Messages() []string {
	msgs := make([]string, 0, len(fe))
	for _, f := range fe.Fields() {
		msgs = append(msgs, fe[f])
	}
	return msgs
}
