package view

import (
	"errors"
	"strings"

	"github.com/c14220110/radiology-client/pkg/apiclient"
)

// RequireFields gathers the named inputs from the section, trimmed, and
// fails with a ValidationError on the first empty one. Nothing is sent to
// the server when validation fails.
func (sec *Section) RequireFields(names ...string) (map[string]string, error) {
	values := make(map[string]string, len(names))
	for _, name := range names {
		value := strings.TrimSpace(sec.Field(name))
		if value == "" {
			return nil, &apiclient.ValidationError{Field: name}
		}
		values[name] = value
	}
	return values, nil
}

// ErrorMessage converts a failure into the text shown in the UI.
func ErrorMessage(err error) string {
	var vErr *apiclient.ValidationError
	if errors.As(err, &vErr) {
		return "Please fill all required fields (" + vErr.Field + ")."
	}
	var nErr *apiclient.NetworkError
	if errors.As(err, &nErr) {
		return "Cannot reach server. Check your connection."
	}
	return err.Error()
}
