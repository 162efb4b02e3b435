// Package validation checks request payloads before any write reaches the store.
// Apart from the read-only Lookup queries, every function here is pure.
package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/Dan9191/task-service/internal/models"
)

// Lookup answers the existence questions validation needs
type Lookup interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

// ValidateTaskInput checks a task payload and returns it as a patch with owner_id
// normalized to an integer.
func ValidateTaskInput(ctx context.Context, lookup Lookup, in models.TaskInput, requireAll, checkOwner bool) (models.TaskPatch, error) {
	if requireAll {
		fields := []field{
			{"title", in.Title.Present, falsy(in.Title)},
			{"owner_id", in.OwnerID.Present, falsy(in.OwnerID)},
		}
		if err := checkRequired(fields); err != nil {
			return models.TaskPatch{}, err
		}
	}

	var patch models.TaskPatch
	var err error
	if patch.Title, err = stringField("title", in.Title); err != nil {
		return models.TaskPatch{}, err
	}
	if patch.Description, err = stringField("description", in.Description); err != nil {
		return models.TaskPatch{}, err
	}
	if patch.Status, err = stringField("status", in.Status); err != nil {
		return models.TaskPatch{}, err
	}
	patch.ClearDescription = in.Description.Null

	if in.OwnerID.Present && checkOwner {
		ownerID, ok := coerceInt(in.OwnerID.Value)
		if in.OwnerID.Null || !ok {
			return models.TaskPatch{}, apperr.Validation(apperr.ErrInvalidOwnerID, "owner_id must be a valid integer")
		}
		exists, err := lookup.UserExists(ctx, ownerID)
		if err != nil {
			return models.TaskPatch{}, apperr.Storage(err)
		}
		if !exists {
			return models.TaskPatch{}, apperr.Validation(apperr.ErrOwnerNotFound, "User with id %d does not exist", ownerID)
		}
		patch.OwnerID = &ownerID
	}

	return patch, nil
}

// ValidateUserInput checks a user payload. Both username and password are
// required on every call, including updates.
func ValidateUserInput(ctx context.Context, lookup Lookup, in models.UserInput, checkUnique bool) (models.UserPatch, error) {
	fields := []field{
		{"username", in.Username.Present, falsy(in.Username)},
		{"password", in.Password.Present, falsy(in.Password)},
	}
	if err := checkRequired(fields); err != nil {
		return models.UserPatch{}, err
	}

	username, err := stringField("username", in.Username)
	if err != nil {
		return models.UserPatch{}, err
	}
	password, err := stringField("password", in.Password)
	if err != nil {
		return models.UserPatch{}, err
	}

	if checkUnique {
		taken, err := lookup.UsernameTaken(ctx, *username)
		if err != nil {
			return models.UserPatch{}, apperr.Storage(err)
		}
		if taken {
			return models.UserPatch{}, apperr.DuplicateUsername(*username)
		}
	}

	return models.UserPatch{Username: username, Password: password}, nil
}

// ValidateLogin only checks that both credentials were sent. Credentials that
// are not strings can never match a user.
func ValidateLogin(in models.LoginInput) (username, password string, err error) {
	if !in.Username.Present || !in.Password.Present {
		return "", "", apperr.Validation(apperr.ErrMissingFields, "Username and password are required")
	}
	username, okUser := StringValue(in.Username.Value)
	password, okPass := StringValue(in.Password.Value)
	if in.Username.Null || in.Password.Null || !okUser || !okPass {
		return "", "", apperr.InvalidCredentials()
	}
	return username, password, nil
}

// MalformedBody is returned when a request body is not a JSON object.
func MalformedBody() error {
	return apperr.Validation(apperr.ErrMalformedBody, "Request body must be a valid JSON object")
}

type field struct {
	name    string
	present bool
	falsy   bool
}

func checkRequired(fields []field) error {
	var missing, empty []string
	for _, f := range fields {
		switch {
		case !f.present:
			missing = append(missing, f.name)
		case f.falsy:
			empty = append(empty, f.name)
		}
	}
	if len(missing) > 0 {
		return apperr.Validation(apperr.ErrMissingFields, "Missing required fields: %s", strings.Join(missing, ", "))
	}
	if len(empty) > 0 {
		return apperr.Validation(apperr.ErrEmptyFields, "Fields cannot be empty: %s", strings.Join(empty, ", "))
	}
	return nil
}

func falsy(f models.Field) bool {
	return f.Null || rawFalsy(f.Value)
}

// stringField returns nil for an absent or null field, and rejects values that
// are not JSON strings.
func stringField(name string, f models.Field) (*string, error) {
	if !f.Present || f.Null {
		return nil, nil
	}
	s, ok := StringValue(f.Value)
	if !ok {
		return nil, apperr.Validation(apperr.ErrInvalidInput, "%s must be a string", name)
	}
	return &s, nil
}

// StringValue decodes raw when it holds a JSON string.
func StringValue(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawFalsy reports whether a JSON value is null, false, zero, or empty.
func rawFalsy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0:
		return true
	case bytes.Equal(raw, []byte("null")), bytes.Equal(raw, []byte("false")):
		return true
	case raw[0] == '"':
		var s string
		return json.Unmarshal(raw, &s) == nil && s == ""
	case raw[0] == '[':
		var v []any
		return json.Unmarshal(raw, &v) == nil && len(v) == 0
	case raw[0] == '{':
		var v map[string]any
		return json.Unmarshal(raw, &v) == nil && len(v) == 0
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && f == 0
}

// coerceInt accepts JSON integers, whole-valued numbers, and numeric strings.
func coerceInt(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n, err == nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
