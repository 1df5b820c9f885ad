package auth

import "errors"

// Code classifies an authentication failure.
type Code string

const (
	CodeMissingFields     Code = "missing-fields"
	CodePasswordMismatch  Code = "password-mismatch"
	CodePasswordTooShort  Code = "password-too-short"
	CodeInvalidCredential Code = "invalid-credential"
	CodeInvalidEmail      Code = "invalid-email"
	CodeUserDisabled      Code = "user-disabled"
	CodeEmailInUse        Code = "email-already-in-use"
	CodeWeakPassword      Code = "weak-password"
	CodeSessionExpired    Code = "session-expired"
	CodeUnknown           Code = "unknown"
)

// Error is an authentication failure with a user-facing message.
type Error struct {
	Code Code
	// Op is "login" or "signup"; it selects the generic message.
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the text shown to the user.
func (e *Error) Message() string {
	switch e.Code {
	case CodeMissingFields:
		if e.Op == opLogin {
			return "Email and password are required."
		}
		return "All fields are required."
	case CodePasswordMismatch:
		return "Passwords do not match."
	case CodePasswordTooShort:
		return "Password should be at least 6 characters long."
	case CodeInvalidCredential:
		return "Invalid email or password."
	case CodeInvalidEmail:
		return "The email address is not valid."
	case CodeUserDisabled:
		return "This user account has been disabled."
	case CodeEmailInUse:
		return "This email address is already in use."
	case CodeWeakPassword:
		return "The password is too weak. Please choose a stronger password."
	case CodeSessionExpired:
		return "Your session has expired. Please sign in again."
	}
	if e.Op == opSignup {
		return "Failed to create account. Please try again."
	}
	return "Failed to sign in. Please try again."
}

// Message renders any error from this package for display.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message()
	}
	return (&Error{Code: CodeUnknown}).Message()
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
