package services

import "errors"

// Code is the machine-readable result code carried by every API response.
type Code string

const (
	CodeOK                  Code = "OK"
	CodeInvalidRequest      Code = "INVALID_REQUEST"
	CodeNoVocab             Code = "NO_VOCAB"
	CodeNoWord              Code = "NO_WORD"
	CodeNoStat              Code = "NO_STAT"
	CodeNoDefinition        Code = "NO_DEFINITION"
	CodeDuplicatedWord      Code = "DUPLICATED_WORD"
	CodeInternalServerError Code = "INTERNAL_SERVER_ERROR"
)

// Error is a business-rule failure. Compare with errors.Is against the
// sentinels below.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrNoVocab        = &Error{Code: CodeNoVocab, Message: "vocab not found"}
	ErrNoWord         = &Error{Code: CodeNoWord, Message: "word not found"}
	ErrNoStat         = &Error{Code: CodeNoStat, Message: "stat not found"}
	ErrNoDefinition   = &Error{Code: CodeNoDefinition, Message: "definition not linked to word"}
	ErrDuplicatedWord = &Error{Code: CodeDuplicatedWord, Message: "expression already exists in vocab"}

	ErrNoDictionary = errors.New("no dictionary client configured")
)

// CodeOf maps an error returned by this package to its response code.
// Errors that are not *Error are internal failures.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return CodeInternalServerError
}
