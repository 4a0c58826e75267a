// Package errors defines the typed errors used across Seeker.
// Filesystem, configuration, storage and input failures each get their own
// type so callers can log them with structured fields and test for a kind
// without string matching.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Re-exported from the standard errors package.
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// ErrorKind classifies an application error.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// filesystem
	FileNotFound
	FileAccessDenied
	InvalidPath
	FileCreateFailed
	FileOperationFailed
	InvalidOperation
	// configuration
	InvalidConfig
	ConfigNotFound
	ConfigNotSet
	FileAlreadyExists
	// storage
	DatabaseConnectionFailed
	DatabaseQueryFailed
	DatabaseOperationFailed
	InvalidInputData
)

var kindNames = map[ErrorKind]string{
	Unknown:                  "unknown",
	FileNotFound:             "file_not_found",
	FileAccessDenied:         "file_access_denied",
	InvalidPath:              "invalid_path",
	FileCreateFailed:         "file_create_failed",
	FileOperationFailed:      "file_operation_failed",
	InvalidOperation:         "invalid_operation",
	InvalidConfig:            "invalid_config",
	ConfigNotFound:           "config_not_found",
	ConfigNotSet:             "config_not_set",
	FileAlreadyExists:        "file_already_exists",
	DatabaseConnectionFailed: "database_connection_failed",
	DatabaseQueryFailed:      "database_query_failed",
	DatabaseOperationFailed:  "database_operation_failed",
	InvalidInputData:         "invalid_input_data",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel values for the common cases. errors.Is(err, ErrFileNotFound)
// holds for any error in the chain with the FileNotFound kind.
var (
	ErrFileNotFound      = sentinel(NewFileError("file not found", "", FileNotFound, nil))
	ErrFileAccess        = sentinel(NewFileError("file access denied", "", FileAccessDenied, nil))
	ErrFileExists        = sentinel(NewFileError("file already exists", "", FileAlreadyExists, nil))
	ErrInvalidPath       = sentinel(NewFileError("invalid file path", "", InvalidPath, nil))
	ErrInvalidConfig     = sentinel(NewConfigError("invalid configuration", "", InvalidConfig, nil))
	ErrDatabaseOperation = sentinel(NewDatabaseError("database operation failed", nil))
	ErrInvalidInput      = sentinel(NewInvalidInputError("invalid input data", nil))
)

func sentinel[E interface{ markSentinel() }](e E) E {
	e.markSentinel()
	return e
}

// ApplicationError is embedded by every typed error in this package.
type ApplicationError struct {
	msg      string
	err      error
	kind     ErrorKind
	sentinel bool
}

func (e *ApplicationError) markSentinel() { e.sentinel = true }

func (e *ApplicationError) sentinelKind() (ErrorKind, bool) { return e.kind, e.sentinel }

// Is reports whether target is the sentinel for e's kind.
func (e *ApplicationError) Is(target error) bool {
	t, ok := target.(interface{ sentinelKind() (ErrorKind, bool) })
	if !ok {
		return false
	}
	kind, isSentinel := t.sentinelKind()
	return isSentinel && kind == e.kind
}

func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *ApplicationError) Unwrap() error {
	return e.err
}

func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// qualified renders "msg: qualifier[: cause]", or the plain message when
// there is no qualifier.
func (e *ApplicationError) qualified(qualifier string) string {
	if qualifier == "" {
		return e.Error()
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.msg, qualifier, e.err)
	}
	return fmt.Sprintf("%s: %s", e.msg, qualifier)
}

// FileError is a failure tied to a filesystem path.
type FileError struct {
	ApplicationError
	path string
}

func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		path:             path,
	}
}

func (e *FileError) Error() string {
	return e.qualified(e.path)
}

// Path returns the path the operation was working on.
func (e *FileError) Path() string {
	return e.path
}

// FromOS converts an error returned by the os package into a FileError whose
// kind reflects the underlying cause. A nil err yields nil.
func FromOS(msg, path string, err error) error {
	if err == nil {
		return nil
	}
	kind := FileOperationFailed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = FileNotFound
	case errors.Is(err, fs.ErrExist):
		kind = FileAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		kind = FileAccessDenied
	case errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.ENAMETOOLONG), errors.Is(err, fs.ErrInvalid):
		kind = InvalidPath
	}
	return NewFileError(msg, path, kind, err)
}

// ConfigError is a failure tied to a configuration parameter.
type ConfigError struct {
	ApplicationError
	param string
}

func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		param:            param,
	}
}

func (e *ConfigError) Error() string {
	return e.qualified(e.param)
}

// Param returns the offending configuration key.
func (e *ConfigError) Param() string {
	return e.param
}

// DatabaseError is a failure of the project store.
type DatabaseError struct {
	ApplicationError
	operation string
	context   map[string]interface{}
}

func NewDatabaseError(msg string, err error) *DatabaseError {
	return &DatabaseError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: DatabaseOperationFailed},
		context:          make(map[string]interface{}),
	}
}

// WithOperation names the statement or step that failed.
func (e *DatabaseError) WithOperation(operation string) *DatabaseError {
	e.operation = operation
	return e
}

// WithKind overrides the default DatabaseOperationFailed kind.
func (e *DatabaseError) WithKind(kind ErrorKind) *DatabaseError {
	e.kind = kind
	return e
}

func (e *DatabaseError) WithContext(key string, value interface{}) *DatabaseError {
	e.context[key] = value
	return e
}

func (e *DatabaseError) Error() string {
	if e.operation == "" {
		return e.ApplicationError.Error()
	}
	return e.qualified("operation=" + e.operation)
}

func (e *DatabaseError) Operation() string {
	return e.operation
}

func (e *DatabaseError) Context() map[string]interface{} {
	return e.context
}

// InvalidInputError is returned when caller supplied data is rejected.
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: InvalidInputData},
		context:          make(map[string]interface{}),
	}
}

func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}

func New(msg string) error {
	return &ApplicationError{msg: msg, kind: Unknown}
}

func Newf(format string, args ...interface{}) error {
	return &ApplicationError{msg: fmt.Sprintf(format, args...), kind: Unknown}
}

// Wrap annotates err with msg. Wrapping nil returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: msg, err: err, kind: Unknown}
}

func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: fmt.Sprintf(format, args...), err: err, kind: Unknown}
}

// KindOf returns the kind of the first application error in err's chain
// that carries one other than Unknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

func IsFileNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

func IsFileAccessDenied(err error) bool {
	return errors.Is(err, ErrFileAccess)
}

func IsFileAlreadyExists(err error) bool {
	return errors.Is(err, ErrFileExists)
}

func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}

func IsInvalidInputError(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}
