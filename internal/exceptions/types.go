package exceptions

import (
	"errors"
	"fmt"
)

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

func (se *ServiceError) Unwrap() error {
	return se.Cause
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

type ConflictError struct {
	Resource string
	Id       string
	Message  string
}

func (ce *ConflictError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return fmt.Sprintf("Found conflicting %s with id: %s", ce.Resource, ce.Id)
}

func (ce *ConflictError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 409,
		Cause:      ce,
	}
}

func Conflict(resource string, id string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Id:       id,
	}
}

// AlreadyInList is the conflict raised when a movie is added to a list twice.
func AlreadyInList(listId string, imdbId string) *ConflictError {
	return &ConflictError{
		Resource: "movie",
		Id:       imdbId,
		Message:  fmt.Sprintf("Movie %s already in list %s", imdbId, listId),
	}
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 404,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 400,
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

type UnauthorizedError struct {
	Message string
}

func (ue *UnauthorizedError) Error() string {
	return ue.Message
}

func (ue *UnauthorizedError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 401,
		Cause:      ue,
	}
}

func Unauthorized(message string) *UnauthorizedError {
	return &UnauthorizedError{
		Message: message,
	}
}

type ForbiddenError struct {
	Message string
}

func (fe *ForbiddenError) Error() string {
	return fe.Message
}

func (fe *ForbiddenError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 403,
		Cause:      fe,
	}
}

func Forbidden(message string) *ForbiddenError {
	return &ForbiddenError{
		Message: message,
	}
}

// BadGatewayError wraps a failure reported by an upstream provider.
type BadGatewayError struct {
	Provider string
	Message  string
}

func (be *BadGatewayError) Error() string {
	return fmt.Sprintf("%s failed: %s", be.Provider, be.Message)
}

func (be *BadGatewayError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 502,
		Cause:      be,
	}
}

func BadGateway(provider string, message string) *BadGatewayError {
	return &BadGatewayError{
		Provider: provider,
		Message:  message,
	}
}

func InternalServer(message string) *ServiceError {
	return &ServiceError{
		StatusCode: 500,
		Cause:      errors.New(message),
	}
}

// StatusCode resolves the HTTP status for any error in the chain, defaulting to 500.
func StatusCode(err error) int {
	var re RequestError
	if errors.As(err, &re) {
		return re.ToServiceError().StatusCode
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 500
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
