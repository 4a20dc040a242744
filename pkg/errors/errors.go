package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

// Pre-submission business rules are refused locally; post-call codes come from
// interpreting the store API's response; transport codes come from classifying
// failures of the call itself.
const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeInternal   Code = "INTERNAL_ERROR"

	CodeNoConnection      Code = "NO_CONNECTION"
	CodeEmptyCart         Code = "EMPTY_CART"
	CodeMissingFields     Code = "MISSING_FIELDS"
	CodeAlreadyInProgress Code = "ALREADY_IN_PROGRESS"

	CodeNoResponse       Code = "NO_RESPONSE"
	CodeRejectedByServer Code = "REJECTED_BY_SERVER"
	CodeUnconfirmed      Code = "UNCONFIRMED"

	CodeConnectionError Code = "CONNECTION_ERROR"
	CodeServerError     Code = "SERVER_ERROR"
	CodeInvalidRequest  Code = "INVALID_REQUEST"
	CodeNotAuthorized   Code = "NOT_AUTHORIZED"
	CodeUnknown         Code = "UNKNOWN"
)

type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		HTTPStatus:     http.StatusNotFound,
		Retryable:      false,
		PublicMessage:  "resource not found",
		DetailsAllowed: false,
	},
	CodeInternal: {
		HTTPStatus:     http.StatusInternalServerError,
		Retryable:      true,
		PublicMessage:  "internal server error",
		DetailsAllowed: false,
	},
	CodeNoConnection: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "no connection to the store. Please check your network and try again",
		DetailsAllowed: false,
	},
	CodeEmptyCart: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "cart is empty",
		DetailsAllowed: false,
	},
	CodeMissingFields: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		Retryable:      false,
		PublicMessage:  "please fill in all required fields",
		DetailsAllowed: true,
	},
	CodeAlreadyInProgress: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "order is already being processed",
		DetailsAllowed: false,
	},
	CodeNoResponse: {
		HTTPStatus:     http.StatusBadGateway,
		Retryable:      true,
		PublicMessage:  "no response received from server",
		DetailsAllowed: false,
	},
	CodeRejectedByServer: {
		HTTPStatus:     http.StatusBadGateway,
		Retryable:      true,
		PublicMessage:  "order was rejected by server",
		DetailsAllowed: true,
	},
	CodeUnconfirmed: {
		HTTPStatus:     http.StatusBadGateway,
		Retryable:      true,
		PublicMessage:  "server did not confirm order success",
		DetailsAllowed: false,
	},
	CodeConnectionError: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "failed to connect to server. Check your internet connection",
		DetailsAllowed: false,
	},
	CodeServerError: {
		HTTPStatus:     http.StatusBadGateway,
		Retryable:      true,
		PublicMessage:  "server error. Please try again later",
		DetailsAllowed: false,
	},
	CodeInvalidRequest: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "invalid order data",
		DetailsAllowed: true,
	},
	CodeNotAuthorized: {
		HTTPStatus:     http.StatusUnauthorized,
		Retryable:      false,
		PublicMessage:  "not authorized for this action",
		DetailsAllowed: false,
	},
	CodeUnknown: {
		HTTPStatus:     http.StatusInternalServerError,
		Retryable:      true,
		PublicMessage:  "an unexpected error occurred",
		DetailsAllowed: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
