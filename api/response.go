package api

import (
	"encoding/json"
	"net/http"
)

// Error is a generic error structure that is used to send error responses to the client.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Response is a generic response structure that is used to send responses to the client.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Result - a single Fibonacci number as returned by the API
type Result struct {
	N          int64  `json:"n"`
	Value      int64  `json:"value"`
	Algorithm  string `json:"algorithm"`
	DurationNs int64  `json:"duration_ns"`
	Duration   string `json:"duration"`
	Cached     bool   `json:"cached"`
	Hash       string `json:"hash,omitempty"`
}

// ResultList - a page of the results ledger
type ResultList struct {
	Total   int64     `json:"total"`
	Results []*Result `json:"results"`
}

// Table - fib(0) through fib(limit)
type Table struct {
	Limit  int64   `json:"limit"`
	Values []int64 `json:"values"`
}

func NewResponse() *Response {
	return &Response{}
}

// Error message
func (e *Error) Error() string {
	return e.Message
}

// Set data to response
func (rsp *Response) SetData(data any) *Response {
	rsp.Data = data
	rsp.Error = nil
	return rsp
}

// Set error to response, the first extra value becomes the details
func (rsp *Response) SetError(code string, message string, extra ...any) *Response {
	rsp.Data = nil
	rsp.Error = &Error{
		Code:    code,
		Message: message,
	}
	if len(extra) > 0 {
		rsp.Error.Details = extra[0]
	}
	return rsp
}

func (rsp *Response) write(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status < http.StatusBadRequest {
		rsp.Status = "ok"
	} else {
		rsp.Status = "error"
		if rsp.Error == nil {
			rsp.Error = &Error{
				Code:    code,
				Message: message,
			}
		}
	}
	_ = json.NewEncoder(w).Encode(rsp)
}

// Send success response to client
func (rsp *Response) Ok(w http.ResponseWriter) {
	rsp.write(w, http.StatusOK, "", "")
}

// Send error response to client
func (rsp *Response) BadRequest(w http.ResponseWriter) {
	rsp.write(w, http.StatusBadRequest, "bad_request", "Bad request")
}

// Send error response to client
func (rsp *Response) InternalServerError(w http.ResponseWriter) {
	rsp.write(w, http.StatusInternalServerError, "internal_server_error", "Internal server error")
}

// Send error response to client
func (rsp *Response) NotFound(w http.ResponseWriter) {
	rsp.write(w, http.StatusNotFound, "not_found", "Not found")
}

// Send error response to client
func (rsp *Response) Unauthorized(w http.ResponseWriter) {
	rsp.write(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
}

// Send error response to client
func (rsp *Response) Forbidden(w http.ResponseWriter) {
	rsp.write(w, http.StatusForbidden, "forbidden", "Forbidden")
}

// Send error response to client
func (rsp *Response) MethodNotAllowed(w http.ResponseWriter) {
	rsp.write(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
}

// Send error response to client
func (rsp *Response) UnprocessableEntity(w http.ResponseWriter) {
	rsp.write(w, http.StatusUnprocessableEntity, "unprocessable_entity", "Unprocessable entity")
}
