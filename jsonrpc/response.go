package jsonrpc

// Result is the payload of a successful response
type Result any

// Response represents a JSON-RPC response object.
// Exactly one of Result and Error is set.
type Response struct {
	Version string `json:"jsonrpc"`
	ID      ID     `json:"id"`
	Result  Result `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// NewResponse creates a new Response object
func NewResponse(id ID, result Result, err *Error) Response {
	return Response{
		Version: Version,
		ID:      id,
		Result:  result,
		Error:   err,
	}
}

// NewResult creates a successful response
func NewResult(id ID, result Result) Response {
	return NewResponse(id, result, nil)
}

// NewErrorResponse creates an error response
func NewErrorResponse(id ID, err *Error) Response {
	return NewResponse(id, nil, err)
}
