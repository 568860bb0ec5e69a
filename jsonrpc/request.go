package jsonrpc

import "encoding/json"

// Version is the JSON-RPC protocol version carried in every message
const Version = "2.0"

// Request represents a JSON-RPC request object.
// A missing id decodes to the null ID.
type Request struct {
	Version string          `json:"jsonrpc"`
	ID      ID              `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

var _ json.Unmarshaler = &Request{}

// UnmarshalJSON decodes a request leniently. Any valid JSON value is
// accepted: members of the wrong type are treated as absent, so a
// non-string method becomes the empty method and an unusable id becomes
// the null ID. The jsonrpc member is not validated.
func (r *Request) UnmarshalJSON(data []byte) error {
	*r = Request{}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		if !json.Valid(data) {
			return err
		}
		// a valid non-object value such as 42 or [1,2]
		return nil
	}

	if raw, ok := object["jsonrpc"]; ok {
		_ = json.Unmarshal(raw, &r.Version)
	}
	if raw, ok := object["id"]; ok {
		if err := r.ID.UnmarshalJSON(raw); err != nil {
			r.ID = ID{}
		}
	}
	if raw, ok := object["method"]; ok {
		if err := json.Unmarshal(raw, &r.Method); err != nil {
			r.Method = ""
		}
	}
	if raw, ok := object["params"]; ok {
		r.Params = raw
	}
	return nil
}

// NewRequest creates a new Request object
func NewRequest(method string, params json.RawMessage, id any) Request {
	reqID, _ := NewID(id)

	return Request{
		Version: Version,
		Method:  method,
		Params:  params,
		ID:      reqID,
	}
}
