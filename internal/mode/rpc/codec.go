// ABOUTME: Zero-reflection envelope codec for JSONL requests and responses
// ABOUTME: Built on easyjson's lexer and writer; result payloads still go through encoding/json

package rpc

import (
	"encoding/json"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// decodeRequest parses one request line. Unknown fields are skipped; the id
// must be a JSON string.
func decodeRequest(data []byte) (Request, error) {
	var req Request
	in := jlexer.Lexer{Data: data}

	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			req.ID = in.String()
		case "method":
			req.Method = in.String()
		case "params":
			req.Params = append(json.RawMessage(nil), in.Raw()...)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	in.Consumed()

	if err := in.Error(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// encodeResponse renders resp as one JSON object without a trailing newline.
func encodeResponse(resp Response) ([]byte, error) {
	var out jwriter.Writer

	out.RawString(`{"id":`)
	out.String(resp.ID)
	switch {
	case resp.Error != nil:
		out.RawString(`,"error":{"code":`)
		out.Int(resp.Error.Code)
		out.RawString(`,"message":`)
		out.String(resp.Error.Message)
		out.RawByte('}')
	case resp.Result != nil:
		out.RawString(`,"result":`)
		out.Raw(json.Marshal(resp.Result))
	}
	out.RawByte('}')

	return out.BuildBytes()
}
