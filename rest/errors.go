package rest

import (
	"encoding/json"

	"github.com/FedererKK/citrex-go/errs"
)

type errorResponse struct {
	Code    string `json:"code"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func handleException(resp *Response) error {
	if resp.StatusCode == 200 {
		return nil
	}

	remote := &errs.RemoteError{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		URL:        resp.URL,
		Method:     resp.Method,
		Headers:    resp.Header,
	}

	var errResp errorResponse
	if err := json.Unmarshal(resp.Body, &errResp); err != nil {
		remote.Msg = string(resp.Body)
		return remote
	}

	remote.Code = errResp.Code
	switch {
	case errResp.Msg != "":
		remote.Msg = errResp.Msg
	case errResp.Message != "":
		remote.Msg = errResp.Message
	case errResp.Error != "":
		remote.Msg = errResp.Error
	default:
		remote.Msg = string(resp.Body)
	}

	return remote
}
