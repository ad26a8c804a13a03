package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/adrianliechti/nimbus/server/api"
)

type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

func convertError(resp *http.Response) error {
	var body api.ErrorResponse

	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    body.Error,
		}
	}

	return errors.New(resp.Status)
}
