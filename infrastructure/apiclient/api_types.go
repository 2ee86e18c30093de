package apiclient

import (
	"bytes"
	"encoding/json"
)

// JSON response structures shared by every endpoint.

// messageText is the envelope message, sent either as a string or a list.
type messageText []string

func (m *messageText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*m = nil
	case len(b) > 0 && b[0] == '[':
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*m = list
	default:
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != "" {
			*m = messageText{s}
		}
	}
	return nil
}

// envelope is {statusCode, message, data}.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    messageText     `json:"message"`
	Data       json.RawMessage `json:"data"`
}

type paginationJSON struct {
	Page                    int      `json:"page"`
	PerPage                 int      `json:"perPage"`
	OrderBy                 string   `json:"orderBy"`
	OrderDirection          string   `json:"orderDirection"`
	AvailableSearch         []string `json:"availableSearch"`
	AvailableOrderBy        []string `json:"availableOrderBy"`
	AvailableOrderDirection []string `json:"availableOrderDirection"`
	Total                   int      `json:"total"`
	TotalPage               int      `json:"totalPage"`
}

type metadataJSON struct {
	Pagination *paginationJSON `json:"pagination"`
}

// listEnvelope is a listing response. Older endpoints put pagination under
// "metadata", newer ones under "_metadata".
type listEnvelope struct {
	Data               json.RawMessage `json:"data"`
	UnderscoreMetadata *metadataJSON   `json:"_metadata"`
	Metadata           *metadataJSON   `json:"metadata"`
}

type createdJSON struct {
	ID string `json:"_id"`
}

// decodeErrorMessages pulls the message out of an error body, tolerating
// bodies that are not JSON at all.
func decodeErrorMessages(body []byte) []string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Message) > 0 {
		return env.Message
	}
	var alt struct {
		Error messageText `json:"error"`
	}
	if err := json.Unmarshal(body, &alt); err == nil && len(alt.Error) > 0 {
		return alt.Error
	}
	return nil
}
