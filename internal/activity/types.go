package activity

import (
	"encoding/json"
	"errors"
)

const (
	// UntitledActivity is used when an upstream item carries no title at all.
	UntitledActivity = "Atividade Sem Título"

	// DetailUnavailable is returned in TaskDetail.Error when the questions could not be loaded.
	DetailUnavailable = "Não foi possível carregar as perguntas."

	// UpstreamFailure is the fixed message returned to callers on list failures.
	UpstreamFailure = "Erro ao buscar dados da API externa."
)

// ErrMalformedPayload reports an upstream body that is not JSON of the expected kind.
var ErrMalformedPayload = errors.New("malformed upstream payload")

// Activity is one normalized list entry. ID holds the upstream JSON literal
// verbatim (string or number); nil encodes as null.
type Activity struct {
	Title string          `json:"title"`
	ID    json.RawMessage `json:"id"`
}

// Envelope is the list-mode response body.
type Envelope struct {
	Pending []Activity `json:"pendentes"`
	Expired []Activity `json:"expiradas"`
}

type Alternative struct {
	Text string `json:"text"`
}

type Question struct {
	Text         string        `json:"text"`
	Alternatives []Alternative `json:"alternatives"`
}

// TaskDetail is the id-mode response body.
type TaskDetail struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	Error     string     `json:"error,omitempty"`
}

// ErrorBody is the fixed-shape failure response.
type ErrorBody struct {
	Message string `json:"message"`
}
