package upstream

import (
	"context"
	"encoding/json"
	"fmt"
)

// DetailSource returns the raw detail body for one task. The live endpoint's
// schema has not been confirmed, so callers only depend on this interface.
type DetailSource interface {
	TaskDetail(ctx context.Context, taskID string) ([]byte, error)
}

// SampleDetails serves fixed demonstration questions in the upstream detail
// schema ({"title", "items": [{"statement", "alternatives": [{"text"}]}]}).
type SampleDetails struct{}

type sampleAlternative struct {
	Text string `json:"text"`
}

type sampleItem struct {
	Statement    string              `json:"statement"`
	Alternatives []sampleAlternative `json:"alternatives"`
}

type sampleDetail struct {
	Title string       `json:"title"`
	Items []sampleItem `json:"items"`
}

func (SampleDetails) TaskDetail(ctx context.Context, taskID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "task-detail", URL: "sample:" + taskID, Err: err}
	}
	return json.Marshal(sampleDetail{
		Title: fmt.Sprintf("Detalhes da Tarefa %s", taskID),
		Items: []sampleItem{
			{
				Statement:    "Qual é a capital do Brasil?",
				Alternatives: []sampleAlternative{{"São Paulo"}, {"Rio de Janeiro"}, {"Brasília"}},
			},
			{
				Statement:    "Quanto é 2 + 2?",
				Alternatives: []sampleAlternative{{"3"}, {"4"}, {"5"}},
			},
		},
	})
}

var _ DetailSource = SampleDetails{}
