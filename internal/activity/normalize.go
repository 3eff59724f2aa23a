package activity

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// PendingPolicy decides what the pending list does with items flagged as expired.
type PendingPolicy string

const (
	// PolicyListOnly treats every listed item as pending. Expired activities
	// come only from the dedicated todo endpoint.
	PolicyListOnly PendingPolicy = "list-only"

	// PolicySplit partitions the task listing by its expired flag.
	PolicySplit PendingPolicy = "split"
)

// NormalizePending maps the task listing body ({"items": [...]}) to an Envelope.
func NormalizePending(body []byte, policy PendingPolicy) (Envelope, error) {
	root, err := parse(body)
	if err != nil {
		return Envelope{}, err
	}

	env := emptyEnvelope()
	for _, item := range listItems(root) {
		a := toActivity(item)
		if policy == PolicySplit && isExpired(item) {
			env.Expired = append(env.Expired, a)
			continue
		}
		env.Pending = append(env.Pending, a)
	}
	return env, nil
}

// NormalizeExpired maps the todo endpoint body, a flat array of wrapper
// objects, to an Envelope whose pending list is always empty.
func NormalizeExpired(body []byte) (Envelope, error) {
	root, err := parse(body)
	if err != nil {
		return Envelope{}, err
	}

	env := emptyEnvelope()
	for _, item := range expiredItems(root) {
		env.Expired = append(env.Expired, toActivity(item))
	}
	return env, nil
}

// NormalizeDetail maps a task detail body to a TaskDetail. A body that is not
// a JSON object yields the fallback detail together with ErrMalformedPayload.
func NormalizeDetail(taskID string, body []byte) (TaskDetail, error) {
	root, err := parse(body)
	if err != nil {
		return DetailFallback(taskID), err
	}
	if !root.IsObject() {
		return DetailFallback(taskID), fmt.Errorf("%w: detail is %s, want object", ErrMalformedPayload, root.Type)
	}

	d := TaskDetail{Title: detailTitle(root, taskID), Questions: []Question{}}
	for _, item := range listItems(root) {
		d.Questions = append(d.Questions, Question{
			Text:         questionText(item),
			Alternatives: alternatives(item),
		})
	}
	return d, nil
}

// DetailFallback is the degraded detail returned when questions cannot be loaded.
func DetailFallback(taskID string) TaskDetail {
	return TaskDetail{
		Title:     placeholderTitle(taskID),
		Questions: []Question{},
		Error:     DetailUnavailable,
	}
}

func parse(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid json (%d bytes)", ErrMalformedPayload, len(body))
	}
	return gjson.ParseBytes(body), nil
}

func emptyEnvelope() Envelope {
	return Envelope{Pending: []Activity{}, Expired: []Activity{}}
}

func toActivity(item gjson.Result) Activity {
	return Activity{Title: activityTitle(item), ID: activityID(item)}
}

// present mirrors a nullish check: missing and explicit null are both absent.
func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

func firstPresent(item gjson.Result, paths ...string) (gjson.Result, bool) {
	for _, p := range paths {
		if v := item.Get(p); present(v) {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// listItems returns root.items, or nothing when it is missing or not an array.
func listItems(root gjson.Result) []gjson.Result {
	items := root.Get("items")
	if !items.IsArray() {
		return nil
	}
	return items.Array()
}

// expiredItems accepts the documented flat array and, for drifted responses,
// an object wrapping the array in "items".
func expiredItems(root gjson.Result) []gjson.Result {
	if root.IsArray() {
		return root.Array()
	}
	return listItems(root)
}

func activityTitle(item gjson.Result) string {
	if v, ok := firstPresent(item, "task.title", "title"); ok {
		return v.String()
	}
	return UntitledActivity
}

func activityID(item gjson.Result) json.RawMessage {
	if v, ok := firstPresent(item, "task.id", "id"); ok {
		return json.RawMessage(v.Raw)
	}
	return nil
}

func isExpired(item gjson.Result) bool {
	return item.Get("expired").Bool()
}

func placeholderTitle(taskID string) string {
	return "Detalhes da Tarefa " + taskID
}

func detailTitle(root gjson.Result, taskID string) string {
	if v := root.Get("title"); present(v) {
		return v.String()
	}
	return placeholderTitle(taskID)
}

func questionText(item gjson.Result) string {
	return item.Get("statement").String()
}

func alternativeText(alt gjson.Result) string {
	return alt.Get("text").String()
}

func alternatives(item gjson.Result) []Alternative {
	out := []Alternative{}
	alts := item.Get("alternatives")
	if !alts.IsArray() {
		return out
	}
	for _, alt := range alts.Array() {
		out = append(out, Alternative{Text: alternativeText(alt)})
	}
	return out
}
