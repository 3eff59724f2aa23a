package upstream

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	PendingPageSize = 25
	ExpiredPageSize = 100

	refererOrigin = "https://saladofuturo.educacao.sp.gov.br"
)

// Profile is the URL and header set for one upstream operation.
type Profile struct {
	Op     string
	URL    string
	Header http.Header
}

func (c *Client) baseHeader(accept string) http.Header {
	h := http.Header{}
	h.Set("x-api-key", c.apiKey)
	h.Set("User-Agent", c.userAgent)
	h.Set("Accept", accept)
	h.Set("Accept-Encoding", "gzip")
	return h
}

// PendingProfile lists tasks ordered by id, first page only.
func (c *Client) PendingProfile() Profile {
	q := url.Values{}
	q.Set("type", "model")
	q.Set("limit", strconv.Itoa(PendingPageSize))
	q.Set("offset", "0")
	q.Set("orderBy", "id")
	q.Set("with_public", "true")
	q.Set("deleted_only", "false")

	return Profile{
		Op:     "list-pending",
		URL:    c.baseURL + "/tms/task?" + q.Encode(),
		Header: c.baseHeader("application/json, text/plain, */*"),
	}
}

// ExpiredProfile lists expired todo entries for the configured publication targets.
func (c *Client) ExpiredProfile() Profile {
	q := url.Values{}
	q.Set("expired_only", "true")
	q.Set("limit", strconv.Itoa(ExpiredPageSize))
	q.Set("offset", "0")
	q.Set("filter_expired", "false")
	q.Set("is_exam", "false")
	q.Set("with_answer", "true")
	q.Set("is_essay", "false")
	for _, t := range c.targets {
		q.Add("publication_target", t)
	}
	q.Add("answer_statuses", "draft")
	q.Add("answer_statuses", "pending")
	q.Set("with_apply_moment", "true")

	h := c.baseHeader("application/json")
	h.Set("Referer", refererOrigin+"/tarefas?status=Expiradas")

	return Profile{
		Op:     "list-expired",
		URL:    c.baseURL + "/tms/task/todo?" + q.Encode(),
		Header: h,
	}
}

// DetailProfile fetches a single task. The response schema of this endpoint
// is unverified; see DetailSource.
func (c *Client) DetailProfile(taskID string) Profile {
	h := c.baseHeader("application/json")
	h.Set("Referer", refererOrigin+"/tarefas")

	return Profile{
		Op:     "task-detail",
		URL:    c.baseURL + "/tms/task/" + url.PathEscape(taskID),
		Header: h,
	}
}
