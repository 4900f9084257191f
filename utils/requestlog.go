package utils

// RollingWindowSize is the number of most recent query outcomes RequestLog
// keeps, mirroring the original's min_in_day_ constant.
const RollingWindowSize = 1440

// RequestLog wraps a query-running server and remembers whether each of the
// last RollingWindowSize queries it ran returned a non-empty result set,
// evicting the oldest entry once the window is full.
type RequestLog struct {
	server   FindTopDocumentser
	requests []bool // true = query returned at least one document
}

// NewRequestLog builds a RequestLog wrapping server.
func NewRequestLog(server FindTopDocumentser) *RequestLog {
	return &RequestLog{server: server}
}

// AddFindRequest runs rawQuery against the wrapped server, records whether
// it matched anything, and returns the result set.
func (r *RequestLog) AddFindRequest(rawQuery string) ([]Document, error) {
	docs, err := r.server.FindTopDocuments(rawQuery)
	if err != nil {
		return nil, err
	}
	r.record(len(docs) > 0)
	return docs, nil
}

func (r *RequestLog) record(nonEmpty bool) {
	if len(r.requests) == RollingWindowSize {
		r.requests = r.requests[1:]
	}
	r.requests = append(r.requests, nonEmpty)
}

// NoResultRequests counts the empty-result queries currently in the window.
func (r *RequestLog) NoResultRequests() int {
	count := 0
	for _, nonEmpty := range r.requests {
		if !nonEmpty {
			count++
		}
	}
	return count
}
