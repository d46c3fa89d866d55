package observability

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/galacticbuf/errs"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "galacticbuf",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "galacticbuf",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	codecFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "galacticbuf",
			Subsystem: "codec",
			Name:      "failures_total",
			Help:      "Messages rejected by the codec or text grammar, by error kind.",
		},
		[]string{"node", "op", "kind"},
	)
)

// errorKinds maps sentinels to metric labels. Order matters only for wrapped
// chains carrying several sentinels, where the first listed wins.
var errorKinds = []struct {
	err  error
	kind string
}{
	{errs.ErrUnsupportedVersion, "unsupported_version"},
	{errs.ErrMalformedHeader, "malformed_header"},
	{errs.ErrLengthMismatch, "length_mismatch"},
	{errs.ErrUnexpectedEndOfInput, "unexpected_end_of_input"},
	{errs.ErrTrailingBytes, "trailing_bytes"},
	{errs.ErrInvalidFieldNameLength, "invalid_field_name_length"},
	{errs.ErrEmptyFieldName, "empty_field_name"},
	{errs.ErrTooManyFields, "too_many_fields"},
	{errs.ErrStringTooLong, "string_too_long"},
	{errs.ErrTooManyListElements, "too_many_list_elements"},
	{errs.ErrListElementTypeMismatch, "list_element_type_mismatch"},
	{errs.ErrUnknownTypeTag, "unknown_type_tag"},
	{errs.ErrInt64OutOfRange, "int64_out_of_range"},
	{errs.ErrMessageTooLarge, "message_too_large"},
	{errs.ErrInvalidUtf8, "invalid_utf8"},
	{errs.ErrInvalidGrammarToken, "invalid_grammar_token"},
	{errs.ErrRecursionLimitExceeded, "recursion_limit_exceeded"},
	{errs.ErrUnsupportedEncoding, "unsupported_encoding"},
	{errs.ErrMissingField, "missing_field"},
}

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, codecFailures)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordCodecFailure counts a rejected message. op is "decode", "encode"
// or "parse".
func RecordCodecFailure(node, op string, err error) {
	RegisterMetrics()
	codecFailures.WithLabelValues(node, op, ErrorKind(err)).Inc()
}

// ErrorKind returns the metric label for err, "other" when no sentinel matches.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return "other"
}
