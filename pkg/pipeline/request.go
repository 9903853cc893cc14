package pipeline

import (
	"fmt"
	"os"
	"strings"
)

// DataIDKey is the data key identifying a run. Its value namespaces the
// run's working directory under the temp root.
const DataIDKey = "id"

// RequestOption customises a request during construction.
type RequestOption func(*Request)

// WithRequestBackend selects a registered backend by name for this request,
// overriding the converter's default.
func WithRequestBackend(name string) RequestOption {
	return func(r *Request) {
		r.backendName = strings.TrimSpace(name)
	}
}

// WithRequestLanguage overrides the language code for this request.
func WithRequestLanguage(code string) RequestOption {
	return func(r *Request) {
		r.language = strings.TrimSpace(code)
	}
}

// Request describes one conversion: a template package on disk, a
// destination path, and the data to fill the template with. Requests are
// built through NewRequest and immutable afterwards.
type Request struct {
	source      string
	output      string
	id          string
	data        map[string]any
	backendName string
	language    string
}

// NewRequest validates the inputs for a run. The checks run in a fixed
// order: the data must carry a usable id, failing with ErrMissingID before
// any filesystem access, and only then is the source path required to
// exist, failing with ErrSourceNotFound.
func NewRequest(source, output string, data map[string]any, options ...RequestOption) (*Request, error) {
	id, err := documentID(data)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("pipeline: source path is required")
	}
	if strings.TrimSpace(output) == "" {
		return nil, fmt.Errorf("pipeline: output path is required")
	}
	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("pipeline: source %q: %w: %w", source, ErrSourceNotFound, err)
	}

	req := &Request{
		source: source,
		output: output,
		id:     id,
		data:   copyData(data),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(req)
	}
	return req, nil
}

// SourcePath is the template package the run reads.
func (r *Request) SourcePath() string { return r.source }

// OutputPath is where the converted document is written.
func (r *Request) OutputPath() string { return r.output }

// DocumentID is the id value extracted from the request data.
func (r *Request) DocumentID() string { return r.id }

// Backend is the requested backend name; empty means the converter's
// default.
func (r *Request) Backend() string { return r.backendName }

// Language is the requested language override; empty means the converter's
// configured fallback.
func (r *Request) Language() string { return r.language }

// Data returns a copy of the request data.
func (r *Request) Data() map[string]any { return copyData(r.data) }

// documentID extracts and normalizes the id value. The id becomes a single
// directory name under the temp root, so values that would traverse out of
// it are rejected.
func documentID(data map[string]any) (string, error) {
	raw, ok := data[DataIDKey]
	if !ok || raw == nil {
		return "", fmt.Errorf("pipeline: %w", ErrMissingID)
	}

	var id string
	switch v := raw.(type) {
	case string:
		id = v
	case fmt.Stringer:
		id = v.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64:
		id = fmt.Sprint(v)
	default:
		return "", fmt.Errorf("pipeline: %w: value of type %T is not usable", ErrMissingID, raw)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("pipeline: %w", ErrMissingID)
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("pipeline: %w: %q is not a valid directory name", ErrMissingID, id)
	}
	return id, nil
}

func copyData(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
