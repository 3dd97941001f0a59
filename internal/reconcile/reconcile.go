package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/model"
	"github.com/JaimeStill/neura/internal/prompt"
	"github.com/JaimeStill/neura/pkg/decode"
)

// Reconciler invokes the model and converts its output into sections.
type Reconciler struct {
	client  model.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Reconciler. Each model call is bounded by timeout.
func New(client model.Client, timeout time.Duration, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		client:  client,
		timeout: timeout,
		logger:  logger.With("system", "reconcile"),
	}
}

// Reconcile sends req to the model and returns the validated sections.
// allowed is the set of image filenames the model may reference; any other
// filename is removed from the result.
func (r *Reconciler) Reconcile(ctx context.Context, req *prompt.Request, allowed []string) ([]Section, error) {
	if !r.client.Configured() {
		return nil, ErrModelUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	raw, err := r.client.Generate(callCtx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	r.logger.Info("model responded", "duration", time.Since(start), "chars", len(raw))

	return r.Parse(raw, allowed)
}

// Parse runs the clean, truncate, parse, identify and validate steps on a
// raw model response.
func (r *Reconciler) Parse(raw string, allowed []string) ([]Section, error) {
	cleaned := TruncateAfterLastBracket(Clean(raw))

	var items []any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		r.logger.Error("model response is not a json array", "error", err, "response", cleaned)
		return nil, &ResponseError{Err: ErrMalformedResponse, Detail: err.Error(), Raw: cleaned}
	}
	if items == nil {
		r.logger.Error("model response is not a json array", "response", cleaned)
		return nil, &ResponseError{Err: ErrMalformedResponse, Detail: "top level is null", Raw: cleaned}
	}

	objects := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			r.logger.Warn("dropping non-object section", "index", i, "type", fmt.Sprintf("%T", item))
			continue
		}
		obj["section_id"] = uuid.NewString()
		objects = append(objects, obj)
	}

	sections := make([]Section, 0, len(objects))
	for i, obj := range objects {
		if err := validateSection(obj); err != nil {
			detail := fmt.Sprintf("section %d: %v", i, err)
			r.logger.Error("model response failed validation", "detail", detail, "response", raw)
			return nil, &ResponseError{Err: ErrSchemaMismatch, Detail: detail, Raw: raw}
		}

		s, err := decode.Into[Section](obj)
		if err != nil {
			detail := fmt.Sprintf("section %d: %v", i, err)
			return nil, &ResponseError{Err: ErrSchemaMismatch, Detail: detail, Raw: raw}
		}

		sections = append(sections, r.tidy(s, allowed))
	}

	return sections, nil
}

// tidy removes unknown image references and reports a subsection title
// index that disagrees with the subsections.
func (r *Reconciler) tidy(s Section, allowed []string) Section {
	if s.SubsectionTitles == nil {
		s.SubsectionTitles = []string{}
	}

	titles := make([]string, len(s.Subsections))
	for i := range s.Subsections {
		sub := &s.Subsections[i]
		titles[i] = sub.Title

		kept := make([]string, 0, len(sub.ImageFilenames))
		for _, name := range sub.ImageFilenames {
			if !slices.Contains(allowed, name) {
				r.logger.Warn("dropping unknown image reference", "section", s.Title, "subsection", sub.Title, "filename", name)
				continue
			}
			kept = append(kept, name)
		}
		sub.ImageFilenames = kept
	}

	if !slices.Equal(titles, s.SubsectionTitles) {
		r.logger.Warn("subsection titles do not match subsections", "section", s.Title, "titles", s.SubsectionTitles, "subsections", titles)
	}

	return s
}
