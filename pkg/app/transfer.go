package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/store"
	"tableflip.dev/storyboard/pkg/template"
)

// ErrExists is returned by Import when the template id is already stored and
// overwrite was not requested.
var ErrExists = errors.New("app: template already exists")

// Export writes the stored template id to w as "json" or "yaml".
func (s *Service) Export(ctx context.Context, id, format string, w io.Writer) error {
	snap, err := s.Template(ctx, id)
	if err != nil {
		return err
	}
	t := snap.Template.Template(template.Template{})
	return Encode(w, format, t)
}

// Encode writes v as indented JSON, or as YAML keyed by the JSON field names.
func Encode(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch format {
	case "", "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		// JSON is a YAML subset; going through a node keeps field order.
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("app: unsupported format %q", format)
	}
}

// Import reads a template document (JSON or YAML) from r, fills missing ids
// and stores it. It returns the stored template.
func (s *Service) Import(ctx context.Context, r io.Reader, overwrite bool) (template.Template, error) {
	if s.Storage == nil {
		return template.Template{}, ErrNoStorage
	}
	t, err := decodeTemplate(r)
	if err != nil {
		return template.Template{}, err
	}
	if err := normalize(&t); err != nil {
		return template.Template{}, err
	}

	if err := ctx.Err(); err != nil {
		return template.Template{}, err
	}
	// Only an exact id clashes; prefixes of stored ids are free.
	if _, err := s.Storage.Get(persist.Key(t.ID)); err == nil {
		if !overwrite {
			return template.Template{}, fmt.Errorf("%w: %s", ErrExists, t.ID)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return template.Template{}, err
	}

	e := editor.New(t, s.editorOptions()...)
	g := s.gateway()
	g.Attach(e)
	sess := &Session{Editor: e, gateway: g}
	stored := e.Template()
	if err := sess.Close(); err != nil {
		return template.Template{}, err
	}
	s.logger().Debug("imported template", zap.String("id", stored.ID), zap.Int("sections", len(stored.Sections)))
	return stored, nil
}

func decodeTemplate(r io.Reader) (template.Template, error) {
	var raw interface{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return template.Template{}, fmt.Errorf("app: decode template: %w", err)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return template.Template{}, fmt.Errorf("app: decode template: %w", err)
	}
	var t template.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return template.Template{}, fmt.Errorf("app: decode template: %w", err)
	}
	return t, nil
}

func normalize(t *template.Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Name == "" {
		t.Name = "Untitled Template"
	}
	if t.AspectRatio == "" {
		t.AspectRatio = template.AspectPortrait
	} else if _, err := template.ParseAspectRatio(string(t.AspectRatio)); err != nil {
		return err
	}
	if t.Theme == (template.Theme{}) {
		t.Theme = template.DefaultTheme()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	if len(t.Sections) == 0 {
		return errors.New("app: template has no sections")
	}
	seen := make(map[string]bool)
	for i := range t.Sections {
		sec := &t.Sections[i]
		if sec.ID == "" || seen[sec.ID] {
			sec.ID = uuid.NewString()
		}
		seen[sec.ID] = true
		typ, err := template.ParseSectionType(string(sec.Type))
		if err != nil {
			return fmt.Errorf("app: section %d: %w", i, err)
		}
		sec.Type = typ
		if sec.Duration < 0 {
			return fmt.Errorf("app: section %d: negative duration %v", i, sec.Duration)
		}
		if sec.Elements == nil {
			sec.Elements = []template.Element{}
		}
		for j := range sec.Elements {
			if sec.Elements[j].ID == "" {
				sec.Elements[j].ID = uuid.NewString()
			}
		}
	}
	return nil
}

