package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/kittclouds/bce/pkg/bceerr"
	"github.com/kittclouds/bce/pkg/model"
)

// FileTreePort is the file-tree Storage Backend Port adapter: one YAML
// document per entity under dataRoot/characters/<id>.yaml and
// dataRoot/events/<id>.yaml, plus a single dataRoot/sources.yaml for the
// source registry. It optionally watches the characters and events
// directories for out-of-process edits and invokes onChange so the
// embedder can trigger an administrative reload (§3.5); edits to
// sources.yaml are not watched.
type FileTreePort struct {
	mu       sync.RWMutex
	dataRoot string
	watcher  *fsnotify.Watcher
}

// NewFileTreePort creates an adapter rooted at dataRoot. dataRoot must
// already exist; the adapter creates the characters and events
// subdirectories only in Save calls and in Watch.
func NewFileTreePort(dataRoot string) (*FileTreePort, error) {
	if _, err := os.Stat(dataRoot); err != nil {
		return nil, bceerr.Wrap(bceerr.Configuration, err, "data_root does not exist")
	}
	return &FileTreePort{dataRoot: dataRoot}, nil
}

// Watch starts an fsnotify watch over the character and event
// subdirectories, invoking onChange (debounced is the caller's concern)
// whenever a file is created, written or removed. Watch is idempotent;
// calling it twice replaces the previous watcher.
func (p *FileTreePort) Watch(onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return bceerr.Wrap(bceerr.Storage, err, "failed to start file-tree watcher")
	}
	for _, sub := range []string{"characters", "events"} {
		dir := filepath.Join(p.dataRoot, sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			w.Close()
			return bceerr.Wrap(bceerr.Storage, err, "failed to prepare watch directory")
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return bceerr.Wrap(bceerr.Storage, err, "failed to watch directory")
		}
	}
	p.mu.Lock()
	if p.watcher != nil {
		p.watcher.Close()
	}
	p.watcher = w
	p.mu.Unlock()

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange()
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// Close stops the active watcher, if any.
func (p *FileTreePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watcher == nil {
		return nil
	}
	err := p.watcher.Close()
	p.watcher = nil
	return err
}

func (p *FileTreePort) ListCharacterIDs() ([]model.EntityId, error) {
	return p.listIDs("characters")
}

func (p *FileTreePort) ListEventIDs() ([]model.EntityId, error) {
	return p.listIDs("events")
}

func (p *FileTreePort) listIDs(sub string) ([]model.EntityId, error) {
	dir := filepath.Join(p.dataRoot, sub)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to list "+sub)
	}
	ids := make([]model.EntityId, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		ids = append(ids, model.EntityId(strings.TrimSuffix(e.Name(), ".yaml")))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (p *FileTreePort) LoadCharacterRaw(id model.EntityId) (RawDocument, error) {
	return p.loadRaw("characters", id)
}

func (p *FileTreePort) LoadEventRaw(id model.EntityId) (RawDocument, error) {
	return p.loadRaw("events", id)
}

func (p *FileTreePort) loadRaw(sub string, id model.EntityId) (RawDocument, error) {
	path := filepath.Join(p.dataRoot, sub, string(id)+".yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bceerr.New(bceerr.DataNotFound, "document not found").WithField(string(id), "", path)
		}
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to read document")
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to decode yaml document")
	}
	return RawDocument(normalizeYAML(doc)), nil
}

func (p *FileTreePort) SaveCharacterRaw(id model.EntityId, doc RawDocument) error {
	return p.saveRaw("characters", id, doc)
}

func (p *FileTreePort) SaveEventRaw(id model.EntityId, doc RawDocument) error {
	return p.saveRaw("events", id, doc)
}

func (p *FileTreePort) saveRaw(sub string, id model.EntityId, doc RawDocument) error {
	dir := filepath.Join(p.dataRoot, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return bceerr.Wrap(bceerr.Storage, err, "failed to prepare storage directory")
	}
	out, err := yaml.Marshal(map[string]any(doc))
	if err != nil {
		return bceerr.Wrap(bceerr.Storage, err, "failed to encode document")
	}
	path := filepath.Join(dir, string(id)+".yaml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return bceerr.Wrap(bceerr.Storage, err, "failed to write document")
	}
	return nil
}

func (p *FileTreePort) LoadSources() ([]model.SourceMeta, error) {
	path := filepath.Join(p.dataRoot, "sources.yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to read source registry")
	}
	var doc map[string]map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to decode source registry")
	}
	out := make([]model.SourceMeta, 0, len(doc))
	for id, fields := range doc {
		sm := model.SourceMeta{SourceId: model.SourceId(id)}
		if v, ok := fields["date_range"].(string); ok {
			sm.DateRange = v
		}
		if v, ok := fields["provenance"].(string); ok {
			sm.Provenance = v
		}
		if v, ok := fields["audience"].(string); ok {
			sm.Audience = v
		}
		if deps, ok := fields["depends_on"].([]any); ok {
			for _, d := range deps {
				if s, ok := d.(string); ok {
					sm.DependsOn = append(sm.DependsOn, model.SourceId(s))
				}
			}
		}
		out = append(out, sm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceId < out[j].SourceId })
	return out, nil
}

// normalizeYAML recursively converts yaml.v3's map[string]interface{}
// nodes (and any map[interface{}]interface{} produced by older decode
// paths) into the plain map[string]any shape RawDocument expects.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
