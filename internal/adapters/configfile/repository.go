package configfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"projtree/internal/application"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// Repository is the file-backed config tree engine. It owns the loaded
// tree, its issue map, and the resolved-path cache, and serializes all
// access through a single mutex. Every successful mutation is persisted
// and the file re-read before the call returns, so the in-memory state
// always mirrors the bytes on disk.
type Repository struct {
	path     string
	dir      string
	home     string
	log      zerolog.Logger
	notifier ports.Notifier
	index    ports.SearchIndex

	mu        sync.Mutex
	root      *domain.RootConfig
	issues    domain.IssueMap
	resolved  map[string]string // project ID -> absolute path, rebuilt per load
	hadIssues bool

	subMu       sync.Mutex
	subscribers []func()

	watcher *fileWatcher
}

var _ ports.ConfigRepository = (*Repository)(nil)

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Repository) { r.log = log }
}

// WithNotifier sets the sink for user-facing warnings and errors.
func WithNotifier(n ports.Notifier) Option {
	return func(r *Repository) { r.notifier = n }
}

// WithIndex attaches a search index, rebuilt on every load.
func WithIndex(idx ports.SearchIndex) Option {
	return func(r *Repository) { r.index = idx }
}

// NewRepository creates a repository for the given config file path. The
// file does not need to exist; a missing file loads as an empty tree.
func NewRepository(configPath string, opts ...Option) *Repository {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		abs = filepath.Clean(configPath)
	}
	home, _ := os.UserHomeDir()
	r := &Repository{
		path: abs,
		dir:  filepath.Dir(abs),
		home: home,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ConfigPath returns the absolute path of the backing file.
func (r *Repository) ConfigPath() string { return r.path }

// Load reads and normalizes the config file. A missing file yields an
// empty, clean tree. Unparseable JSON yields an empty tree with a root
// issue and an error notification; the engine keeps running either way.
func (r *Repository) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *Repository) loadLocked() error {
	var data []byte
	raw, err := os.ReadFile(r.path)
	switch {
	case err == nil:
		data = raw
	case errors.Is(err, fs.ErrNotExist):
		// First run: treat as an empty document.
	default:
		r.log.Error().Err(err).Str("file", r.path).Msg("reading config file")
		r.notifyError(fmt.Sprintf("Could not read %s: %v", r.path, err))
		return fmt.Errorf("reading config file: %w", err)
	}

	root, issues, parseErr := application.Normalize(data)
	r.root = root
	r.issues = issues
	r.resolved = make(map[string]string)
	r.forEachProject(func(_ domain.CategoryPath, _ int, p domain.Project) {
		r.resolved[p.ID] = domain.ResolvePortablePath(p.Path, r.dir, r.home)
	})

	if r.index != nil {
		entries := root.IndexEntries(func(p domain.Project) string { return r.resolved[p.ID] })
		if err := r.index.Rebuild(entries); err != nil {
			r.log.Warn().Err(err).Msg("rebuilding search index")
		}
	}

	if parseErr != nil {
		r.log.Error().Err(parseErr).Str("file", r.path).Msg("config file is not valid JSON")
		r.notifyError(fmt.Sprintf("Could not parse %s: %v", r.path, parseErr))
	} else if issues.HasAny() && !r.hadIssues {
		// Edge-triggered: warn once when a clean document turns problematic,
		// stay quiet while the same issues persist across reloads.
		r.notifyWarn(fmt.Sprintf("Configuration has %d issue(s); open %s to review them", len(issues), r.path))
	}
	r.hadIssues = issues.HasAny()

	r.log.Debug().
		Int("projects", len(r.resolved)).
		Int("issues", len(issues)).
		Str("file", r.path).
		Msg("config loaded")
	return nil
}

func (r *Repository) forEachProject(fn func(path domain.CategoryPath, index int, p domain.Project)) {
	var walk func(node *domain.CategoryNode, path domain.CategoryPath)
	walk = func(node *domain.CategoryNode, path domain.CategoryPath) {
		for i, p := range node.Projects {
			fn(path, i, p)
		}
		for _, child := range node.Children {
			walk(child, path.Child(child.Name))
		}
	}
	if r.root != nil {
		walk(r.root, nil)
	}
}

// Save writes the current tree to disk atomically.
func (r *Repository) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked()
}

func (r *Repository) saveLocked() error {
	if r.root == nil {
		return fmt.Errorf("no config loaded")
	}
	data, err := domain.EncodeConfig(r.root)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	// Write-then-rename so a reader never observes a half-written file.
	tmp, err := os.CreateTemp(r.dir, ".projects-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}

// mutate applies a tree change, persists it, and reloads from disk. A
// failed apply leaves the tree untouched; a failed save keeps the change
// in memory and reports the error without reloading.
func (r *Repository) mutate(apply func(root *domain.RootConfig) error) error {
	r.mu.Lock()
	if r.root == nil {
		if err := r.loadLocked(); err != nil {
			r.mu.Unlock()
			return err
		}
	}
	if err := apply(r.root); err != nil {
		r.mu.Unlock()
		return err
	}
	if err := r.saveLocked(); err != nil {
		r.mu.Unlock()
		r.log.Error().Err(err).Str("file", r.path).Msg("saving config")
		r.notifyError(fmt.Sprintf("Could not save %s: %v", r.path, err))
		return err
	}
	err := r.loadLocked()
	r.mu.Unlock()
	r.notifySubscribers()
	return err
}

// checkSegments rejects paths the document cannot represent: any segment
// equal to the reserved "projects" key would collide with a node's project
// list on save.
func checkSegments(path domain.CategoryPath) error {
	for _, seg := range path {
		if seg == domain.ReservedKey {
			return fmt.Errorf("%w: %q", domain.ErrReservedName, seg)
		}
	}
	return nil
}

// AddProject appends a project to the category at path, creating missing
// intermediate categories.
func (r *Repository) AddProject(path domain.CategoryPath, p domain.Project) error {
	return r.mutate(func(root *domain.RootConfig) error {
		if err := checkSegments(path); err != nil {
			return err
		}
		root.InsertProject(path, p)
		return nil
	})
}

// UpdateProject replaces the project at source[index]. A same-category
// update keeps the entry's position; a cross-category update moves it to
// the end of the destination list.
func (r *Repository) UpdateProject(source domain.CategoryPath, index int, dest domain.CategoryPath, p domain.Project) error {
	return r.mutate(func(root *domain.RootConfig) error {
		if err := checkSegments(dest); err != nil {
			return err
		}
		return root.MoveOrUpdateProject(source, index, dest, p)
	})
}

// RemoveProject deletes the project at path[index].
func (r *Repository) RemoveProject(path domain.CategoryPath, index int) error {
	return r.mutate(func(root *domain.RootConfig) error {
		return root.RemoveProject(path, index)
	})
}

// AddCategory creates an empty category at path, materializing missing
// intermediates. It fails if the full path already exists.
func (r *Repository) AddCategory(path domain.CategoryPath) error {
	return r.mutate(func(root *domain.RootConfig) error {
		if len(path) == 0 {
			return fmt.Errorf("%w: empty category path", domain.ErrNodeNotFound)
		}
		if err := checkSegments(path); err != nil {
			return err
		}
		if _, err := root.NodeByPath(path); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrCategoryExists, path.String())
		}
		root.EnsurePath(path)
		return nil
	})
}

// RenameCategory moves the subtree at oldPath under newParent with newName.
func (r *Repository) RenameCategory(oldPath, newParent domain.CategoryPath, newName string) error {
	return r.mutate(func(root *domain.RootConfig) error {
		if err := checkSegments(newParent); err != nil {
			return err
		}
		return root.RenameOrMoveCategory(oldPath, newParent, newName)
	})
}

// RemoveCategory deletes the subtree at path, optionally merging its
// contents into the root.
func (r *Repository) RemoveCategory(path domain.CategoryPath, mergeIntoRoot bool) error {
	return r.mutate(func(root *domain.RootConfig) error {
		return root.RemoveCategory(path, mergeIntoRoot)
	})
}

// Root returns the loaded tree. Callers must treat it as read-only.
func (r *Repository) Root() *domain.RootConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// Issues returns the validation issues recorded by the last load.
func (r *Repository) Issues() domain.IssueMap {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.issues
}

// Categories returns all categories in pre-order.
func (r *Repository) Categories() []domain.CategoryRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.root == nil {
		return nil
	}
	return r.root.CollectCategories()
}

// ResolvePath returns the absolute path of a project, from the cache when
// the project came out of the current load.
func (r *Repository) ResolvePath(p domain.Project) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if abs, ok := r.resolved[p.ID]; ok {
		return abs
	}
	return domain.ResolvePortablePath(p.Path, r.dir, r.home)
}

// ListChildren returns the display-ordered children of a category ref:
// at the root, categories come first and root projects after; inside a
// category, its projects come first and child categories after. A nil ref
// addresses the root. Projects have no children.
func (r *Repository) ListChildren(ref *domain.TreeNode) []*domain.TreeNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.root == nil {
		return nil
	}
	var path domain.CategoryPath
	if ref != nil {
		if ref.Kind == domain.KindProject {
			return nil
		}
		path = ref.Path
	}
	node, err := r.root.NodeByPath(path)
	if err != nil {
		return nil
	}
	return r.childNodesLocked(path, node)
}

func (r *Repository) childNodesLocked(path domain.CategoryPath, node *domain.CategoryNode) []*domain.TreeNode {
	projects := make([]*domain.TreeNode, 0, len(node.Projects))
	for i, p := range node.Projects {
		projects = append(projects, &domain.TreeNode{
			Kind:         domain.KindProject,
			Name:         p.Label,
			Path:         path,
			Index:        i,
			ProjectID:    p.ID,
			AbsPath:      r.resolved[p.ID],
			PortablePath: p.Path,
			Icon:         p.Icon,
			Issues:       r.issues.ForProject(path, i),
		})
	}
	categories := make([]*domain.TreeNode, 0, len(node.Children))
	for _, c := range node.Children {
		cp := path.Child(c.Name)
		categories = append(categories, &domain.TreeNode{
			Kind:   domain.KindCategory,
			Name:   c.Name,
			Path:   cp,
			Issues: r.issues.ForKey(domain.CategoryKey(cp)),
		})
	}
	if len(path) == 0 {
		return append(categories, projects...)
	}
	return append(projects, categories...)
}

// BuildTree materializes the whole tree as linked view nodes. The root is
// expanded; categories below it start collapsed.
func (r *Repository) BuildTree() (*domain.TreeNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.root == nil {
		if err := r.loadLocked(); err != nil {
			return nil, err
		}
	}
	rootNode := &domain.TreeNode{
		Kind:       domain.KindCategory,
		IsExpanded: true,
		Issues:     r.issues.ForKey(domain.RootKey),
	}
	r.attachChildrenLocked(rootNode, nil, r.root)
	return rootNode, nil
}

func (r *Repository) attachChildrenLocked(parent *domain.TreeNode, path domain.CategoryPath, node *domain.CategoryNode) {
	for _, child := range r.childNodesLocked(path, node) {
		child.Parent = parent
		parent.Children = append(parent.Children, child)
		if child.Kind == domain.KindCategory {
			r.attachChildrenLocked(child, child.Path, node.Child(child.Name))
		}
	}
}

// Subscribe registers a callback invoked after every reload that follows a
// mutation or an external file change. Callbacks run outside the engine
// lock and must not mutate the repository synchronously.
func (r *Repository) Subscribe(fn func()) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

func (r *Repository) notifySubscribers() {
	r.subMu.Lock()
	subs := make([]func(), len(r.subscribers))
	copy(subs, r.subscribers)
	r.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Reload re-reads the file and notifies subscribers. Used by the watcher
// when the file changes underneath us.
func (r *Repository) Reload() {
	if err := r.Load(); err != nil {
		r.log.Warn().Err(err).Msg("reloading config")
		return
	}
	r.notifySubscribers()
}

// StartWatching begins watching the config file for external edits.
func (r *Repository) StartWatching() error {
	if r.watcher != nil {
		return nil
	}
	w := newFileWatcher(r)
	if err := w.Start(); err != nil {
		return err
	}
	r.watcher = w
	return nil
}

// Close stops the watcher and releases the search index.
func (r *Repository) Close() error {
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
	if r.index != nil {
		return r.index.Close()
	}
	return nil
}

func (r *Repository) notifyWarn(msg string) {
	if r.notifier != nil {
		r.notifier.Warn(msg)
	}
}

func (r *Repository) notifyError(msg string) {
	if r.notifier != nil {
		r.notifier.Error(msg)
	}
}
