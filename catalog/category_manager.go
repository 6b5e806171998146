package catalog

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// categoryConfig mirrors one entry under categories.yaml's "categories" key.
type categoryConfig struct {
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	Priority     string `yaml:"priority"`
	Icon         string `yaml:"icon"`
	DeferLoading *bool  `yaml:"defer_loading"`
}

type loadingConfig struct {
	Strategy           string   `yaml:"strategy"`
	EnableDeferLoading *bool    `yaml:"enable_defer_loading"`
	PreloadCategories  []string `yaml:"preload_categories"`
	InitialToolLimit   int      `yaml:"initial_tool_limit"`
	EnableToolSearch   *bool    `yaml:"enable_tool_search"`
}

type categoriesFile struct {
	Categories map[string]categoryConfig `yaml:"categories"`
	Loading    loadingConfig             `yaml:"loading"`
}

// CategoryManager loads and serves category configuration: display names,
// priorities, preload policy, and the defer-loading default (§4.3). If the
// YAML file is missing it falls back to a hard-coded default preserving the
// seven categories with sensible priorities.
type CategoryManager struct {
	mu         sync.RWMutex
	configPath string
	categories map[Category]categoryConfig
	loading    loadingConfig
}

// NewCategoryManager loads categories.yaml, auto-detecting its path if
// configPath is empty, per the resolution order in §4.3/§6.
func NewCategoryManager(configPath string) *CategoryManager {
	m := &CategoryManager{}
	if configPath == "" {
		configPath = findConfigPath("categories.yaml")
	}
	m.configPath = configPath

	if configPath != "" {
		if err := m.loadFile(configPath); err == nil {
			return m
		}
	}
	log.Printf("catalog: categories config not found at %q, using defaults", configPath)
	m.loadDefaults()
	return m
}

func findConfigPath(filename string) string {
	candidates := []string{
		filepath.Join("config", filename),
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "config", filename))
	}
	candidates = append(candidates, filepath.Join("/etc/mcp-search-server", filename))

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return filepath.Join("config", filename)
}

func (m *CategoryManager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var parsed categoriesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return err
	}

	categories := make(map[Category]categoryConfig, len(parsed.Categories))
	for name, cfg := range parsed.Categories {
		categories[Category(name)] = cfg
	}

	m.mu.Lock()
	m.categories = categories
	m.loading = parsed.Loading
	m.mu.Unlock()

	log.Printf("catalog: loaded %d categories from %s", len(categories), path)
	return nil
}

func (m *CategoryManager) loadDefaults() {
	deferTrue, deferFalse := true, false
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = map[Category]categoryConfig{
		CategoryWeb:       {DisplayName: "Web Search & Content", Priority: "HIGH", DeferLoading: &deferFalse},
		CategoryKnowledge: {DisplayName: "Knowledge & Academic", Priority: "MEDIUM", DeferLoading: &deferTrue},
		CategorySocial:    {DisplayName: "Social & Code", Priority: "MEDIUM", DeferLoading: &deferTrue},
		CategoryAnalysis:  {DisplayName: "Analysis & Processing", Priority: "HIGH", DeferLoading: &deferFalse},
		CategoryContext:   {DisplayName: "Context & Location", Priority: "HIGH", DeferLoading: &deferFalse},
		CategoryFiles:     {DisplayName: "File Management", Priority: "MEDIUM", DeferLoading: &deferTrue},
		CategoryMeta:      {DisplayName: "Tool Discovery", Priority: "HIGH", DeferLoading: &deferFalse},
	}
	enable := true
	m.loading = loadingConfig{
		Strategy:           "category_based",
		EnableDeferLoading: &enable,
		PreloadCategories:  []string{"web", "analysis", "context", "meta"},
		InitialToolLimit:   10,
		EnableToolSearch:   &enable,
	}
}

func (m *CategoryManager) config(c Category) categoryConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.categories[c]
}

func (m *CategoryManager) DisplayName(c Category) string {
	if name := m.config(c).DisplayName; name != "" {
		return name
	}
	return string(c)
}

func (m *CategoryManager) Description(c Category) string { return m.config(c).Description }
func (m *CategoryManager) Icon(c Category) string {
	if icon := m.config(c).Icon; icon != "" {
		return icon
	}
	return "🔧"
}

func (m *CategoryManager) Priority(c Category) Priority {
	p := m.config(c).Priority
	if p == "" {
		return PriorityMedium
	}
	return ParsePriority(p)
}

// ShouldDeferLoading reports the per-category defer_loading default; the
// loader lets a per-tool override win when both are present (§9 open
// question, resolved).
func (m *CategoryManager) ShouldDeferLoading(c Category) bool {
	cfg := m.config(c)
	if cfg.DeferLoading == nil {
		return true
	}
	return *cfg.DeferLoading
}

func (m *CategoryManager) PreloadCategories() []Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Category, 0, len(m.loading.PreloadCategories))
	for _, name := range m.loading.PreloadCategories {
		out = append(out, Category(name))
	}
	return out
}

func (m *CategoryManager) InitialToolLimit() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loading.InitialToolLimit == 0 {
		return 10
	}
	return m.loading.InitialToolLimit
}

func (m *CategoryManager) IsToolSearchEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading.EnableToolSearch == nil || *m.loading.EnableToolSearch
}

func (m *CategoryManager) AllCategories() []Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Category, 0, len(m.categories))
	for c := range m.categories {
		out = append(out, c)
	}
	return out
}

// Statistics mirrors the original's get_statistics accessor (§12).
type ManagerStatistics struct {
	TotalCategories       int
	HighPriorityCount     int
	PreloadCount          int
	DeferLoadingEnabled   bool
	LoadingStrategy       string
	ConfigPath            string
}

func (m *CategoryManager) Statistics() ManagerStatistics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	high := 0
	for _, cfg := range m.categories {
		if ParsePriority(cfg.Priority) == PriorityHigh {
			high++
		}
	}
	deferEnabled := m.loading.EnableDeferLoading == nil || *m.loading.EnableDeferLoading

	return ManagerStatistics{
		TotalCategories:     len(m.categories),
		HighPriorityCount:   high,
		PreloadCount:        len(m.loading.PreloadCategories),
		DeferLoadingEnabled: deferEnabled,
		LoadingStrategy:     m.loading.Strategy,
		ConfigPath:          m.configPath,
	}
}

// Reload re-reads the config file and replaces the in-memory copy; existing
// tool registrations are unaffected (§4.3).
func (m *CategoryManager) Reload() error {
	if m.configPath == "" {
		return NewToolError(KindConfigMissing, "no config path to reload")
	}
	return m.loadFile(m.configPath)
}
