package catalog

import (
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Factory constructs a live Tool on demand. Adapters register a Factory
// under their canonical name at package init() time; the Loader looks names
// up here instead of doing a dynamic import (§4.4, §9).
type Factory func() (*Tool, error)

var (
	registrationMu sync.RWMutex
	registrations  = map[string]Factory{}
)

// RegisterFactory adds name to the compile-time registration table. Adapter
// packages call this from their own init() function; it panics on a
// duplicate name because that can only be a programming error at build
// time, never a runtime condition.
func RegisterFactory(name string, factory Factory) {
	registrationMu.Lock()
	defer registrationMu.Unlock()
	if _, exists := registrations[name]; exists {
		panic("catalog: duplicate factory registration for " + name)
	}
	registrations[name] = factory
}

func lookupFactory(name string) (Factory, bool) {
	registrationMu.RLock()
	defer registrationMu.RUnlock()
	f, ok := registrations[name]
	return f, ok
}

// toolConfigEntry is one entry of tool_config.yaml's "tools" map.
type toolConfigEntry struct {
	Category     string                 `yaml:"category"`
	Priority     string                 `yaml:"priority"`
	Description  string                 `yaml:"description"`
	Tags         []string               `yaml:"tags"`
	DeferLoading *bool                  `yaml:"defer_loading"`
	InputSchema  map[string]interface{} `yaml:"input_schema"`
}

type toolConfigFile struct {
	Tools    map[string]toolConfigEntry `yaml:"tools"`
	Aliases  map[string]string          `yaml:"aliases"`
	Defaults map[string]interface{}     `yaml:"defaults"`
}

// LoadToolConfig reads tool_config.yaml, auto-detecting its path if
// configPath is empty. A missing file yields an empty configuration rather
// than an error, matching the category manager's config-missing policy.
func LoadToolConfig(configPath string) (tools map[string]toolConfigEntry, aliases map[string]string) {
	if configPath == "" {
		configPath = findConfigPath("tool_config.yaml")
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		log.Printf("catalog: tool config not found at %q, using defaults", configPath)
		return map[string]toolConfigEntry{}, map[string]string{}
	}
	var parsed toolConfigFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		log.Printf("catalog: failed to parse tool config %q: %v", configPath, err)
		return map[string]toolConfigEntry{}, map[string]string{}
	}
	if parsed.Tools == nil {
		parsed.Tools = map[string]toolConfigEntry{}
	}
	if parsed.Aliases == nil {
		parsed.Aliases = map[string]string{}
	}
	return parsed.Tools, parsed.Aliases
}

// Loader turns tool_config.yaml into registrations against a Registry,
// resolving each entry's implementation through the compile-time
// registration table (§4.4).
type Loader struct {
	Registry   *Registry
	Aliases    map[string]string
	Categories *CategoryManager
}

func NewLoader(registry *Registry, aliases map[string]string, categories *CategoryManager) *Loader {
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &Loader{Registry: registry, Aliases: aliases, Categories: categories}
}

// RegisterMetaTools eagerly registers search_tools, list_tool_categories,
// and get_tool_info in category "meta" with priority HIGH (§4.9), before any
// config-driven tool, so clients can bootstrap discovery even when
// everything else is deferred.
func (l *Loader) RegisterMetaTools() {
	for _, tool := range MetaTools(l.Registry, l.Categories) {
		l.Registry.Register(tool)
	}
}

// LoadAll registers every entry in tools against the Registry, resolving
// the implementation via RegisterFactory/Aliases. A tool whose factory
// cannot be resolved is logged and skipped; it never aborts the remaining
// tools (§4.4 contract).
func (l *Loader) LoadAll(tools map[string]toolConfigEntry) {
	for name, conf := range tools {
		l.registerOne(name, conf)
	}
}

func (l *Loader) resolveFactory(name string) (Factory, bool) {
	if f, ok := lookupFactory(name); ok {
		return f, true
	}
	if alias, ok := l.Aliases[name]; ok {
		return lookupFactory(alias)
	}
	return nil, false
}

func (l *Loader) registerOne(name string, conf toolConfigEntry) {
	category := Category(conf.Category)
	if category == "" || !ValidCategory(category) {
		log.Printf("catalog: unknown category %q for tool %q, defaulting to web", conf.Category, name)
		category = CategoryWeb
	}
	priority := ParsePriority(conf.Priority)

	deferLoading := true
	if conf.DeferLoading != nil {
		deferLoading = *conf.DeferLoading
	} else if l.Categories != nil {
		deferLoading = l.Categories.ShouldDeferLoading(category)
	}
	// Force immediate construction when the schema must be derived from the
	// real implementation (§4.4 step 2).
	if deferLoading && conf.InputSchema == nil {
		deferLoading = false
	}

	metadata := Metadata{
		Name:         name,
		Description:  conf.Description,
		Category:     category,
		Priority:     priority,
		Tags:         conf.Tags,
		InputSchema:  conf.InputSchema,
		DeferLoading: deferLoading,
	}

	factory, ok := l.resolveFactory(name)
	if !ok {
		log.Printf("catalog: no registered implementation for tool %q, skipping", name)
		return
	}

	if deferLoading {
		l.Registry.RegisterDeferred(metadata, func() (*Tool, error) {
			log.Printf("catalog: lazily loading tool %q", name)
			tool, err := factory()
			if err != nil {
				return nil, err
			}
			applyMetadataOverrides(tool, metadata)
			return tool, nil
		})
		return
	}

	tool, err := factory()
	if err != nil {
		log.Printf("catalog: failed to load immediate tool %q: %v", name, err)
		return
	}
	applyMetadataOverrides(tool, metadata)
	l.Registry.Register(tool)
}

// applyMetadataOverrides lets configuration (name, description, tags,
// priority, category) win over whatever the factory's own Tool carried, while
// preserving a schema the factory derived if the config didn't supply one.
// The configured name wins so a tool resolved through an alias is registered
// under the name the configuration gave it.
func applyMetadataOverrides(tool *Tool, override Metadata) {
	tool.Metadata.Name = override.Name
	if override.Description != "" {
		tool.Metadata.Description = override.Description
	}
	if len(override.Tags) > 0 {
		tool.Metadata.Tags = override.Tags
	}
	tool.Metadata.Category = override.Category
	tool.Metadata.Priority = override.Priority
	if override.InputSchema != nil {
		tool.Metadata.InputSchema = override.InputSchema
	}
}
