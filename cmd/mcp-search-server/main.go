// Command mcp-search-server runs the line-framed stdio transport: one
// JSON-RPC request per line on stdin, one response per line on stdout.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/KazKozDev/mcp-search-server/catalog"
	"github.com/KazKozDev/mcp-search-server/transport"

	_ "github.com/KazKozDev/mcp-search-server/adapters/analysis"
	_ "github.com/KazKozDev/mcp-search-server/adapters/context"
	_ "github.com/KazKozDev/mcp-search-server/adapters/files"
	_ "github.com/KazKozDev/mcp-search-server/adapters/knowledge"
	_ "github.com/KazKozDev/mcp-search-server/adapters/social"
	_ "github.com/KazKozDev/mcp-search-server/adapters/web"
)

const (
	serverName    = "mcp-search-server"
	serverVersion = "1.0.0"
)

func main() {
	registry := catalog.NewRegistry()
	categories := catalog.NewCategoryManager("")

	tools, aliases := catalog.LoadToolConfig("")
	loader := catalog.NewLoader(registry, aliases, categories)
	loader.RegisterMetaTools()
	loader.LoadAll(tools)

	preloadConfiguredCategories(registry, categories)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dispatcher := transport.NewStreamDispatcher(registry, serverName, serverVersion)
	if err := dispatcher.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("mcp-search-server: stream dispatcher exited: %v", err)
	}
}

// preloadConfiguredCategories promotes every deferred tool in the
// configured preload_categories list, matching the original's startup
// behavior of eagerly materializing its high-priority categories (§4.3).
func preloadConfiguredCategories(registry *catalog.Registry, categories *catalog.CategoryManager) {
	for _, c := range categories.PreloadCategories() {
		loaded := registry.LoadCategory(c)
		if len(loaded) > 0 {
			log.Printf("mcp-search-server: preloaded %d tools in category %q", len(loaded), c)
		}
	}
}
