// Command mcp-search-server-http runs the HTTP transport: a JSON-RPC
// session endpoint at /mcp plus the well-known discovery documents (§4.7).
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KazKozDev/mcp-search-server/catalog"
	"github.com/KazKozDev/mcp-search-server/session"
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

	defaultPort      = "8080"
	sessionTTL       = 30 * time.Minute
)

func main() {
	registry := catalog.NewRegistry()
	categories := catalog.NewCategoryManager("")

	tools, aliases := catalog.LoadToolConfig("")
	loader := catalog.NewLoader(registry, aliases, categories)
	loader.RegisterMetaTools()
	loader.LoadAll(tools)

	for _, c := range categories.PreloadCategories() {
		if loaded := registry.LoadCategory(c); len(loaded) > 0 {
			log.Printf("mcp-search-server-http: preloaded %d tools in category %q", len(loaded), c)
		}
	}

	sessions := newSessionManager()
	dispatcher := transport.NewHTTPDispatcher(registry, serverName, serverVersion, sessions)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	addr := ":" + port

	log.Printf("mcp-search-server-http: listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, dispatcher.Mux()))
}

// newSessionManager picks the Redis-backed session manager when REDIS_ADDR
// is set, otherwise falls back to the dependency-free Stateless manager
// (§4.7, §11), signed with MCP_SESSION_SECRET or, if that is unset, with a
// generated key.
func newSessionManager() session.Manager {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		if secret := os.Getenv("MCP_SESSION_SECRET"); secret != "" {
			return session.NewStateless([]byte(secret), sessionTTL)
		}
		log.Printf("mcp-search-server-http: MCP_SESSION_SECRET not set, using a generated session signing key")
		manager, err := session.NewStatelessWithGeneratedKey(sessionTTL)
		if err != nil {
			log.Fatalf("mcp-search-server-http: could not initialize stateless session manager: %v", err)
		}
		return manager
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	log.Printf("mcp-search-server-http: using redis session store at %s", addr)
	return session.NewRedis(client, sessionTTL)
}
