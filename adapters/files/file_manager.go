// Package files implements a sandboxed file manager: read, write, append,
// list, and delete operations confined to a configured root directory.
package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/KazKozDev/mcp-search-server/catalog"
)

// sandboxRoot is the directory every path argument is resolved relative to
// and confined within. It defaults to the working directory and can be
// overridden before adapters are loaded.
var sandboxRoot = "."

// SetSandboxRoot changes the directory file tools are confined to. Call it
// once at startup before the registry loads deferred tools.
func SetSandboxRoot(root string) {
	sandboxRoot = root
}

func resolvePath(relative string) (string, error) {
	if relative == "" {
		return "", catalog.NewToolError(catalog.KindInvalidArgument, "path is required")
	}
	root, err := filepath.Abs(sandboxRoot)
	if err != nil {
		return "", catalog.WrapToolError(catalog.KindAdapterFailure, "resolve sandbox root", err)
	}
	joined := filepath.Join(root, relative)
	if joined != root && !strings.HasPrefix(joined, root+string(os.PathSeparator)) {
		return "", catalog.NewToolError(catalog.KindInvalidArgument, "path escapes the sandbox root")
	}
	return joined, nil
}

type readFileArgs struct {
	Path string `json:"path"`
}

func init() {
	catalog.RegisterFactory("read_file", newReadFileTool)
	catalog.RegisterFactory("write_file", newWriteFileTool)
	catalog.RegisterFactory("append_file", newAppendFileTool)
	catalog.RegisterFactory("list_files", newListFilesTool)
	catalog.RegisterFactory("delete_file", newDeleteFileTool)
}

func newReadFileTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "read_file",
		Description:         "Read the contents of a file within the sandbox root",
		Category:            catalog.CategoryFiles,
		Priority:            catalog.PriorityMedium,
		Tags:                []string{"files", "read"},
		RequiresFilesystem:  true,
		EstimatedDurationMs: 20,
		InputSchema:         catalog.DeriveSchema(readFileArgs{}),
	}
	return catalog.NewTool(meta, readFile), nil
}

func readFile(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	path, err := args.String("path")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "path is required")
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "read file failed", err)
	}
	return map[string]interface{}{"path": path, "content": string(data), "size": len(data)}, nil
}

type writeFileArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func newWriteFileTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "write_file",
		Description:         "Write (overwriting) a file within the sandbox root",
		Category:            catalog.CategoryFiles,
		Priority:            catalog.PriorityMedium,
		Tags:                []string{"files", "write"},
		RequiresFilesystem:  true,
		EstimatedDurationMs: 20,
		InputSchema:         catalog.DeriveSchema(writeFileArgs{}),
	}
	return catalog.NewTool(meta, writeFile), nil
}

func writeFile(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	path, err := args.String("path")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "path is required")
	}
	content, err := args.String("content")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "content is required")
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "create parent directory failed", err)
	}
	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "write file failed", err)
	}
	return map[string]interface{}{"path": path, "bytes_written": len(content)}, nil
}

type appendFileArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func newAppendFileTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "append_file",
		Description:         "Append content to a file within the sandbox root, creating it if absent",
		Category:            catalog.CategoryFiles,
		Priority:            catalog.PriorityLow,
		Tags:                []string{"files", "append"},
		RequiresFilesystem:  true,
		EstimatedDurationMs: 20,
		InputSchema:         catalog.DeriveSchema(appendFileArgs{}),
	}
	return catalog.NewTool(meta, appendFile), nil
}

func appendFile(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	path, err := args.String("path")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "path is required")
	}
	content, err := args.String("content")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "content is required")
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(resolved, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "open file for append failed", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "append file failed", err)
	}
	return map[string]interface{}{"path": path, "bytes_appended": len(content)}, nil
}

type listFilesArgs struct {
	Path string `json:"path,omitempty"`
}

func newListFilesTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "list_files",
		Description:         "List entries in a directory within the sandbox root",
		Category:            catalog.CategoryFiles,
		Priority:            catalog.PriorityMedium,
		Tags:                []string{"files", "list"},
		RequiresFilesystem:  true,
		EstimatedDurationMs: 20,
		InputSchema:         catalog.DeriveSchema(listFilesArgs{}),
	}
	return catalog.NewTool(meta, listFiles), nil
}

func listFiles(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	path := args.StringOr("path", ".")
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(resolved)
	if err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "list directory failed", err)
	}

	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		size := int64(0)
		if err == nil {
			size = info.Size()
		}
		out = append(out, map[string]interface{}{
			"name":  e.Name(),
			"is_dir": e.IsDir(),
			"size":  size,
		})
	}
	return out, nil
}

type deleteFileArgs struct {
	Path string `json:"path"`
}

func newDeleteFileTool() (*catalog.Tool, error) {
	meta := catalog.Metadata{
		Name:                "delete_file",
		Description:         "Delete a file within the sandbox root",
		Category:            catalog.CategoryFiles,
		Priority:            catalog.PriorityLow,
		Tags:                []string{"files", "delete"},
		RequiresFilesystem:  true,
		EstimatedDurationMs: 20,
		InputSchema:         catalog.DeriveSchema(deleteFileArgs{}),
	}
	return catalog.NewTool(meta, deleteFile), nil
}

func deleteFile(ctx context.Context, args catalog.Arguments) (interface{}, error) {
	path, err := args.String("path")
	if err != nil {
		return nil, catalog.NewToolError(catalog.KindInvalidArgument, "path is required")
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.Remove(resolved); err != nil {
		return nil, catalog.WrapToolError(catalog.KindAdapterFailure, "delete file failed", err)
	}
	return map[string]interface{}{"path": path, "deleted": true}, nil
}
