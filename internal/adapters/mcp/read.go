package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"projtree/internal/application/commands"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// RegisterReadTools adds all read-only config tree tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.ConfigRepository, index ports.SearchIndex) {
	s.AddTool(listTool(), listHandler(repo))
	s.AddTool(treeTool(), treeHandler(repo))
	s.AddTool(issuesTool(), issuesHandler(repo))
	s.AddTool(resolvePathTool(), resolvePathHandler(repo))
	if index != nil {
		s.AddTool(searchTool(), searchHandler(index))
	}
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List the children of a category. Without arguments lists the root: categories first, then root-level projects."),
		mcp.WithString("category",
			mcp.Description("Dotted category path (e.g. Work.Clients). Omit for the root."),
		),
	)
}

func listHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := domain.ParseCategoryPath(req.GetString("category", ""))

		var ref *domain.TreeNode
		if len(path) > 0 {
			ref = &domain.TreeNode{Kind: domain.KindCategory, Path: path}
		}
		children := repo.ListChildren(ref)
		if len(path) > 0 && children == nil {
			return toolError(fmt.Errorf("category not found: %s", path.String()))
		}
		if len(children) == 0 {
			return mcp.NewToolResultText("No entries."), nil
		}

		var sb strings.Builder
		for _, child := range children {
			if child.Kind == domain.KindCategory {
				fmt.Fprintf(&sb, "[category]  %s\n", child.Path.String())
				continue
			}
			fmt.Fprintf(&sb, "[project]   %s  %s  %s\n", child.Key(), child.Name, child.AbsPath)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the whole config tree: every category and project bookmark with resolved paths."),
	)
}

func treeHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := repo.BuildTree()
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		renderTree(&sb, root, "")
		if sb.Len() == 0 {
			return mcp.NewToolResultText("The tree is empty."), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	if node.Parent != nil {
		if node.Kind == domain.KindProject {
			fmt.Fprintf(sb, "%s%s  %s\n", prefix, node.Name, node.AbsPath)
		} else {
			fmt.Fprintf(sb, "%s%s/\n", prefix, node.Name)
		}
		prefix += "  "
	}
	for _, child := range node.Children {
		renderTree(sb, child, prefix)
	}
}

// --- issues ---

func issuesTool() mcp.Tool {
	return mcp.NewTool("issues",
		mcp.WithDescription("List validation issues in the config file, keyed by structural path (e.g. Work.projects[1].label)."),
	)
}

func issuesHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issues := repo.Issues()
		if !issues.HasAny() {
			return mcp.NewToolResultText("No issues."), nil
		}
		keys := make([]string, 0, len(issues))
		for key := range issues {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, key := range keys {
			for _, problem := range issues[key] {
				fmt.Fprintf(&sb, "%s: %s\n", key, problem)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- resolve_path ---

func resolvePathTool() mcp.Tool {
	return mcp.NewTool("resolve_path",
		mcp.WithDescription("Resolve a project key (e.g. Work.projects[0] or __root__.projects[2]) to its absolute filesystem path."),
		mcp.WithString("key",
			mcp.Description("Structural project key"),
			mcp.Required(),
		),
	)
}

func resolvePathHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key := req.GetString("key", "")
		if key == "" {
			return toolError(fmt.Errorf("key is required"))
		}
		path, index, err := domain.ParseProjectKey(key)
		if err != nil {
			return toolError(err)
		}
		node, err := repo.Root().NodeByPath(path)
		if err != nil {
			return toolError(err)
		}
		if index >= len(node.Projects) {
			return toolError(fmt.Errorf("no project at %s", key))
		}
		return mcp.NewToolResultText(repo.ResolvePath(node.Projects[index])), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search categories and projects by name, label, or path. Returns matches with their structural keys."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(index ports.SearchIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSearchCommand(index, req.GetString("query", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Matches) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}
		var sb strings.Builder
		for _, m := range result.Matches {
			fmt.Fprintf(&sb, "[%s]  %s  %s  %s\n", m.Kind, m.Key, m.Label, m.AbsPath)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
