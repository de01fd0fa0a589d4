package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"projtree/internal/application/commands"
	"projtree/internal/domain"
	"projtree/internal/ports"
)

// RegisterWriteTools adds all mutating config tree tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.ConfigRepository) {
	s.AddTool(addProjectTool(), addProjectHandler(repo))
	s.AddTool(editProjectTool(), editProjectHandler(repo))
	s.AddTool(removeProjectTool(), removeProjectHandler(repo))
	s.AddTool(addCategoryTool(), addCategoryHandler(repo))
	s.AddTool(renameCategoryTool(), renameCategoryHandler(repo))
	s.AddTool(removeCategoryTool(), removeCategoryHandler(repo))
}

// --- add_project ---

func addProjectTool() mcp.Tool {
	return mcp.NewTool("add_project",
		mcp.WithDescription("Add a project bookmark to a category. Missing intermediate categories are created."),
		mcp.WithString("category",
			mcp.Description("Dotted category path (e.g. Work.Clients). Omit for the root."),
		),
		mcp.WithString("label",
			mcp.Description("Display label for the project"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Filesystem path. Absolute paths under the home directory are stored in portable ~/ form."),
			mcp.Required(),
		),
		mcp.WithString("icon",
			mcp.Description("Optional icon glyph"),
		),
	)
}

func addProjectHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddProjectCommand(repo,
			domain.ParseCategoryPath(req.GetString("category", "")),
			req.GetString("label", ""),
			req.GetString("path", ""),
			req.GetString("icon", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- edit_project ---

func editProjectTool() mcp.Tool {
	return mcp.NewTool("edit_project",
		mcp.WithDescription("Edit a project in place, or move it to another category by giving a different destination. In-place edits keep the project's position; moves append to the destination."),
		mcp.WithString("key",
			mcp.Description("Structural project key (e.g. Work.projects[1])"),
			mcp.Required(),
		),
		mcp.WithString("destination",
			mcp.Description("Dotted destination category path. Omit or repeat the source to edit in place."),
		),
		mcp.WithString("label",
			mcp.Description("New label"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("New filesystem path"),
			mcp.Required(),
		),
		mcp.WithString("icon",
			mcp.Description("New icon glyph; empty clears it"),
		),
	)
}

func editProjectHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, index, err := domain.ParseProjectKey(req.GetString("key", ""))
		if err != nil {
			return toolError(err)
		}
		destination := source
		if dest, ok := req.GetArguments()["destination"]; ok {
			if s, ok := dest.(string); ok {
				destination = domain.ParseCategoryPath(s)
			}
		}
		cmd := commands.NewEditProjectCommand(repo, source, index, destination,
			req.GetString("label", ""),
			req.GetString("path", ""),
			req.GetString("icon", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- remove_project ---

func removeProjectTool() mcp.Tool {
	return mcp.NewTool("remove_project",
		mcp.WithDescription("Remove a project bookmark by its structural key."),
		mcp.WithString("key",
			mcp.Description("Structural project key (e.g. __root__.projects[0])"),
			mcp.Required(),
		),
	)
}

func removeProjectHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, index, err := domain.ParseProjectKey(req.GetString("key", ""))
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewRemoveProjectCommand(repo, path, index)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_category ---

func addCategoryTool() mcp.Tool {
	return mcp.NewTool("add_category",
		mcp.WithDescription("Create an empty category at the given dotted path, materializing missing intermediates."),
		mcp.WithString("path",
			mcp.Description("Dotted category path (e.g. Work.Clients)"),
			mcp.Required(),
		),
	)
}

func addCategoryHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddCategoryCommand(repo, domain.ParseCategoryPath(req.GetString("path", "")))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename_category ---

func renameCategoryTool() mcp.Tool {
	return mcp.NewTool("rename_category",
		mcp.WithDescription("Rename a category or move it under a different parent, keeping its contents. Fails on a name collision at the destination or when moving a category into its own subtree."),
		mcp.WithString("path",
			mcp.Description("Dotted path of the category to rename"),
			mcp.Required(),
		),
		mcp.WithString("new_parent",
			mcp.Description("Dotted path of the new parent. Omit to keep the current parent; pass an empty string for the root."),
		),
		mcp.WithString("new_name",
			mcp.Description("New category name"),
			mcp.Required(),
		),
	)
}

func renameCategoryHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		oldPath := domain.ParseCategoryPath(req.GetString("path", ""))
		newParent := oldPath.Parent()
		if raw, ok := req.GetArguments()["new_parent"]; ok {
			if s, ok := raw.(string); ok {
				newParent = domain.ParseCategoryPath(s)
			}
		}
		cmd := commands.NewRenameCategoryCommand(repo, oldPath, newParent, req.GetString("new_name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- remove_category ---

func removeCategoryTool() mcp.Tool {
	return mcp.NewTool("remove_category",
		mcp.WithDescription("Remove a category. By default its contents are discarded with it; with merge_into_root the subtree's projects and child categories fold into the root."),
		mcp.WithString("path",
			mcp.Description("Dotted path of the category to remove"),
			mcp.Required(),
		),
		mcp.WithBoolean("merge_into_root",
			mcp.Description("Merge the category's contents into the root instead of discarding them"),
		),
	)
}

func removeCategoryHandler(repo ports.ConfigRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRemoveCategoryCommand(repo,
			domain.ParseCategoryPath(req.GetString("path", "")),
			req.GetBool("merge_into_root", false),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
