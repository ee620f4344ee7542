// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the fuikk MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"fuikk Course Evaluation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("List the per-course summary of responses, response rate and general rating. Lower ratings are better."),
		mcp.WithNumber("min_responses", mcp.Description("Drop courses with fewer total responses.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of courses returned.")),
		mcp.WithBoolean("resolved", mcp.Description("Count replaced course codes only under their successor.")),
	), h.handleGetSummary)

	s.AddTool(mcp.NewTool("get_course",
		mcp.WithDescription("Get the general assessment of one course for every semester it was evaluated."),
		mcp.WithString("code", mcp.Description("Course code, e.g. IN1000."), mcp.Required()),
	), h.handleGetCourse)

	s.AddTool(mcp.NewTool("get_semester_score",
		mcp.WithDescription("Get the mean of all question averages per semester."),
		mcp.WithString("semester", mcp.Description("Semester code such as H2020. Omit for every semester and an overall score.")),
	), h.handleGetSemesterScore)

	s.AddTool(mcp.NewTool("get_course_history",
		mcp.WithDescription("Get the summary rows recorded for one course across runs of the courses pipeline."),
		mcp.WithString("code", mcp.Description("Course code, e.g. IN1000."), mcp.Required()),
	), h.handleGetCourseHistory)

	return s
}

// StartMCPServer starts the fuikk MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
