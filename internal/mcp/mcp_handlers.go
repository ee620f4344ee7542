package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetInt("min_responses", -1); m >= 0 {
		cfg.MinResponses = m
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}
	cfg.Resolved = request.GetBool("resolved", cfg.Resolved)

	rows, err := core.GetSummaryResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return jsonResult(rows), nil
}

func (h *toolHandler) handleGetCourse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateCourse(cfg, request.GetString("code", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid course parameters: %v", err)), nil
	}

	trend, err := core.GetCourseTrend(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("course lookup failed: %v", err)), nil
	}
	return jsonResult(trend), nil
}

func (h *toolHandler) handleGetSemesterScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateSemester(cfg, request.GetString("semester", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid semester parameters: %v", err)), nil
	}

	result, err := core.GetScoreResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("score failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleGetCourseHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateCourse(cfg, request.GetString("code", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid course parameters: %v", err)), nil
	}

	records, err := core.GetCourseHistory(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}
	return jsonResult(records), nil
}
