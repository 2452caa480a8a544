package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const todayURI = "trainplan://today"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Training",
		Description: "The active plan's week and workouts for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

type todayOutput struct {
	Date string      `json:"date"`
	Plan string      `json:"plan"`
	Week *weekOutput `json:"week,omitempty"`
	Days []dayOutput `json:"days"`
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	view, err := s.schedule.Today(ctx, s.now())
	if err != nil {
		return nil, err
	}
	out := todayOutput{
		Date: view.Date.Format(domain.DateLayout),
		Plan: view.Plan.Name,
		Days: toDays(view.Days),
	}
	if view.Week != nil {
		w := toWeek(view.Week)
		out.Week = &w
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal today: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      todayURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
