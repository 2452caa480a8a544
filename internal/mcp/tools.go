package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "decode_notation",
		Description: "Decode exercise shorthand such as \"3x15-20 each leg\" or \"Circuit 3x: ...\" into structured prescriptions",
	}, s.handleDecodeNotation)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_weeks",
		Description: "List the weeks of the active training plan",
	}, s.handleListWeeks)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_week",
		Description: "Get one week of the active plan with all of its days",
	}, s.handleGetWeek)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get the workouts scheduled on a date (defaults to today)",
	}, s.handleGetDay)
}

type decodeInput struct {
	Notation string `json:"notation" jsonschema:"one exercise line per line of text"`
}

type decodedLine struct {
	Input     string           `json:"input"`
	Exercises []exerciseOutput `json:"exercises"`
}

type decodeOutput struct {
	Lines []decodedLine `json:"lines"`
}

type listWeeksInput struct{}

type listWeeksOutput struct {
	Plan        string       `json:"plan"`
	CurrentWeek int          `json:"current_week"`
	Weeks       []weekOutput `json:"weeks"`
}

type getWeekInput struct {
	Week int `json:"week" jsonschema:"week number, starting at 1"`
}

type getWeekOutput struct {
	Week  weekOutput  `json:"week"`
	Phase string      `json:"phase,omitempty"`
	Days  []dayOutput `json:"days"`
}

type getDayInput struct {
	Date string `json:"date,omitempty" jsonschema:"date as YYYY-MM-DD; defaults to today"`
}

type getDayOutput struct {
	Date string      `json:"date"`
	Days []dayOutput `json:"days"`
}

func (s *Server) handleDecodeNotation(ctx context.Context, req *mcp.CallToolRequest, input decodeInput) (*mcp.CallToolResult, decodeOutput, error) {
	var out decodeOutput
	for _, line := range strings.Split(input.Notation, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out.Lines = append(out.Lines, decodedLine{
			Input:     strings.TrimSpace(line),
			Exercises: toExercises(s.dec.DecodeLine(line)),
		})
	}
	if len(out.Lines) == 0 {
		return nil, decodeOutput{}, fmt.Errorf("notation is empty")
	}
	return nil, out, nil
}

func (s *Server) handleListWeeks(ctx context.Context, req *mcp.CallToolRequest, _ listWeeksInput) (*mcp.CallToolResult, listWeeksOutput, error) {
	plan, err := s.schedule.ActivePlan(ctx)
	if err != nil {
		return nil, listWeeksOutput{}, err
	}
	weeks, err := s.schedule.ListWeeks(ctx)
	if err != nil {
		return nil, listWeeksOutput{}, err
	}
	out := listWeeksOutput{Plan: plan.Plan.Name, CurrentWeek: plan.Plan.CurrentWeek, Weeks: []weekOutput{}}
	for _, w := range weeks {
		out.Weeks = append(out.Weeks, toWeek(w))
	}
	return nil, out, nil
}

func (s *Server) handleGetWeek(ctx context.Context, req *mcp.CallToolRequest, input getWeekInput) (*mcp.CallToolResult, getWeekOutput, error) {
	view, err := s.schedule.GetWeek(ctx, input.Week)
	if err != nil {
		return nil, getWeekOutput{}, err
	}
	out := getWeekOutput{Week: toWeek(view.Week), Days: toDays(view.Days)}
	if view.Phase != nil {
		out.Phase = view.Phase.Name
	}
	return nil, out, nil
}

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input getDayInput) (*mcp.CallToolResult, getDayOutput, error) {
	date := domain.DateOnly(s.now())
	if input.Date != "" {
		d, err := time.Parse(domain.DateLayout, input.Date)
		if err != nil {
			return nil, getDayOutput{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", input.Date)
		}
		date = d
	}
	views, err := s.schedule.GetDay(ctx, date)
	if err != nil {
		return nil, getDayOutput{}, err
	}
	return nil, getDayOutput{Date: date.Format(domain.DateLayout), Days: toDays(views)}, nil
}
