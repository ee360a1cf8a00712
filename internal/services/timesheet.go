package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"lab-timesheet/internal/model"
	"lab-timesheet/internal/utils"
)

// FallbackSummary replaces the weekly summary whenever the summarizer
// fails or is not configured.
const FallbackSummary = "Weekly lab activities completed as scheduled."

// ErrNoData is returned when a week has nothing to put on a timesheet.
var ErrNoData = errors.New("no activities logged for this week")

// Summarizer turns "<Day>: <activity>" lines into a short paragraph.
type Summarizer interface {
	Summarize(ctx context.Context, lines []string) (string, error)
}

// Renderer turns a timesheet document into a binary file.
type Renderer interface {
	Render(doc model.TimesheetDocument) ([]byte, error)
}

// WeekReader is the read side of the activity store.
type WeekReader interface {
	GetWeek(ctx context.Context, weekKey string) (model.WeekRecord, error)
}

type TimesheetService struct {
	weeks      WeekReader
	summarizer Summarizer
	renderer   Renderer
	profile    model.Profile
}

func NewTimesheetService(weeks WeekReader, summarizer Summarizer, renderer Renderer, profile model.Profile) *TimesheetService {
	return &TimesheetService{
		weeks:      weeks,
		summarizer: summarizer,
		renderer:   renderer,
		profile:    profile,
	}
}

// AssembleWeek builds the document model for weekKey. It never writes to
// the store.
func (ts *TimesheetService) AssembleWeek(ctx context.Context, weekKey string) (*model.TimesheetDocument, error) {
	dates, err := utils.DatesOfWeek(weekKey)
	if err != nil {
		return nil, err
	}

	week, err := ts.weeks.GetWeek(ctx, weekKey)
	if err != nil {
		return nil, err
	}
	if week.TotalEntries() == 0 {
		return nil, ErrNoData
	}

	doc := &model.TimesheetDocument{
		StudentName: ts.profile.Name,
		StudentID:   ts.profile.ID,
		WeekStart:   weekKey,
	}

	var lines []string
	for _, date := range dates {
		bucket := week[date]
		if len(bucket) == 0 {
			continue
		}
		day, err := utils.ParseISO(date)
		if err != nil {
			return nil, err
		}

		row := model.DayRow{
			Label:    utils.DayLabel(day),
			DateText: utils.SlashDate(day),
		}
		if week.DayHours(date) > 0 {
			row.TimeIn = model.LabTimeIn
			row.TimeOut = model.LabTimeOut
		}
		doc.Days = append(doc.Days, row)

		for _, activity := range bucket {
			lines = append(lines, fmt.Sprintf("%s: %s", day.Weekday(), activity.Description))
		}
	}

	doc.Summary = ts.summarize(ctx, weekKey, lines)
	return doc, nil
}

// Generate assembles and renders the timesheet of weekKey.
func (ts *TimesheetService) Generate(ctx context.Context, weekKey string) (*model.Timesheet, error) {
	doc, err := ts.AssembleWeek(ctx, weekKey)
	if err != nil {
		return nil, err
	}

	content, err := ts.renderer.Render(*doc)
	if err != nil {
		return nil, fmt.Errorf("rendering timesheet for %s: %w", weekKey, err)
	}

	log.Printf("📄 Timesheet generated: week=%s, days=%d, bytes=%d", weekKey, len(doc.Days), len(content))
	return &model.Timesheet{
		WeekKey:  weekKey,
		FileName: ts.FileName(weekKey),
		Content:  content,
		Summary:  doc.Summary,
	}, nil
}

// FileName is the download name used for a week's timesheet.
func (ts *TimesheetService) FileName(weekKey string) string {
	name := strings.Join(strings.Fields(ts.profile.Name), "_")
	if name == "" {
		return fmt.Sprintf("Timesheet_%s.pdf", weekKey)
	}
	return fmt.Sprintf("Timesheet_%s_%s.pdf", name, weekKey)
}

func (ts *TimesheetService) summarize(ctx context.Context, weekKey string, lines []string) string {
	if ts.summarizer == nil {
		return FallbackSummary
	}

	summary, err := ts.summarizer.Summarize(ctx, lines)
	if err != nil {
		log.Printf("⚠️ Summary for week %s failed, using fallback: %v", weekKey, err)
		return FallbackSummary
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		log.Printf("⚠️ Summary for week %s came back empty, using fallback", weekKey)
		return FallbackSummary
	}
	return summary
}
