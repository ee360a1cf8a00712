// Package pdf lays out a weekly timesheet on a single letter page.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"lab-timesheet/internal/model"
)

const DefaultTitle = "Weekly Lab Timesheet"

var workdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// column x offsets in points, page margin included
const (
	colDay     = 72.0
	colTimeIn  = 290.0
	colTimeOut = 380.0
	colMentor  = 470.0
	tableRight = 570.0
	rowHeight  = 22.0
)

type Renderer struct {
	Title string
}

func NewRenderer(title string) *Renderer {
	if title == "" {
		title = DefaultTitle
	}
	return &Renderer{Title: title}
}

// Render produces the PDF bytes of doc. Monday to Friday always get a row;
// weekend rows are added only when logged.
func (r *Renderer) Render(doc model.TimesheetDocument) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(72, 60, 40)
	pdf.SetAutoPageBreak(false, 40)
	pdf.SetTitle(r.Title, true)
	pdf.SetCreator("lab-timesheet", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(colDay, 50)
	pdf.CellFormat(0, 20, tr(r.Title), "", 1, "L", false, 0, "")

	pdf.Ln(10)
	labelValue(pdf, tr, "Student Name: ", doc.StudentName)
	labelValue(pdf, tr, "Student ID: ", doc.StudentID)
	labelValue(pdf, tr, "Week of: ", weekOf(doc))

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, "Mentor's Signature: ______________________________________________", "", 1, "L", false, 0, "")

	pdf.Ln(18)
	r.table(pdf, tr, doc.Days)

	pdf.Ln(20)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 14, "Weekly Report:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(tableRight-colDay, 12, "A weekly report of the work completed this week (5-7 sentences), approved by your mentor.", "", "L", false)

	pdf.Ln(8)
	top := pdf.GetY()
	pdf.SetLineWidth(1)
	pdf.Rect(colDay, top, tableRight-colDay, 160, "D")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(colDay+8, top+8)
	pdf.MultiCell(tableRight-colDay-16, 13, tr(doc.Summary), "", "L", false)

	if pdf.Err() {
		return nil, fmt.Errorf("laying out timesheet: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing timesheet pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) table(pdf *fpdf.Fpdf, tr func(string) string, days []model.DayRow) {
	pdf.SetFont("Helvetica", "B", 11)
	y := pdf.GetY()
	pdf.Text(colDay, y, "Day")
	pdf.Text(colTimeIn, y, "Time In")
	pdf.Text(colTimeOut, y, "Time Out")
	pdf.Text(colMentor, y, "Mentor Initials")
	y += 4
	pdf.SetLineWidth(1)
	pdf.Line(colDay, y, tableRight, y)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetLineWidth(0.5)
	for _, row := range tableRows(days) {
		y += rowHeight
		pdf.Text(colDay, y-6, tr(row.Label))
		pdf.Text(colTimeIn, y-6, row.TimeIn)
		pdf.Text(colTimeOut, y-6, row.TimeOut)
		pdf.Text(colMentor, y-6, tr(row.MentorInitials))
		pdf.Line(colDay, y, tableRight, y)
	}
	pdf.SetY(y)
}

// tableRows fills the five workday rows, keeping logged rows in place and
// appending logged weekend days.
func tableRows(days []model.DayRow) []model.DayRow {
	byName := make(map[string]model.DayRow, len(days))
	for _, day := range days {
		byName[dayName(day.Label)] = day
	}

	rows := make([]model.DayRow, 0, len(workdays)+2)
	for _, name := range workdays {
		if day, ok := byName[name]; ok {
			rows = append(rows, day)
			delete(byName, name)
			continue
		}
		rows = append(rows, model.DayRow{Label: name})
	}
	for _, day := range days {
		if _, ok := byName[dayName(day.Label)]; ok {
			rows = append(rows, day)
		}
	}
	return rows
}

func dayName(label string) string {
	name, _, _ := strings.Cut(label, ",")
	return strings.TrimSpace(name)
}

func weekOf(doc model.TimesheetDocument) string {
	monday, err := time.Parse("2006-01-02", doc.WeekStart)
	if err != nil {
		return doc.WeekStart
	}
	return monday.Format("01/02/2006")
}

func labelValue(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(pdf.GetStringWidth(label), 18, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 18, tr(value), "", 1, "L", false, 0, "")
}
