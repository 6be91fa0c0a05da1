package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/Govind-619/MemoWorks/config"
	"github.com/Govind-619/MemoWorks/models"
	"github.com/Govind-619/MemoWorks/utils"
)

type taskReportSummary struct {
	TotalTasks     int
	CompletedTasks int
	PendingTasks   int
	OverdueTasks   int
	TotalAssignees int
}

func reportWindow(period string) (time.Time, time.Time, bool) {
	now := time.Now()
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, true
	case "month":
		start := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		end := now.Add(24 * time.Hour)
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

func fetchReportTasks(startDate, endDate time.Time) ([]models.Task, taskReportSummary, error) {
	var tasks []models.Task
	err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("User").
		Preload("Labels").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, taskReportSummary{}, err
	}

	var summary taskReportSummary
	now := time.Now()
	assigneeSet := make(map[uint]bool)
	for _, task := range tasks {
		summary.TotalTasks++
		assigneeSet[task.UserID] = true
		if task.Done {
			summary.CompletedTasks++
		} else {
			summary.PendingTasks++
			if !task.DueDate.IsZero() && task.DueDate.Before(now) {
				summary.OverdueTasks++
			}
		}
	}
	summary.TotalAssignees = len(assigneeSet)
	return tasks, summary, nil
}

func taskStatusLabel(task models.Task) string {
	if task.Done {
		return "Done"
	}
	return "Pending"
}

func taskLabelList(task models.Task) string {
	var labels []string
	for _, l := range task.Labels {
		labels = append(labels, l.Label)
	}
	return strings.Join(labels, ", ")
}

// Admin: Download task report as Excel
func DownloadTaskReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadTaskReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(period)
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	tasks, summary, err := fetchReportTasks(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch tasks: %v", err)
		utils.InternalServerError(c, "Failed to fetch tasks", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d tasks for Excel report", len(tasks))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Task Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("MEMOWORKS - Task Report")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Task ID", "Title", "Assignee", "Created", "Due Date", "Labels", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, task := range tasks {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(task.ID))
		row.AddCell().SetString(task.Title)
		row.AddCell().SetString(task.User.Username)
		row.AddCell().SetString(task.CreatedAt.Format("2006-01-02 15:04"))
		if task.DueDate.IsZero() {
			row.AddCell().SetString("-")
		} else {
			row.AddCell().SetString(task.DueDate.Format("2006-01-02"))
		}
		row.AddCell().SetString(taskLabelList(task))
		row.AddCell().SetString(taskStatusLabel(task))
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Tasks", fmt.Sprintf("%d", summary.TotalTasks)},
		{"Completed", fmt.Sprintf("%d", summary.CompletedTasks)},
		{"Pending", fmt.Sprintf("%d", summary.PendingTasks)},
		{"Overdue", fmt.Sprintf("%d", summary.OverdueTasks)},
		{"Assignees", fmt.Sprintf("%d", summary.TotalAssignees)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=task_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}

// Admin: Download task report as PDF
func DownloadTaskReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadTaskReportPDF called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(period)
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	tasks, summary, err := fetchReportTasks(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch tasks: %v", err)
		utils.InternalServerError(c, "Failed to fetch tasks", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d tasks for PDF report", len(tasks))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "MEMOWORKS - Task Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	headers := []string{"Task ID", "Title", "Assignee", "Created", "Due Date", "Labels", "Status"}
	colWidths := []float64{20, 70, 45, 35, 30, 50, 25}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, task := range tasks {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		dueDate := "-"
		if !task.DueDate.IsZero() {
			dueDate = task.DueDate.Format("2006-01-02")
		}
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", task.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, task.Title, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, task.User.Username, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, task.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, dueDate, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, taskLabelList(task), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, taskStatusLabel(task), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(255, 255, 255)
	summaryData := [][]string{
		{"Total Tasks", fmt.Sprintf("%d", summary.TotalTasks)},
		{"Completed", fmt.Sprintf("%d", summary.CompletedTasks)},
		{"Pending", fmt.Sprintf("%d", summary.PendingTasks)},
		{"Overdue", fmt.Sprintf("%d", summary.OverdueTasks)},
		{"Assignees", fmt.Sprintf("%d", summary.TotalAssignees)},
	}
	for _, data := range summaryData {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=task_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", period)
}
