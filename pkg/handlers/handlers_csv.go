package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/burndown/roadmap-api/pkg/models"
)

// PlanCSV plans a roadmap from uploaded projects and team CSV files.
// Project role columns are discovered by their _mandays / _done suffix.
func (h *Handler) PlanCSV(c *gin.Context) {
	projectsFile, _ := c.FormFile("projects_file")
	teamFile, _ := c.FormFile("team_file")

	if projectsFile == nil || teamFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projects_file and team_file are required"})
		return
	}

	var projects []models.Project
	if err := readCSVUpload(projectsFile, func(row map[string]string) {
		projects = append(projects, projectFromRow(row))
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projects_file: " + err.Error()})
		return
	}

	var members []models.TeamMember
	if err := readCSVUpload(teamFile, func(row map[string]string) {
		members = append(members, memberFromRow(row))
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_file: " + err.Error()})
		return
	}

	rm, err := h.plan("csv", projects, members, models.ParseDate(c.PostForm("today")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rm)
}

// readCSVUpload calls fn for every data row keyed by header name
func readCSVUpload(fh *multipart.FileHeader, fn func(map[string]string)) error {
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return readCSV(f, fn)
}

func readCSV(r io.Reader, fn func(map[string]string)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("missing header")
		}
		return fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		fn(row)
	}
}

func projectFromRow(row map[string]string) models.Project {
	fields := make(map[string]any, len(row))
	for k, v := range row {
		fields[k] = v
	}
	p := models.Project{
		ID:           row["id"],
		Name:         row["name"],
		DeliveryDate: models.ParseDate(row["delivery_date"]),
		StartDay:     models.ParseDate(row["start_day"]),
		Roles:        models.RolesFromFields(fields),
	}
	p.Priority, _ = models.ParsePriority(row["priority"])
	return p
}

func memberFromRow(row map[string]string) models.TeamMember {
	m := models.TeamMember{ID: row["id"], Name: row["name"]}
	m.FTE, _ = models.ParseNumber(row["fte"])
	m.MDRate, _ = models.ParseNumber(row["md_rate"])
	return m
}
