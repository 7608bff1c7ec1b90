package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/projectcompass/spyglass/internal/model"
)

// Fixtures overrides parts of the demo seed data. Sections left empty
// keep their defaults.
type Fixtures struct {
	Status      string              `yaml:"status"`
	Inquiries   []InquiryFixture    `yaml:"inquiries"`
	Departments []DepartmentFixture `yaml:"departments"`
	Categories  []CategoryFixture   `yaml:"categories"`
}

// InquiryFixture seeds one recent inquiry.
type InquiryFixture struct {
	ID         string    `yaml:"id"`
	VendorName string    `yaml:"vendor_name"`
	Subject    string    `yaml:"subject"`
	Category   string    `yaml:"category"`
	Priority   string    `yaml:"priority"`
	Status     string    `yaml:"status"`
	AssignedTo string    `yaml:"assigned_to"`
	CreatedAt  time.Time `yaml:"created_at"`
}

// DepartmentFixture seeds one department row.
type DepartmentFixture struct {
	Name             string  `yaml:"name"`
	InquiryCount     int     `yaml:"inquiry_count"`
	AvgResponseHours float64 `yaml:"avg_response_time"`
	Load             int     `yaml:"load"`
}

// CategoryFixture seeds one category row. Percentages are derived, so
// fixtures carry counts only.
type CategoryFixture struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// LoadFixtures reads a YAML fixtures file.
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("sim: read fixtures: %w", err)
	}
	var fix Fixtures
	if err := yaml.Unmarshal(data, &fix); err != nil {
		return Fixtures{}, fmt.Errorf("sim: parse fixtures %s: %w", path, err)
	}
	return fix, nil
}

func (s *Store) applyFixtures(fix Fixtures) {
	if fix.Status != "" {
		s.status = fix.Status
	}
	if len(fix.Inquiries) > 0 {
		s.inquiries = make([]model.InquirySummary, 0, len(fix.Inquiries))
		for _, f := range fix.Inquiries {
			s.inquiries = append(s.inquiries, model.InquirySummary{
				ID:         f.ID,
				VendorName: f.VendorName,
				Subject:    f.Subject,
				Category:   f.Category,
				Priority:   f.Priority,
				Status:     f.Status,
				AssignedTo: f.AssignedTo,
				CreatedAt:  f.CreatedAt,
			})
		}
	}
	if len(fix.Departments) > 0 {
		s.departments = make([]model.DepartmentStat, 0, len(fix.Departments))
		for _, f := range fix.Departments {
			s.departments = append(s.departments, model.DepartmentStat{
				Name:             f.Name,
				InquiryCount:     f.InquiryCount,
				AvgResponseHours: f.AvgResponseHours,
				Load:             f.Load,
			})
		}
	}
	if len(fix.Categories) > 0 {
		s.categories = make([]model.CategoryShare, 0, len(fix.Categories))
		for _, f := range fix.Categories {
			s.categories = append(s.categories, model.CategoryShare{
				Name:  f.Name,
				Count: f.Count,
			})
		}
	}
}
