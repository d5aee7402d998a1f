package directory

import (
	"fmt"

	"github.com/adrianoapc/carvalho-rostering/internal/config"
	"github.com/adrianoapc/carvalho-rostering/pkg/core/model"
)

// Expected column names in the volunteers sheet
var volunteerFields = []string{
	"Unique ID",
	"First name",
	"Last name",
	"Status",
	"Email",
	"Avatar URL",
}

// ListVolunteers retrieves and parses volunteers from the configured spreadsheet
func (c *Client) ListVolunteers(cfg *config.Config) ([]model.Volunteer, error) {
	values, err := c.GetValues(cfg.VolunteerSheetID, cfg.VolunteersTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("volunteer sheet is empty")
	}

	volunteers, err := parseVolunteers(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse volunteers: %w", err)
	}

	// Compute display names for all volunteers (ensures uniqueness across entire list)
	ComputeDisplayNames(volunteers)

	return volunteers, nil
}

// GetVolunteer looks up a single volunteer by id
func (c *Client) GetVolunteer(cfg *config.Config, id string) (*model.Volunteer, error) {
	volunteers, err := c.ListVolunteers(cfg)
	if err != nil {
		return nil, err
	}

	for i := range volunteers {
		if volunteers[i].ID == id {
			return &volunteers[i], nil
		}
	}

	return nil, fmt.Errorf("volunteer %s not found in directory", id)
}

// ComputeDisplayNames calculates display names for a list of volunteers based on uniqueness:
// - If first name is unique: use first name only
// - If first name + first letter of surname is unique: use "FirstName L."
// - Otherwise: use full name "FirstName LastName"
func ComputeDisplayNames(volunteers []model.Volunteer) {
	firstNameCounts := make(map[string]int)
	for _, v := range volunteers {
		firstNameCounts[v.FirstName]++
	}

	firstNameInitialCounts := make(map[string]int)
	for _, v := range volunteers {
		if v.LastName != "" {
			key := v.FirstName + " " + string(v.LastName[0]) + "."
			firstNameInitialCounts[key]++
		}
	}

	for i := range volunteers {
		v := &volunteers[i]

		if firstNameCounts[v.FirstName] == 1 {
			v.DisplayName = v.FirstName
			continue
		}

		if v.LastName != "" {
			initialKey := v.FirstName + " " + string(v.LastName[0]) + "."
			if firstNameInitialCounts[initialKey] == 1 {
				v.DisplayName = initialKey
				continue
			}
		}

		v.DisplayName = v.FirstName + " " + v.LastName
	}
}

// parseVolunteers converts raw spreadsheet data into Volunteer structs
func parseVolunteers(raw [][]interface{}) ([]model.Volunteer, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	// Build field index map from header row
	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range volunteerFields {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && cellStr == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index, ok := fieldIndexes[field]
		if !ok {
			return ""
		}
		if index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return str
		}
		return ""
	}

	volunteers := make([]model.Volunteer, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		firstName := getField("First name", row)
		// Skip empty rows (rows with no first name)
		if firstName == "" {
			continue
		}

		id := getField("Unique ID", row)
		if id == "" {
			return nil, fmt.Errorf("volunteer in row %d has no unique id", i)
		}

		volunteers = append(volunteers, model.Volunteer{
			ID:        id,
			FirstName: firstName,
			LastName:  getField("Last name", row),
			Status:    getField("Status", row),
			Email:     getField("Email", row),
			AvatarURL: getField("Avatar URL", row),
		})
	}

	return volunteers, nil
}
