package schema

// ContentEventTable represents the 'content.event' table
type ContentEventTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Location    string
	Organizer   string
	StartsAt    string
	EndsAt      string
	CreatedAt   string
	UpdatedAt   string
}

// ContentEvent is the schema definition for content.event
var ContentEvent = ContentEventTable{
	Table:       "content.event",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Location:    "location",
	Organizer:   "organizer",
	StartsAt:    "startsat",
	EndsAt:      "endsat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t ContentEventTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Location, t.Organizer,
		t.StartsAt, t.EndsAt, t.CreatedAt, t.UpdatedAt,
	}
}
