package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"mentorhub/models"
)

// GetAvailability returns the sparse availability rows stored for a mentor week.
func (c *Client) GetAvailability(ctx context.Context, mentorID int64, mingguKe int) ([]models.AvailabilitySlot, error) {
	q := url.Values{}
	q.Set("mentor_id", strconv.FormatInt(mentorID, 10))
	q.Set("minggu_ke", strconv.Itoa(mingguKe))

	// Rows are not validated here: rows outside the grid's key space are dropped
	// when merged, not rejected.
	var slots []models.AvailabilitySlot
	if err := c.do(ctx, http.MethodGet, "/availability-mentor", q, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// SaveAvailability submits a whole grid. Conflicts come back as an *APIError
// with Conflicts set.
func (c *Client) SaveAvailability(ctx context.Context, req models.SaveAvailabilityRequest) error {
	return c.do(ctx, http.MethodPost, "/availability-mentor", nil, req, nil)
}

// AvailableMentors lists mentors eligible for a subject, date, session and class.
func (c *Client) AvailableMentors(ctx context.Context, q models.MentorQuery) ([]models.MentorOption, error) {
	v := url.Values{}
	v.Set("mapel_id", strconv.FormatInt(q.MapelID, 10))
	v.Set("tanggal", q.Tanggal)
	v.Set("sesi", q.Sesi)
	v.Set("kelas_id", strconv.FormatInt(q.KelasID, 10))
	return getList[models.MentorOption](ctx, c, "/mentors/available", v)
}
