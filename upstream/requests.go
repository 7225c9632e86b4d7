package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"mentorhub/models"
)

// ListScheduleRequests returns the schedule requests visible to the caller.
func (c *Client) ListScheduleRequests(ctx context.Context) ([]models.ScheduleRequest, error) {
	return getList[models.ScheduleRequest](ctx, c, "/permintaan-jadwal", nil)
}

// CreateScheduleRequest posts a new request and returns the stored record.
func (c *Client) CreateScheduleRequest(ctx context.Context, body models.CreateScheduleRequestBody) (*models.ScheduleRequest, error) {
	var created models.ScheduleRequest
	if err := c.do(ctx, http.MethodPost, "/permintaan-jadwal", nil, body, &created); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(&created); err != nil {
		return nil, fmt.Errorf("%w: /permintaan-jadwal: %v", ErrInvalidResponse, err)
	}
	return &created, nil
}

// ApproveScheduleRequest transitions a request to approved.
func (c *Client) ApproveScheduleRequest(ctx context.Context, id int64) (*models.StatusUpdate, error) {
	return c.transition(ctx, id, "approve")
}

// RejectScheduleRequest transitions a request to rejected.
func (c *Client) RejectScheduleRequest(ctx context.Context, id int64) (*models.StatusUpdate, error) {
	return c.transition(ctx, id, "reject")
}

func (c *Client) transition(ctx context.Context, id int64, action string) (*models.StatusUpdate, error) {
	path := "/permintaan-jadwal/" + strconv.FormatInt(id, 10) + "/" + action
	var update models.StatusUpdate
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &update); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(&update); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, path, err)
	}
	if update.ID == 0 {
		update.ID = id
	}
	return &update, nil
}

// CreateJadwalSesi schedules a session directly (admin).
func (c *Client) CreateJadwalSesi(ctx context.Context, in models.DirectScheduleInput) (*models.JadwalSesi, error) {
	var created models.JadwalSesi
	if err := c.do(ctx, http.MethodPost, "/jadwal-sesi", nil, in, &created); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(&created); err != nil {
		return nil, fmt.Errorf("%w: /jadwal-sesi: %v", ErrInvalidResponse, err)
	}
	return &created, nil
}
