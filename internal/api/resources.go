package api

import (
	"context"
	"fmt"

	"github.com/crema-dev/crema/internal/model"
)

// ListBeans fetches all beans.
func (c *Client) ListBeans(ctx context.Context) ([]model.Bean, error) {
	var beans []model.Bean
	if err := c.get(ctx, "/beans", &beans); err != nil {
		return nil, err
	}
	return beans, nil
}

// GetBean fetches one bean by id.
func (c *Client) GetBean(ctx context.Context, id int64) (*model.Bean, error) {
	var bean model.Bean
	if err := c.get(ctx, fmt.Sprintf("/beans/%d", id), &bean); err != nil {
		return nil, err
	}
	return &bean, nil
}

// CreateBean creates a bean and returns the persisted resource.
func (c *Client) CreateBean(ctx context.Context, bean model.Bean) (*model.Bean, error) {
	var created model.Bean
	if err := c.post(ctx, "/beans", bean, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBean updates a bean and returns the persisted resource.
func (c *Client) UpdateBean(ctx context.Context, id int64, bean model.Bean) (*model.Bean, error) {
	var updated model.Bean
	if err := c.put(ctx, fmt.Sprintf("/beans/%d", id), bean, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBean deletes a bean by id.
func (c *Client) DeleteBean(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/beans/%d", id))
}

// SessionsForBean fetches the calibration sessions recorded for one bean.
func (c *Client) SessionsForBean(ctx context.Context, beanID int64) ([]model.CalibrationSession, error) {
	var sessions []model.CalibrationSession
	if err := c.get(ctx, fmt.Sprintf("/beans/%d/sessions", beanID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListGrinders fetches all grinders.
func (c *Client) ListGrinders(ctx context.Context) ([]model.Grinder, error) {
	var grinders []model.Grinder
	if err := c.get(ctx, "/grinders", &grinders); err != nil {
		return nil, err
	}
	return grinders, nil
}

// GetGrinder fetches one grinder by id.
func (c *Client) GetGrinder(ctx context.Context, id int64) (*model.Grinder, error) {
	var grinder model.Grinder
	if err := c.get(ctx, fmt.Sprintf("/grinders/%d", id), &grinder); err != nil {
		return nil, err
	}
	return &grinder, nil
}

// CreateGrinder creates a grinder and returns the persisted resource.
func (c *Client) CreateGrinder(ctx context.Context, grinder model.Grinder) (*model.Grinder, error) {
	var created model.Grinder
	if err := c.post(ctx, "/grinders", grinder, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateGrinder updates a grinder and returns the persisted resource.
func (c *Client) UpdateGrinder(ctx context.Context, id int64, grinder model.Grinder) (*model.Grinder, error) {
	var updated model.Grinder
	if err := c.put(ctx, fmt.Sprintf("/grinders/%d", id), grinder, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteGrinder deletes a grinder by id.
func (c *Client) DeleteGrinder(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/grinders/%d", id))
}

// ListSessions fetches all calibration sessions.
func (c *Client) ListSessions(ctx context.Context) ([]model.CalibrationSession, error) {
	var sessions []model.CalibrationSession
	if err := c.get(ctx, "/calibration-sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches one calibration session by id.
func (c *Client) GetSession(ctx context.Context, id int64) (*model.CalibrationSession, error) {
	var session model.CalibrationSession
	if err := c.get(ctx, fmt.Sprintf("/calibration-sessions/%d", id), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateSession creates a calibration session and returns the persisted
// resource.
func (c *Client) CreateSession(ctx context.Context, session model.CalibrationSession) (*model.CalibrationSession, error) {
	var created model.CalibrationSession
	if err := c.post(ctx, "/calibration-sessions", session, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSession updates a calibration session and returns the persisted
// resource.
func (c *Client) UpdateSession(ctx context.Context, id int64, session model.CalibrationSession) (*model.CalibrationSession, error) {
	var updated model.CalibrationSession
	if err := c.put(ctx, fmt.Sprintf("/calibration-sessions/%d", id), session, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSession deletes a calibration session by id.
func (c *Client) DeleteSession(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/calibration-sessions/%d", id))
}

// ListShots fetches the shots recorded under one session.
func (c *Client) ListShots(ctx context.Context, sessionID int64) ([]model.Shot, error) {
	var shots []model.Shot
	if err := c.get(ctx, fmt.Sprintf("/calibration-sessions/%d/shots", sessionID), &shots); err != nil {
		return nil, err
	}
	return shots, nil
}

// CreateShot records a shot under one session.
func (c *Client) CreateShot(ctx context.Context, sessionID int64, shot model.Shot) (*model.Shot, error) {
	var created model.Shot
	if err := c.post(ctx, fmt.Sprintf("/calibration-sessions/%d/shots", sessionID), shot, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateShot updates a shot under one session.
func (c *Client) UpdateShot(ctx context.Context, sessionID, shotID int64, shot model.Shot) (*model.Shot, error) {
	var updated model.Shot
	if err := c.put(ctx, fmt.Sprintf("/calibration-sessions/%d/shots/%d", sessionID, shotID), shot, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteShot deletes a shot under one session.
func (c *Client) DeleteShot(ctx context.Context, sessionID, shotID int64) error {
	return c.delete(ctx, fmt.Sprintf("/calibration-sessions/%d/shots/%d", sessionID, shotID))
}

// AllShots fetches every shot across sessions, used by the dashboard to
// analyze trends without walking each session.
func (c *Client) AllShots(ctx context.Context) ([]model.Shot, error) {
	var shots []model.Shot
	if err := c.get(ctx, "/shots", &shots); err != nil {
		return nil, err
	}
	return shots, nil
}
