package controltower

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Shipments lists the shipments board, newest first. Status and hub filter
// server-side when non-empty; limit caps the page size (backend default
// applies when zero).
func (c *Client) Shipments(ctx context.Context, status, hubCode string, limit int) ([]ShipmentRow, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if hubCode != "" {
		q.Set("hub", hubCode)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var rows []ShipmentRow
	if err := c.getJSON(ctx, "/api/shipments", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Shipment fetches the full record behind one shipment ID. An unknown ID
// returns an error matching [ErrShipmentNotFound] with the backend's
// message attached.
func (c *Client) Shipment(ctx context.Context, id int64) (*ShipmentDetail, error) {
	var detail ShipmentDetail
	err := c.getJSON(ctx, "/api/shipments/"+strconv.FormatInt(id, 10), nil, &detail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrShipmentNotFound, err)
		}
		return nil, err
	}
	return &detail, nil
}

// ShipmentSummary fetches the per-status counts and on-time rate for the
// overview cards.
func (c *Client) ShipmentSummary(ctx context.Context) (*ShipmentSummary, error) {
	var s ShipmentSummary
	if err := c.getJSON(ctx, "/api/shipments/summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ShipmentTrend fetches the daily booking-volume series for the trend
// chart, covering the trailing window the backend computes.
func (c *Client) ShipmentTrend(ctx context.Context) ([]TrendPoint, error) {
	var points []TrendPoint
	if err := c.getJSON(ctx, "/api/shipments/trend", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// DelayedShipments lists shipments past their expected delivery date,
// soonest-due first.
func (c *Client) DelayedShipments(ctx context.Context) ([]DelayedShipment, error) {
	var rows []DelayedShipment
	if err := c.getJSON(ctx, "/api/shipments/delayed", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
