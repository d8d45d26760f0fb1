package controltower

import (
	"context"
	"strconv"
)

// Vendors lists all carrier partners.
func (c *Client) Vendors(ctx context.Context) ([]Vendor, error) {
	var vendors []Vendor
	if err := c.getJSON(ctx, "/api/vendors", nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// VendorPerformance fetches the latest performance calculation for one
// vendor. When none exists yet the backend answers with a Message instead
// of numbers; callers should check it before rendering.
func (c *Client) VendorPerformance(ctx context.Context, vendorID int64) (*VendorPerformance, error) {
	var perf VendorPerformance
	path := "/api/vendors/" + strconv.FormatInt(vendorID, 10) + "/performance"
	if err := c.getJSON(ctx, path, nil, &perf); err != nil {
		return nil, err
	}
	return &perf, nil
}

// Customers lists all shipper accounts.
func (c *Client) Customers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := c.getJSON(ctx, "/api/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
