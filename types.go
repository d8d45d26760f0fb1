package controltower

import (
	"io"

	internalaudit "github.com/towerops/controltower/internal/audit"
	"github.com/towerops/controltower/session"
)

// Identity is the authenticated user's profile data returned at login.
// See [session.Identity].
type Identity = session.Identity

// LoginRequest is the payload of the backend login exchange.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// LoginResponse is the successful login payload: the bearer credential and
// the identity it was issued for.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        Identity `json:"user"`
}

// ShipmentRow is one line of the shipments board.
type ShipmentRow struct {
	ShipmentID     int64  `json:"shipment_id"`
	AWBNumber      string `json:"awb_number"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Status         string `json:"shipment_status"`
	CurrentHubCode string `json:"current_hub_code"`
	VendorID       int64  `json:"vendor_id"`
	ETA            string `json:"eta"`
	LastUpdated    string `json:"last_updated_ts"`
}

// ShipmentDetail is the full record behind a single shipment ID, including
// consignee, package, and booking information.
type ShipmentDetail struct {
	ShipmentID       int64   `json:"shipment_id"`
	AWBNumber        string  `json:"awb_number"`
	OriginCity       string  `json:"origin_city"`
	DestinationCity  string  `json:"destination_city"`
	DestinationState string  `json:"destination_state"`
	DestinationPin   string  `json:"destination_pincode"`
	CurrentStatus    string  `json:"current_status"`
	ExpectedDelivery string  `json:"expected_delivery_date"`
	ActualDelivery   string  `json:"actual_delivery_date"`
	BookingDate      string  `json:"booking_date"`
	HasException     int     `json:"has_exception"`
	ExceptionType    string  `json:"exception_type"`
	ExceptionNotes   string  `json:"exception_notes"`
	ConsigneeName    string  `json:"consignee_name"`
	ConsigneeAddress string  `json:"consignee_address"`
	ProductType      string  `json:"product_type"`
	Description      string  `json:"description"`
	WeightKg         float64 `json:"weight_kg"`
	NumberOfBoxes    int     `json:"number_of_boxes"`
	ServiceType      string  `json:"service_type"`
	BookingID        string  `json:"booking_id"`
	CurrentHubCode   string  `json:"current_hub_code"`
	CurrentHubName   string  `json:"current_hub_name"`
	VendorName       string  `json:"vendor_name"`
	LastUpdated      string  `json:"last_updated_ts"`
}

// ShipmentSummary carries the per-status counts and on-time rate shown on
// the overview cards.
type ShipmentSummary struct {
	Booked           int     `json:"booked"`
	PickedUp         int     `json:"picked_up"`
	InTransit        int     `json:"in_transit"`
	OutForDelivery   int     `json:"out_for_delivery"`
	DelayedShipments int     `json:"delayed_shipments"`
	Exceptions       int     `json:"exceptions"`
	OnTimeRate       float64 `json:"on_time_rate"`
}

// TrendPoint is one day of the booking-volume chart.
type TrendPoint struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}

// DelayedShipment is one line of the delayed-shipments list, ordered by
// expected delivery date.
type DelayedShipment struct {
	ShipmentID      int64  `json:"shipment_id"`
	AWBNumber       string `json:"awb_number"`
	OriginCity      string `json:"origin_city"`
	DestinationCity string `json:"destination_city"`
	CurrentStatus   string `json:"current_status"`
	ETA             string `json:"eta"`
	LastUpdated     string `json:"last_updated"`
}

// LiveException is one entry of the live exception feed.
type LiveException struct {
	ShipmentID      int64  `json:"shipment_id"`
	ExceptionType   string `json:"exception_type"`
	Message         string `json:"message"`
	OriginCity      string `json:"origin_city"`
	DestinationCity string `json:"destination_city"`
	RaisedAt        string `json:"raised_at"`
}

// ExceptionTypeCount is one slice of the exceptions-by-type chart.
type ExceptionTypeCount struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Vendor is one carrier partner.
type Vendor struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	IsActive     int    `json:"is_active"`
}

// VendorPerformance is the latest performance calculation for one vendor.
// Message is set by the backend when no calculation exists yet.
type VendorPerformance struct {
	VendorID        string  `json:"vendor_id"`
	CalculationDate string  `json:"calculation_date"`
	OnTimeRate      float64 `json:"on_time_rate"`
	TotalShipments  int     `json:"total_shipments"`
	ExceptionRate   float64 `json:"exception_rate"`
	Message         string  `json:"message"`
}

// Customer is one shipper account.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Hub status values reported by the backend status board.
const (
	HubOperational = "OPERATIONAL"
	HubCongested   = "CONGESTED"
	HubDown        = "DOWN"
)

// HubStatus is one line of the hub status board.
type HubStatus struct {
	HubCode     string `json:"hub_code"`
	HubName     string `json:"hub_name"`
	City        string `json:"city"`
	Pincode     string `json:"pincode"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated_ts"`
}

// PODShipment is one proof-of-delivery search hit.
type PODShipment struct {
	ShipmentID      int64  `json:"id"`
	AWBNumber       string `json:"awb_number"`
	OriginCity      string `json:"origin_city"`
	DestinationCity string `json:"destination_city"`
	CurrentStatus   string `json:"current_status"`
	PODDocumentURL  string `json:"pod_document_url"`
	PODUploadedAt   string `json:"pod_upload_timestamp"`
}

// ChatTurn is one prior exchange handed back to the assistant for context.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AuditEvent is a structured session lifecycle event emitted by the guard.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the guard's dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
