package reconcile

import "errors"

// Event is one changed cell as delivered by the change-notification source.
type Event struct {
	// Address is the changed cell, e.g. "C3" or "Sales!C3".
	Address string `json:"address" validate:"required"`
	// Sheet is the sheet the cell belongs to.
	Sheet string `json:"sheetName" validate:"required"`
	// Value is the new computed value; numbers and booleans are converted to text.
	Value any `json:"value"`
	// Formula is the new expression, empty for constant cells.
	Formula string `json:"formula,omitempty"`
}

// Reason explains why an event was not applied.
type Reason string

const (
	ReasonMalformedAddress  Reason = "malformed_address"
	ReasonUnregisteredSheet Reason = "unregistered_sheet"
	ReasonRowNotInBlock     Reason = "row_not_in_block"
	ReasonColumnNotInBlock  Reason = "column_not_in_block"
	ReasonStaleLayout       Reason = "stale_layout"
)

// ErrUnresolvedAddress marks an update that maps to no known table or row.
var ErrUnresolvedAddress = errors.New("unresolved address")

// Result describes the outcome of reconciling one event.
type Result struct {
	Sheet    string `json:"sheet"`
	Address  string `json:"address"`
	Resolved bool   `json:"resolved"`
	// Reason is set when Resolved is false.
	Reason Reason `json:"reason,omitempty"`

	Table  string `json:"table,omitempty"`
	RowID  string `json:"row_id,omitempty"`
	CellID string `json:"cell_id,omitempty"`
	Column string `json:"column,omitempty"`

	// RegistryVersion is the layout version the event was resolved against.
	RegistryVersion uint64 `json:"registry_version,omitempty"`
	// Ops is the number of graph operations applied.
	Ops int `json:"ops,omitempty"`
}

// Err returns ErrUnresolvedAddress for rejected events and nil otherwise.
func (r *Result) Err() error {
	if r == nil || r.Resolved {
		return nil
	}
	return ErrUnresolvedAddress
}
