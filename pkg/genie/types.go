package genie

import "github.com/leapstack-labs/geniespaces/pkg/space"

// SpaceResponse is the API envelope for a Genie space. SerializedSpace
// is an opaque string holding a JSON-encoded space document; it is only
// populated by export calls that request it.
type SpaceResponse struct {
	SpaceID         string `json:"space_id,omitempty"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	WarehouseID     string `json:"warehouse_id,omitempty"`
	ParentPath      string `json:"parent_path,omitempty"`
	SerializedSpace string `json:"serialized_space,omitempty"`
}

// Export decodes the serialized space configuration, or returns
// (nil, nil) when the envelope carries none. The decode is pure: calling
// it repeatedly never re-fetches or mutates the envelope.
func (r *SpaceResponse) Export() (*space.Export, error) {
	if r.SerializedSpace == "" {
		return nil, nil
	}
	return space.Parse([]byte(r.SerializedSpace))
}

// ImportRequest creates a new space from a configuration document.
// Space takes precedence over SerializedSpace. Title and Description
// are sent only when non-empty.
type ImportRequest struct {
	WarehouseID     string
	ParentPath      string
	Space           *space.Export
	SerializedSpace string
	Title           string
	Description     string
}

type importPayload struct {
	WarehouseID     string `json:"warehouse_id"`
	ParentPath      string `json:"parent_path"`
	SerializedSpace string `json:"serialized_space"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
}

// UpdateRequest modifies an existing space. Every field is optional;
// only set fields appear in the PATCH payload.
type UpdateRequest struct {
	Space           *space.Export
	SerializedSpace string
	Title           string
	Description     string
	WarehouseID     string
}

type updatePayload struct {
	SerializedSpace string `json:"serialized_space,omitempty"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	WarehouseID     string `json:"warehouse_id,omitempty"`
}

// CloneRequest copies an existing space. An empty Title defaults to
// "<source title> (Copy)"; an empty Description copies the source's.
type CloneRequest struct {
	SourceID    string
	WarehouseID string
	ParentPath  string
	Title       string
	Description string
}

// SpaceDiff pairs two decoded space configurations for caller-side
// comparison.
type SpaceDiff struct {
	SpaceID1 string        `json:"space_1"`
	SpaceID2 string        `json:"space_2"`
	Export1  *space.Export `json:"config_1"`
	Export2  *space.Export `json:"config_2"`
}
