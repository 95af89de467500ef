package genie

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/geniespaces/pkg/space"
)

// ExportSpace fetches a space together with its serialized
// configuration.
func (c *Client) ExportSpace(ctx context.Context, spaceID string) (*SpaceResponse, error) {
	params := url.Values{"include_serialized_space": {"true"}}
	var resp SpaceResponse
	if err := c.get(ctx, basePath+"/"+spaceID, params, &resp); err != nil {
		return nil, fmt.Errorf("export space %s: %w", spaceID, err)
	}
	return &resp, nil
}

// ImportSpace creates a new space from a configuration document.
func (c *Client) ImportSpace(ctx context.Context, req ImportRequest) (*SpaceResponse, error) {
	serialized := req.SerializedSpace
	if req.Space != nil {
		data, err := req.Space.Marshal(true)
		if err != nil {
			return nil, fmt.Errorf("import space: %w", err)
		}
		serialized = string(data)
	}
	if serialized == "" {
		return nil, errors.New("genie: import space: no space document given")
	}

	payload := importPayload{
		WarehouseID:     req.WarehouseID,
		ParentPath:      req.ParentPath,
		SerializedSpace: serialized,
		Title:           req.Title,
		Description:     req.Description,
	}
	var resp SpaceResponse
	if err := c.post(ctx, basePath, payload, &resp); err != nil {
		return nil, fmt.Errorf("import space: %w", err)
	}
	return &resp, nil
}

// UpdateSpace applies a sparse update: only fields set on req are sent.
func (c *Client) UpdateSpace(ctx context.Context, spaceID string, req UpdateRequest) (*SpaceResponse, error) {
	serialized := req.SerializedSpace
	if req.Space != nil {
		data, err := req.Space.Marshal(true)
		if err != nil {
			return nil, fmt.Errorf("update space %s: %w", spaceID, err)
		}
		serialized = string(data)
	}

	payload := updatePayload{
		SerializedSpace: serialized,
		Title:           req.Title,
		Description:     req.Description,
		WarehouseID:     req.WarehouseID,
	}
	var resp SpaceResponse
	if err := c.patch(ctx, basePath+"/"+spaceID, payload, &resp); err != nil {
		return nil, fmt.Errorf("update space %s: %w", spaceID, err)
	}
	return &resp, nil
}

// CloneSpace exports the source space and imports it as a new space in
// the given warehouse and path.
func (c *Client) CloneSpace(ctx context.Context, req CloneRequest) (*SpaceResponse, error) {
	src, err := c.ExportSpace(ctx, req.SourceID)
	if err != nil {
		return nil, fmt.Errorf("clone space %s: %w", req.SourceID, err)
	}
	exp, err := src.Export()
	if err != nil {
		return nil, fmt.Errorf("clone space %s: %w", req.SourceID, err)
	}
	if exp == nil {
		return nil, fmt.Errorf("clone space %s: %w", req.SourceID, ErrEmptySpace)
	}

	title := req.Title
	if title == "" {
		title = src.Title + " (Copy)"
	}
	description := req.Description
	if description == "" {
		description = src.Description
	}

	return c.ImportSpace(ctx, ImportRequest{
		WarehouseID: req.WarehouseID,
		ParentPath:  req.ParentPath,
		Space:       exp,
		Title:       title,
		Description: description,
	})
}

// ExportSpaceToFile exports a space and writes its configuration to
// path, creating parent directories as needed. The decoded document is
// returned.
func (c *Client) ExportSpaceToFile(ctx context.Context, spaceID, path string) (*space.Export, error) {
	resp, err := c.ExportSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	exp, err := resp.Export()
	if err != nil {
		return nil, fmt.Errorf("export space %s: %w", spaceID, err)
	}
	if exp == nil {
		return nil, fmt.Errorf("export space %s: %w", spaceID, ErrEmptySpace)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("export space %s: %w", spaceID, err)
		}
	}
	if err := exp.Save(path, true); err != nil {
		return nil, fmt.Errorf("export space %s: %w", spaceID, err)
	}
	return exp, nil
}

// ImportSpaceFromFile loads a space document from disk and imports it.
// The loaded document replaces any document already set on req.
func (c *Client) ImportSpaceFromFile(ctx context.Context, path string, req ImportRequest) (*SpaceResponse, error) {
	exp, err := space.Load(path)
	if err != nil {
		return nil, fmt.Errorf("import space from %s: %w", path, err)
	}
	req.Space = exp
	req.SerializedSpace = ""
	return c.ImportSpace(ctx, req)
}

// UpdateSpaceFromFile loads a space document from disk and applies it as
// an update, alongside any other fields set on req.
func (c *Client) UpdateSpaceFromFile(ctx context.Context, spaceID, path string, req UpdateRequest) (*SpaceResponse, error) {
	exp, err := space.Load(path)
	if err != nil {
		return nil, fmt.Errorf("update space %s from %s: %w", spaceID, path, err)
	}
	req.Space = exp
	req.SerializedSpace = ""
	return c.UpdateSpace(ctx, spaceID, req)
}

// DiffSpaces exports both spaces and returns their decoded
// configurations side by side. Structural comparison is left to the
// caller.
func (c *Client) DiffSpaces(ctx context.Context, spaceID1, spaceID2 string) (*SpaceDiff, error) {
	resp1, err := c.ExportSpace(ctx, spaceID1)
	if err != nil {
		return nil, err
	}
	resp2, err := c.ExportSpace(ctx, spaceID2)
	if err != nil {
		return nil, err
	}

	exp1, err := resp1.Export()
	if err != nil {
		return nil, fmt.Errorf("diff space %s: %w", spaceID1, err)
	}
	if exp1 == nil {
		return nil, fmt.Errorf("diff space %s: %w", spaceID1, ErrEmptySpace)
	}
	exp2, err := resp2.Export()
	if err != nil {
		return nil, fmt.Errorf("diff space %s: %w", spaceID2, err)
	}
	if exp2 == nil {
		return nil, fmt.Errorf("diff space %s: %w", spaceID2, ErrEmptySpace)
	}

	return &SpaceDiff{
		SpaceID1: spaceID1,
		SpaceID2: spaceID2,
		Export1:  exp1,
		Export2:  exp2,
	}, nil
}
